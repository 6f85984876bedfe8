package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/services"
)

// FarmsHandler handles farm HTTP requests.
type FarmsHandler struct {
	farmService services.FarmService
	logger      *zap.Logger
}

// NewFarmsHandler creates a new farms handler.
func NewFarmsHandler(farmService services.FarmService, logger *zap.Logger) *FarmsHandler {
	return &FarmsHandler{
		farmService: farmService,
		logger:      logger,
	}
}

// RegisterRoutes registers the farm routes on the given mux.
func (h *FarmsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/farms", h.List)
	mux.HandleFunc("POST /api/v1/farms", h.Create)
	mux.HandleFunc("GET /api/v1/farms/{farmID}", h.Get)
	mux.HandleFunc("PUT /api/v1/farms/{farmID}", h.Update)
	mux.HandleFunc("DELETE /api/v1/farms/{farmID}", h.Delete)
}

// List handles GET /api/v1/farms
func (h *FarmsHandler) List(w http.ResponseWriter, r *http.Request) {
	farms, err := h.farmService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Farm not found")
		return
	}
	if err := WriteJSON(w, http.StatusOK, farms); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/farms/{farmID}
// The response includes the farm's fields.
func (h *FarmsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDPath(w, r, "farmID", h.logger)
	if !ok {
		return
	}

	farm, err := h.farmService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Farm not found")
		return
	}
	if err := WriteJSON(w, http.StatusOK, farm); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/v1/farms
func (h *FarmsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.FarmInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); werr != nil {
			h.logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	farm, err := h.farmService.Create(r.Context(), &input)
	if err != nil {
		writeServiceError(w, h.logger, err, "Farm not found")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, farm); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/farms/{farmID}
// Full replacement: absent optional attributes are cleared.
func (h *FarmsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDPath(w, r, "farmID", h.logger)
	if !ok {
		return
	}

	var input models.FarmInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); werr != nil {
			h.logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	farm, err := h.farmService.Update(r.Context(), id, &input)
	if err != nil {
		writeServiceError(w, h.logger, err, "Farm not found")
		return
	}
	if err := WriteJSON(w, http.StatusOK, farm); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/farms/{farmID}
func (h *FarmsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDPath(w, r, "farmID", h.logger)
	if !ok {
		return
	}

	if err := h.farmService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "Farm not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
