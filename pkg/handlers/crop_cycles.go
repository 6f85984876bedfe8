package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/services"
)

// CropCyclesHandler handles crop cycle HTTP requests.
type CropCyclesHandler struct {
	cycleService services.CropCycleService
	logger       *zap.Logger
}

// NewCropCyclesHandler creates a new crop cycles handler.
func NewCropCyclesHandler(cycleService services.CropCycleService, logger *zap.Logger) *CropCyclesHandler {
	return &CropCyclesHandler{
		cycleService: cycleService,
		logger:       logger,
	}
}

// RegisterRoutes registers the crop cycle routes on the given mux.
func (h *CropCyclesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/crop-cycles", h.List)
	mux.HandleFunc("POST /api/v1/crop-cycles", h.Create)
	mux.HandleFunc("GET /api/v1/crop-cycles/{cycleID}", h.Get)
	mux.HandleFunc("PUT /api/v1/crop-cycles/{cycleID}", h.Update)
	mux.HandleFunc("DELETE /api/v1/crop-cycles/{cycleID}", h.Delete)
}

// List handles GET /api/v1/crop-cycles with an optional field_id filter.
func (h *CropCyclesHandler) List(w http.ResponseWriter, r *http.Request) {
	var fieldID *int64
	if raw := r.URL.Query().Get("field_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			if werr := ErrorResponse(w, http.StatusNotFound, "not_found", "Field not found"); werr != nil {
				h.logger.Error("Failed to write error response", zap.Error(werr))
			}
			return
		}
		fieldID = &id
	}

	cycles, err := h.cycleService.List(r.Context(), fieldID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Field not found")
		return
	}
	if err := WriteJSON(w, http.StatusOK, cycles); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/crop-cycles/{cycleID}
func (h *CropCyclesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDPath(w, r, "cycleID", h.logger)
	if !ok {
		return
	}

	cycle, err := h.cycleService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Crop cycle not found")
		return
	}
	if err := WriteJSON(w, http.StatusOK, cycle); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/v1/crop-cycles
// A reference to a nonexistent field is a 404, not a validation failure.
func (h *CropCyclesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CropCycleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); werr != nil {
			h.logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	cycle, err := h.cycleService.Create(r.Context(), &input)
	if err != nil {
		writeServiceError(w, h.logger, err, "Field not found")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, cycle); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/crop-cycles/{cycleID}
// Full replacement of mutable attributes; field_id cannot change.
func (h *CropCyclesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDPath(w, r, "cycleID", h.logger)
	if !ok {
		return
	}

	var input models.CropCycleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); werr != nil {
			h.logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	cycle, err := h.cycleService.Update(r.Context(), id, &input)
	if err != nil {
		writeServiceError(w, h.logger, err, "Crop cycle not found")
		return
	}
	if err := WriteJSON(w, http.StatusOK, cycle); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/crop-cycles/{cycleID}
func (h *CropCyclesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDPath(w, r, "cycleID", h.logger)
	if !ok {
		return
	}

	if err := h.cycleService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "Crop cycle not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
