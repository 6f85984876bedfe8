package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/services"
)

// FieldsHandler handles field HTTP requests.
type FieldsHandler struct {
	fieldService services.FieldService
	logger       *zap.Logger
}

// NewFieldsHandler creates a new fields handler.
func NewFieldsHandler(fieldService services.FieldService, logger *zap.Logger) *FieldsHandler {
	return &FieldsHandler{
		fieldService: fieldService,
		logger:       logger,
	}
}

// RegisterRoutes registers the field routes on the given mux.
func (h *FieldsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/fields", h.List)
	mux.HandleFunc("POST /api/v1/fields", h.Create)
	mux.HandleFunc("GET /api/v1/fields/{fieldID}", h.Get)
	mux.HandleFunc("PUT /api/v1/fields/{fieldID}", h.Update)
	mux.HandleFunc("DELETE /api/v1/fields/{fieldID}", h.Delete)
}

// List handles GET /api/v1/fields with an optional farm_id filter.
func (h *FieldsHandler) List(w http.ResponseWriter, r *http.Request) {
	var farmID *int64
	if raw := r.URL.Query().Get("farm_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			if werr := ErrorResponse(w, http.StatusNotFound, "not_found", "Farm not found"); werr != nil {
				h.logger.Error("Failed to write error response", zap.Error(werr))
			}
			return
		}
		farmID = &id
	}

	fields, err := h.fieldService.List(r.Context(), farmID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Farm not found")
		return
	}
	if err := WriteJSON(w, http.StatusOK, fields); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/fields/{fieldID}
// The response includes the field's crop cycles.
func (h *FieldsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDPath(w, r, "fieldID", h.logger)
	if !ok {
		return
	}

	field, err := h.fieldService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Field not found")
		return
	}
	if err := WriteJSON(w, http.StatusOK, field); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/v1/fields
// A reference to a nonexistent farm is a 404, not a validation failure.
func (h *FieldsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.FieldInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); werr != nil {
			h.logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	field, err := h.fieldService.Create(r.Context(), &input)
	if err != nil {
		writeServiceError(w, h.logger, err, "Farm not found")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, field); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/fields/{fieldID}
// Full replacement of mutable attributes; farm_id cannot change.
func (h *FieldsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDPath(w, r, "fieldID", h.logger)
	if !ok {
		return
	}

	var input models.FieldInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); werr != nil {
			h.logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	field, err := h.fieldService.Update(r.Context(), id, &input)
	if err != nil {
		writeServiceError(w, h.logger, err, "Field not found")
		return
	}
	if err := WriteJSON(w, http.StatusOK, field); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/fields/{fieldID}
func (h *FieldsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDPath(w, r, "fieldID", h.logger)
	if !ok {
		return
	}

	if err := h.fieldService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "Field not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
