package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/services"
)

// PredictionsHandler serves the read-only yield prediction endpoints.
type PredictionsHandler struct {
	predictionService services.PredictionService
	logger            *zap.Logger
}

// NewPredictionsHandler creates a new predictions handler.
func NewPredictionsHandler(predictionService services.PredictionService, logger *zap.Logger) *PredictionsHandler {
	return &PredictionsHandler{
		predictionService: predictionService,
		logger:            logger,
	}
}

// RegisterRoutes registers the prediction routes on the given mux.
func (h *PredictionsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/fields/{fieldID}/predictions/current", h.CurrentForField)
	mux.HandleFunc("GET /api/v1/crop-cycles/{cycleID}/predictions/latest", h.LatestForCycle)
}

// CurrentForField handles GET /api/v1/fields/{fieldID}/predictions/current
// Absence of a prediction is a plain 404; clients render it as an empty
// state.
func (h *PredictionsHandler) CurrentForField(w http.ResponseWriter, r *http.Request) {
	fieldID, ok := parseIDPath(w, r, "fieldID", h.logger)
	if !ok {
		return
	}

	prediction, err := h.predictionService.CurrentForField(r.Context(), fieldID)
	if err != nil {
		writeServiceError(w, h.logger, err, "No current prediction for field")
		return
	}
	if err := WriteJSON(w, http.StatusOK, prediction); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// LatestForCycle handles GET /api/v1/crop-cycles/{cycleID}/predictions/latest
func (h *PredictionsHandler) LatestForCycle(w http.ResponseWriter, r *http.Request) {
	cycleID, ok := parseIDPath(w, r, "cycleID", h.logger)
	if !ok {
		return
	}

	prediction, err := h.predictionService.LatestForCycle(r.Context(), cycleID)
	if err != nil {
		writeServiceError(w, h.logger, err, "No prediction for crop cycle")
		return
	}
	if err := WriteJSON(w, http.StatusOK, prediction); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
