package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/services"
)

// SensorDataHandler handles the sensor reading endpoints used by devices
// without broker access and by diagnostic tooling.
type SensorDataHandler struct {
	sensorService services.SensorService
	logger        *zap.Logger
}

// NewSensorDataHandler creates a new sensor data handler.
func NewSensorDataHandler(sensorService services.SensorService, logger *zap.Logger) *SensorDataHandler {
	return &SensorDataHandler{
		sensorService: sensorService,
		logger:        logger,
	}
}

// RegisterRoutes registers the sensor data routes on the given mux.
func (h *SensorDataHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/sensor-data", h.Ingest)
	mux.HandleFunc("GET /api/v1/sensor-data/{deviceID}", h.ListByDevice)
}

// Ingest handles POST /api/v1/sensor-data
func (h *SensorDataHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var input models.SensorReadingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body"); werr != nil {
			h.logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	reading, err := h.sensorService.Ingest(r.Context(), &input)
	if err != nil {
		writeServiceError(w, h.logger, err, "Device not found")
		return
	}
	if err := WriteJSON(w, http.StatusCreated, reading); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByDevice handles GET /api/v1/sensor-data/{deviceID} with an optional
// limit parameter.
func (h *SensorDataHandler) ListByDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("deviceID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer"); werr != nil {
				h.logger.Error("Failed to write error response", zap.Error(werr))
			}
			return
		}
		limit = n
	}

	readings, err := h.sensorService.ListByDevice(r.Context(), deviceID, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Device not found")
		return
	}
	if err := WriteJSON(w, http.StatusOK, readings); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
