package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
)

// parseID parses a decimal resource identifier. Identifiers are positive.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// ValidationErrorResponse writes a 422 with the ordered field-level messages.
func ValidationErrorResponse(w http.ResponseWriter, rej *apperrors.ServerRejection) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	return json.NewEncoder(w).Encode(map[string]any{
		"error":   "validation_failed",
		"message": rej.Flatten(),
		"fields":  rej.Fields,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// writeServiceError maps a service error onto the wire: not-found to 404,
// validation rejection to 422 with its fields, anything else to 500.
// notFoundMessage names the resource the 404 is about.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, notFoundMessage string) {
	var rej *apperrors.ServerRejection
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		if werr := ErrorResponse(w, http.StatusNotFound, "not_found", notFoundMessage); werr != nil {
			logger.Error("Failed to write error response", zap.Error(werr))
		}
	case errors.As(err, &rej):
		if werr := ValidationErrorResponse(w, rej); werr != nil {
			logger.Error("Failed to write error response", zap.Error(werr))
		}
	default:
		logger.Error("Request failed", zap.Error(err))
		if werr := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Internal server error"); werr != nil {
			logger.Error("Failed to write error response", zap.Error(werr))
		}
	}
}

// parseIDPath extracts a positive integer path value. Returns false after
// writing the 404 itself; a malformed id can never name a resource.
func parseIDPath(w http.ResponseWriter, r *http.Request, name string, logger *zap.Logger) (int64, bool) {
	id, err := parseID(r.PathValue(name))
	if err != nil {
		if werr := ErrorResponse(w, http.StatusNotFound, "not_found", "Resource not found"); werr != nil {
			logger.Error("Failed to write error response", zap.Error(werr))
		}
		return 0, false
	}
	return id, true
}
