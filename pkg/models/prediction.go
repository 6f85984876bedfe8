package models

import (
	"encoding/json"
	"time"
)

// YieldPrediction is a read-only projection produced by the prediction
// pipeline, keyed by crop cycle. A field's "current" prediction is the
// newest prediction among its active cycles. Absence of a prediction is a
// valid state, not an error.
type YieldPrediction struct {
	ID                   int64           `json:"id"`
	CropCycleID          int64           `json:"crop_cycle_id"`
	ModelVersion         string          `json:"model_version"`
	PredictionDate       time.Time       `json:"prediction_date"`
	PredictedYieldTonnes float64         `json:"predicted_yield_tonnes"`
	ConfidenceScore      *float64        `json:"confidence_score,omitempty"`
	InputFeaturesSummary json.RawMessage `json:"input_features_summary,omitempty"`
}
