package gateway

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

// PredictionOutcome classifies a prediction lookup. A prediction that does
// not exist is a terminal non-error state and must not be folded into the
// failure case.
type PredictionOutcome int

const (
	// PredictionFound means a prediction exists and is carried in the result.
	PredictionFound PredictionOutcome = iota
	// PredictionNotFound means no prediction exists for the key. Not an error.
	PredictionNotFound
	// PredictionError means the lookup itself failed (transport or server).
	PredictionError
)

// PredictionResult is the explicit three-state outcome of a prediction
// lookup. Err is set only when Outcome is PredictionError.
type PredictionResult struct {
	Outcome    PredictionOutcome
	Prediction *models.YieldPrediction
	Err        error
}

// CurrentFieldPrediction looks up the field's current yield prediction.
func (c *Client) CurrentFieldPrediction(ctx context.Context, fieldID int64) PredictionResult {
	return c.fetchPrediction(ctx, "/fields/"+strconv.FormatInt(fieldID, 10)+"/predictions/current")
}

// LatestCyclePrediction looks up the newest prediction recorded for a crop
// cycle.
func (c *Client) LatestCyclePrediction(ctx context.Context, cycleID int64) PredictionResult {
	return c.fetchPrediction(ctx, "/crop-cycles/"+strconv.FormatInt(cycleID, 10)+"/predictions/latest")
}

func (c *Client) fetchPrediction(ctx context.Context, path string) PredictionResult {
	var p models.YieldPrediction
	err := c.do(ctx, http.MethodGet, path, nil, &p)
	switch {
	case err == nil:
		return PredictionResult{Outcome: PredictionFound, Prediction: &p}
	case errors.Is(err, apperrors.ErrNotFound):
		return PredictionResult{Outcome: PredictionNotFound}
	default:
		c.logger.Warn("Prediction lookup failed", zap.String("path", path), zap.Error(err))
		return PredictionResult{Outcome: PredictionError, Err: err}
	}
}
