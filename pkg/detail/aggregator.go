package detail

import (
	"context"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/gateway"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

// Gateway is the slice of the resource gateway the aggregator needs.
type Gateway interface {
	GetField(ctx context.Context, id int64) (*models.Field, error)
	GetCropCycle(ctx context.Context, id int64) (*models.CropCycle, error)
	CurrentFieldPrediction(ctx context.Context, fieldID int64) gateway.PredictionResult
	LatestCyclePrediction(ctx context.Context, cycleID int64) gateway.PredictionResult
}

// PredictionSection is the render-ready prediction overlay of a detail
// page. Absence of a prediction is an explicit empty state; only a failed
// lookup carries a notice, and that notice never touches the page-level
// error.
type PredictionSection struct {
	Prediction *models.YieldPrediction
	// Notice is a low-severity inline message set only when the lookup
	// failed. Empty when the prediction is merely absent.
	Notice string
}

// Available reports whether the section has a prediction to render.
func (s PredictionSection) Available() bool {
	return s.Prediction != nil
}

// Result is one completed load: the mandatory primary entity and the
// optional prediction overlay. Err is set only when the primary fetch
// failed, in which case the prediction was never attempted.
type Result struct {
	Field      *models.Field
	CropCycle  *models.CropCycle
	Prediction PredictionSection
	Err        error
}

// Aggregator composes detail views from the two independently-failing
// sources. The primary fetch always runs first; the prediction fetch runs
// only after the primary succeeded, because its key and error handling
// depend on it.
type Aggregator struct {
	gw     Gateway
	logger *zap.Logger
}

// NewAggregator creates a detail aggregator over the given gateway.
func NewAggregator(gw Gateway, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{gw: gw, logger: logger}
}

// FetchField loads a field and, on success, its current yield prediction.
func (a *Aggregator) FetchField(ctx context.Context, id int64) Result {
	field, err := a.gw.GetField(ctx, id)
	if err != nil {
		return Result{Err: err}
	}
	return Result{
		Field:      field,
		Prediction: a.overlay(a.gw.CurrentFieldPrediction(ctx, id)),
	}
}

// FetchCropCycle loads a crop cycle and, on success, its latest prediction.
func (a *Aggregator) FetchCropCycle(ctx context.Context, id int64) Result {
	cycle, err := a.gw.GetCropCycle(ctx, id)
	if err != nil {
		return Result{Err: err}
	}
	return Result{
		CropCycle:  cycle,
		Prediction: a.overlay(a.gw.LatestCyclePrediction(ctx, id)),
	}
}

// overlay interprets the three-way prediction outcome. NotFound is a valid
// empty state; only a genuine failure degrades to a notice.
func (a *Aggregator) overlay(res gateway.PredictionResult) PredictionSection {
	switch res.Outcome {
	case gateway.PredictionFound:
		return PredictionSection{Prediction: res.Prediction}
	case gateway.PredictionNotFound:
		return PredictionSection{}
	default:
		a.logger.Warn("Prediction unavailable", zap.Error(res.Err))
		return PredictionSection{Notice: "yield prediction is currently unavailable"}
	}
}
