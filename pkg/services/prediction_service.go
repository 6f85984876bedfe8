package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/repositories"
)

// PredictionService provides read-only access to yield predictions. A
// missing prediction and a missing parent both surface as not-found; the
// caller treats absence as a normal state.
type PredictionService interface {
	CurrentForField(ctx context.Context, fieldID int64) (*models.YieldPrediction, error)
	LatestForCycle(ctx context.Context, cycleID int64) (*models.YieldPrediction, error)
}

type predictionService struct {
	predictions repositories.PredictionRepository
	fields      repositories.FieldRepository
	cycles      repositories.CropCycleRepository
	logger      *zap.Logger
}

// NewPredictionService creates a new prediction service.
func NewPredictionService(
	predictions repositories.PredictionRepository,
	fields repositories.FieldRepository,
	cycles repositories.CropCycleRepository,
	logger *zap.Logger,
) PredictionService {
	return &predictionService{
		predictions: predictions,
		fields:      fields,
		cycles:      cycles,
		logger:      logger.Named("prediction-service"),
	}
}

var _ PredictionService = (*predictionService)(nil)

// CurrentForField returns the newest prediction among the field's active
// cycles.
func (s *predictionService) CurrentForField(ctx context.Context, fieldID int64) (*models.YieldPrediction, error) {
	exists, err := s.fields.Exists(ctx, fieldID)
	if err != nil {
		s.logger.Error("Failed to check field existence", zap.Int64("field_id", fieldID), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("field %d: %w", fieldID, apperrors.ErrNotFound)
	}

	return s.predictions.CurrentForField(ctx, fieldID)
}

// LatestForCycle returns the newest prediction for the cycle.
func (s *predictionService) LatestForCycle(ctx context.Context, cycleID int64) (*models.YieldPrediction, error) {
	if _, err := s.cycles.Get(ctx, cycleID); err != nil {
		return nil, err
	}

	return s.predictions.LatestForCycle(ctx, cycleID)
}
