package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/repositories"
)

// CropCycleService provides operations for crop cycles.
type CropCycleService interface {
	List(ctx context.Context, fieldID *int64) ([]models.CropCycle, error)
	Get(ctx context.Context, id int64) (*models.CropCycle, error)
	Create(ctx context.Context, input *models.CropCycleInput) (*models.CropCycle, error)
	Update(ctx context.Context, id int64, input *models.CropCycleInput) (*models.CropCycle, error)
	Delete(ctx context.Context, id int64) error
}

type cropCycleService struct {
	cycles repositories.CropCycleRepository
	fields repositories.FieldRepository
	logger *zap.Logger
}

// NewCropCycleService creates a new crop cycle service.
func NewCropCycleService(
	cycles repositories.CropCycleRepository,
	fields repositories.FieldRepository,
	logger *zap.Logger,
) CropCycleService {
	return &cropCycleService{
		cycles: cycles,
		fields: fields,
		logger: logger.Named("crop-cycle-service"),
	}
}

var _ CropCycleService = (*cropCycleService)(nil)

// List returns crop cycles, scoped to one field when fieldID is set. A
// filter on a nonexistent field is an error, not an empty list.
func (s *cropCycleService) List(ctx context.Context, fieldID *int64) ([]models.CropCycle, error) {
	if fieldID != nil {
		if err := s.requireField(ctx, *fieldID); err != nil {
			return nil, err
		}
	}
	cycles, err := s.cycles.List(ctx, fieldID)
	if err != nil {
		s.logger.Error("Failed to list crop cycles", zap.Error(err))
		return nil, err
	}
	return cycles, nil
}

func (s *cropCycleService) Get(ctx context.Context, id int64) (*models.CropCycle, error) {
	return s.cycles.Get(ctx, id)
}

func (s *cropCycleService) Create(ctx context.Context, input *models.CropCycleInput) (*models.CropCycle, error) {
	if err := validateCropCycleInput(input); err != nil {
		return nil, err
	}
	if err := s.requireField(ctx, input.FieldID); err != nil {
		return nil, err
	}

	cycle, err := s.cycles.Create(ctx, input)
	if err != nil {
		s.logger.Error("Failed to create crop cycle", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Created crop cycle",
		zap.Int64("crop_cycle_id", cycle.ID),
		zap.Int64("field_id", cycle.FieldID),
		zap.String("crop_type", cycle.CropType))
	return cycle, nil
}

// Update fully replaces the cycle's attributes. The field association is
// immutable; an attempt to move the cycle is rejected.
func (s *cropCycleService) Update(ctx context.Context, id int64, input *models.CropCycleInput) (*models.CropCycle, error) {
	if err := validateCropCycleInput(input); err != nil {
		return nil, err
	}

	existing, err := s.cycles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.FieldID != 0 && input.FieldID != existing.FieldID {
		var rej rejection
		rej.add("field_id", "cannot be changed")
		return nil, rej.err()
	}

	cycle, err := s.cycles.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Updated crop cycle", zap.Int64("crop_cycle_id", cycle.ID))
	return cycle, nil
}

func (s *cropCycleService) Delete(ctx context.Context, id int64) error {
	if err := s.cycles.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted crop cycle", zap.Int64("crop_cycle_id", id))
	return nil
}

func (s *cropCycleService) requireField(ctx context.Context, fieldID int64) error {
	exists, err := s.fields.Exists(ctx, fieldID)
	if err != nil {
		s.logger.Error("Failed to check field existence", zap.Int64("field_id", fieldID), zap.Error(err))
		return err
	}
	if !exists {
		return fmt.Errorf("field %d: %w", fieldID, apperrors.ErrNotFound)
	}
	return nil
}

// validateCropCycleInput checks attributes in display order and trims the
// crop type in place.
func validateCropCycleInput(input *models.CropCycleInput) error {
	var rej rejection

	input.CropType = strings.TrimSpace(input.CropType)
	if input.CropType == "" {
		rej.add("crop_type", "must not be blank")
	} else if utf8.RuneCountInString(input.CropType) > models.MaxCropTypeLen {
		rej.add("crop_type", "must be at most 100 characters")
	}
	if input.PlantingDate.IsZero() {
		rej.add("planting_date", "must be provided")
	}
	if input.ExpectedHarvestDate != nil && !input.PlantingDate.IsZero() &&
		input.ExpectedHarvestDate.Before(input.PlantingDate) {
		rej.add("expected_harvest_date", "must not be before the planting date")
	}
	if input.ActualHarvestDate != nil && !input.PlantingDate.IsZero() &&
		input.ActualHarvestDate.Before(input.PlantingDate) {
		rej.add("actual_harvest_date", "must not be before the planting date")
	}
	if input.ActualYieldTonnes != nil && *input.ActualYieldTonnes < 0 {
		rej.add("actual_yield_tonnes", "must not be negative")
	}

	return rej.err()
}
