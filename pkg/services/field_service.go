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

// FieldService provides operations for fields.
type FieldService interface {
	List(ctx context.Context, farmID *int64) ([]models.Field, error)
	Get(ctx context.Context, id int64) (*models.Field, error)
	Create(ctx context.Context, input *models.FieldInput) (*models.Field, error)
	Update(ctx context.Context, id int64, input *models.FieldInput) (*models.Field, error)
	Delete(ctx context.Context, id int64) error
}

type fieldService struct {
	fields repositories.FieldRepository
	farms  repositories.FarmRepository
	cycles repositories.CropCycleRepository
	logger *zap.Logger
}

// NewFieldService creates a new field service.
func NewFieldService(
	fields repositories.FieldRepository,
	farms repositories.FarmRepository,
	cycles repositories.CropCycleRepository,
	logger *zap.Logger,
) FieldService {
	return &fieldService{
		fields: fields,
		farms:  farms,
		cycles: cycles,
		logger: logger.Named("field-service"),
	}
}

var _ FieldService = (*fieldService)(nil)

// List returns fields, scoped to one farm when farmID is set. A filter on a
// nonexistent farm is an error, not an empty list.
func (s *fieldService) List(ctx context.Context, farmID *int64) ([]models.Field, error) {
	if farmID != nil {
		if err := s.requireFarm(ctx, *farmID); err != nil {
			return nil, err
		}
	}
	fields, err := s.fields.List(ctx, farmID)
	if err != nil {
		s.logger.Error("Failed to list fields", zap.Error(err))
		return nil, err
	}
	return fields, nil
}

// Get returns a field with its crop cycles populated.
func (s *fieldService) Get(ctx context.Context, id int64) (*models.Field, error) {
	field, err := s.fields.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cycles, err := s.cycles.List(ctx, &id)
	if err != nil {
		s.logger.Error("Failed to list crop cycles of field",
			zap.Int64("field_id", id),
			zap.Error(err))
		return nil, err
	}
	field.CropCycles = cycles

	return field, nil
}

func (s *fieldService) Create(ctx context.Context, input *models.FieldInput) (*models.Field, error) {
	if err := validateFieldInput(input); err != nil {
		return nil, err
	}
	if err := s.requireFarm(ctx, input.FarmID); err != nil {
		return nil, err
	}

	field, err := s.fields.Create(ctx, input)
	if err != nil {
		s.logger.Error("Failed to create field", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Created field",
		zap.Int64("field_id", field.ID),
		zap.Int64("farm_id", field.FarmID),
		zap.String("name", field.Name))
	return field, nil
}

// Update fully replaces the field's attributes. The farm association is
// immutable; an attempt to move the field is rejected.
func (s *fieldService) Update(ctx context.Context, id int64, input *models.FieldInput) (*models.Field, error) {
	if err := validateFieldInput(input); err != nil {
		return nil, err
	}

	existing, err := s.fields.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.FarmID != 0 && input.FarmID != existing.FarmID {
		var rej rejection
		rej.add("farm_id", "cannot be changed")
		return nil, rej.err()
	}

	field, err := s.fields.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Updated field", zap.Int64("field_id", field.ID))
	return field, nil
}

func (s *fieldService) Delete(ctx context.Context, id int64) error {
	if err := s.fields.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted field", zap.Int64("field_id", id))
	return nil
}

func (s *fieldService) requireFarm(ctx context.Context, farmID int64) error {
	exists, err := s.farms.Exists(ctx, farmID)
	if err != nil {
		s.logger.Error("Failed to check farm existence", zap.Int64("farm_id", farmID), zap.Error(err))
		return err
	}
	if !exists {
		return fmt.Errorf("farm %d: %w", farmID, apperrors.ErrNotFound)
	}
	return nil
}

// validateFieldInput checks attributes in display order and trims the name
// in place.
func validateFieldInput(input *models.FieldInput) error {
	var rej rejection

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		rej.add("name", "must not be blank")
	} else if utf8.RuneCountInString(input.Name) > models.MaxFieldNameLen {
		rej.add("name", "must be at most 100 characters")
	}
	if input.AreaHectares != nil && *input.AreaHectares < 0 {
		rej.add("area_hectares", "must not be negative")
	}
	if input.SoilType != nil && utf8.RuneCountInString(*input.SoilType) > models.MaxSoilTypeLen {
		rej.add("soil_type", "must be at most 50 characters")
	}

	return rej.err()
}
