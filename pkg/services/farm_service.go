package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/repositories"
)

// FarmService provides operations for farms, the roots of the hierarchy.
type FarmService interface {
	List(ctx context.Context) ([]models.Farm, error)
	Get(ctx context.Context, id int64) (*models.Farm, error)
	Create(ctx context.Context, input *models.FarmInput) (*models.Farm, error)
	Update(ctx context.Context, id int64, input *models.FarmInput) (*models.Farm, error)
	Delete(ctx context.Context, id int64) error
}

type farmService struct {
	farms  repositories.FarmRepository
	fields repositories.FieldRepository
	logger *zap.Logger
}

// NewFarmService creates a new farm service.
func NewFarmService(farms repositories.FarmRepository, fields repositories.FieldRepository, logger *zap.Logger) FarmService {
	return &farmService{
		farms:  farms,
		fields: fields,
		logger: logger.Named("farm-service"),
	}
}

var _ FarmService = (*farmService)(nil)

func (s *farmService) List(ctx context.Context) ([]models.Farm, error) {
	farms, err := s.farms.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list farms", zap.Error(err))
		return nil, err
	}
	return farms, nil
}

// Get returns a farm with its fields populated.
func (s *farmService) Get(ctx context.Context, id int64) (*models.Farm, error) {
	farm, err := s.farms.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.fields.List(ctx, &id)
	if err != nil {
		s.logger.Error("Failed to list fields of farm",
			zap.Int64("farm_id", id),
			zap.Error(err))
		return nil, err
	}
	farm.Fields = fields

	return farm, nil
}

func (s *farmService) Create(ctx context.Context, input *models.FarmInput) (*models.Farm, error) {
	if err := validateFarmInput(input); err != nil {
		return nil, err
	}
	farm, err := s.farms.Create(ctx, input)
	if err != nil {
		s.logger.Error("Failed to create farm", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Created farm", zap.Int64("farm_id", farm.ID), zap.String("name", farm.Name))
	return farm, nil
}

// Update fully replaces the farm's attributes.
func (s *farmService) Update(ctx context.Context, id int64, input *models.FarmInput) (*models.Farm, error) {
	if err := validateFarmInput(input); err != nil {
		return nil, err
	}
	farm, err := s.farms.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Updated farm", zap.Int64("farm_id", farm.ID))
	return farm, nil
}

func (s *farmService) Delete(ctx context.Context, id int64) error {
	if err := s.farms.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted farm", zap.Int64("farm_id", id))
	return nil
}

// validateFarmInput checks attributes in display order and trims the name in
// place.
func validateFarmInput(input *models.FarmInput) error {
	var rej rejection

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		rej.add("name", "must not be blank")
	} else if utf8.RuneCountInString(input.Name) > models.MaxFarmNameLen {
		rej.add("name", "must be at most 100 characters")
	}
	if input.LocationText != nil && utf8.RuneCountInString(*input.LocationText) > models.MaxLocationTextLen {
		rej.add("location_text", "must be at most 255 characters")
	}
	if input.TotalAreaHectares != nil && *input.TotalAreaHectares < 0 {
		rej.add("total_area_hectares", "must not be negative")
	}

	return rej.err()
}
