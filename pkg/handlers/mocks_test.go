package handlers

import (
	"context"

	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/services"
)

type mockFarmService struct {
	farms     []models.Farm
	farm      *models.Farm
	err       error
	lastInput *models.FarmInput
}

var _ services.FarmService = (*mockFarmService)(nil)

func (m *mockFarmService) List(ctx context.Context) ([]models.Farm, error) {
	return m.farms, m.err
}

func (m *mockFarmService) Get(ctx context.Context, id int64) (*models.Farm, error) {
	return m.farm, m.err
}

func (m *mockFarmService) Create(ctx context.Context, input *models.FarmInput) (*models.Farm, error) {
	m.lastInput = input
	return m.farm, m.err
}

func (m *mockFarmService) Update(ctx context.Context, id int64, input *models.FarmInput) (*models.Farm, error) {
	m.lastInput = input
	return m.farm, m.err
}

func (m *mockFarmService) Delete(ctx context.Context, id int64) error {
	return m.err
}

type mockCycleService struct {
	cycles []models.CropCycle
	cycle  *models.CropCycle
	err    error
}

var _ services.CropCycleService = (*mockCycleService)(nil)

func (m *mockCycleService) List(ctx context.Context, fieldID *int64) ([]models.CropCycle, error) {
	return m.cycles, m.err
}

func (m *mockCycleService) Get(ctx context.Context, id int64) (*models.CropCycle, error) {
	return m.cycle, m.err
}

func (m *mockCycleService) Create(ctx context.Context, input *models.CropCycleInput) (*models.CropCycle, error) {
	return m.cycle, m.err
}

func (m *mockCycleService) Update(ctx context.Context, id int64, input *models.CropCycleInput) (*models.CropCycle, error) {
	return m.cycle, m.err
}

func (m *mockCycleService) Delete(ctx context.Context, id int64) error {
	return m.err
}

type mockPredictionService struct {
	prediction *models.YieldPrediction
	err        error
}

var _ services.PredictionService = (*mockPredictionService)(nil)

func (m *mockPredictionService) CurrentForField(ctx context.Context, fieldID int64) (*models.YieldPrediction, error) {
	return m.prediction, m.err
}

func (m *mockPredictionService) LatestForCycle(ctx context.Context, cycleID int64) (*models.YieldPrediction, error) {
	return m.prediction, m.err
}
