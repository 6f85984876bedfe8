package services

import (
	"context"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

// In-memory repository fakes keyed by id. Only what the service tests need.

type mockFarmRepo struct {
	farms  map[int64]*models.Farm
	nextID int64
	err    error
}

func newMockFarmRepo() *mockFarmRepo {
	return &mockFarmRepo{farms: map[int64]*models.Farm{}, nextID: 1}
}

func (m *mockFarmRepo) Create(ctx context.Context, input *models.FarmInput) (*models.Farm, error) {
	if m.err != nil {
		return nil, m.err
	}
	farm := &models.Farm{
		ID:                m.nextID,
		Name:              input.Name,
		LocationText:      input.LocationText,
		TotalAreaHectares: input.TotalAreaHectares,
	}
	m.farms[farm.ID] = farm
	m.nextID++
	return farm, nil
}

func (m *mockFarmRepo) Get(ctx context.Context, id int64) (*models.Farm, error) {
	if m.err != nil {
		return nil, m.err
	}
	farm, ok := m.farms[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *farm
	return &copied, nil
}

func (m *mockFarmRepo) List(ctx context.Context) ([]models.Farm, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []models.Farm{}
	for id := int64(1); id < m.nextID; id++ {
		if farm, ok := m.farms[id]; ok {
			out = append(out, *farm)
		}
	}
	return out, nil
}

func (m *mockFarmRepo) Update(ctx context.Context, id int64, input *models.FarmInput) (*models.Farm, error) {
	farm, ok := m.farms[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	farm.Name = input.Name
	farm.LocationText = input.LocationText
	farm.TotalAreaHectares = input.TotalAreaHectares
	copied := *farm
	return &copied, nil
}

func (m *mockFarmRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.farms[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.farms, id)
	return nil
}

func (m *mockFarmRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.farms[id]
	return ok, nil
}

type mockFieldRepo struct {
	fields map[int64]*models.Field
	nextID int64
}

func newMockFieldRepo() *mockFieldRepo {
	return &mockFieldRepo{fields: map[int64]*models.Field{}, nextID: 1}
}

func (m *mockFieldRepo) Create(ctx context.Context, input *models.FieldInput) (*models.Field, error) {
	field := &models.Field{
		ID:           m.nextID,
		FarmID:       input.FarmID,
		Name:         input.Name,
		AreaHectares: input.AreaHectares,
		SoilType:     input.SoilType,
	}
	m.fields[field.ID] = field
	m.nextID++
	return field, nil
}

func (m *mockFieldRepo) Get(ctx context.Context, id int64) (*models.Field, error) {
	field, ok := m.fields[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *field
	return &copied, nil
}

func (m *mockFieldRepo) List(ctx context.Context, farmID *int64) ([]models.Field, error) {
	out := []models.Field{}
	for id := int64(1); id < m.nextID; id++ {
		field, ok := m.fields[id]
		if !ok {
			continue
		}
		if farmID != nil && field.FarmID != *farmID {
			continue
		}
		out = append(out, *field)
	}
	return out, nil
}

func (m *mockFieldRepo) Update(ctx context.Context, id int64, input *models.FieldInput) (*models.Field, error) {
	field, ok := m.fields[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	field.Name = input.Name
	field.AreaHectares = input.AreaHectares
	field.SoilType = input.SoilType
	copied := *field
	return &copied, nil
}

func (m *mockFieldRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.fields[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.fields, id)
	return nil
}

func (m *mockFieldRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.fields[id]
	return ok, nil
}

type mockCycleRepo struct {
	cycles map[int64]*models.CropCycle
	nextID int64
}

func newMockCycleRepo() *mockCycleRepo {
	return &mockCycleRepo{cycles: map[int64]*models.CropCycle{}, nextID: 1}
}

func (m *mockCycleRepo) Create(ctx context.Context, input *models.CropCycleInput) (*models.CropCycle, error) {
	cycle := &models.CropCycle{
		ID:                  m.nextID,
		FieldID:             input.FieldID,
		CropType:            input.CropType,
		PlantingDate:        input.PlantingDate,
		ExpectedHarvestDate: input.ExpectedHarvestDate,
		ActualHarvestDate:   input.ActualHarvestDate,
		ActualYieldTonnes:   input.ActualYieldTonnes,
		Notes:               input.Notes,
	}
	m.cycles[cycle.ID] = cycle
	m.nextID++
	return cycle, nil
}

func (m *mockCycleRepo) Get(ctx context.Context, id int64) (*models.CropCycle, error) {
	cycle, ok := m.cycles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *cycle
	return &copied, nil
}

func (m *mockCycleRepo) List(ctx context.Context, fieldID *int64) ([]models.CropCycle, error) {
	out := []models.CropCycle{}
	for id := int64(1); id < m.nextID; id++ {
		cycle, ok := m.cycles[id]
		if !ok {
			continue
		}
		if fieldID != nil && cycle.FieldID != *fieldID {
			continue
		}
		out = append(out, *cycle)
	}
	return out, nil
}

func (m *mockCycleRepo) Update(ctx context.Context, id int64, input *models.CropCycleInput) (*models.CropCycle, error) {
	cycle, ok := m.cycles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cycle.CropType = input.CropType
	cycle.PlantingDate = input.PlantingDate
	cycle.ExpectedHarvestDate = input.ExpectedHarvestDate
	cycle.ActualHarvestDate = input.ActualHarvestDate
	cycle.ActualYieldTonnes = input.ActualYieldTonnes
	cycle.Notes = input.Notes
	copied := *cycle
	return &copied, nil
}

func (m *mockCycleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.cycles[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.cycles, id)
	return nil
}

type mockPredictionRepo struct {
	latest  *models.YieldPrediction
	current *models.YieldPrediction
}

func (m *mockPredictionRepo) LatestForCycle(ctx context.Context, cycleID int64) (*models.YieldPrediction, error) {
	if m.latest == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.latest, nil
}

func (m *mockPredictionRepo) CurrentForField(ctx context.Context, fieldID int64) (*models.YieldPrediction, error) {
	if m.current == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.current, nil
}

type mockSensorRepo struct {
	inserted []*models.SensorReadingInput
	nextID   int64
}

func (m *mockSensorRepo) Insert(ctx context.Context, input *models.SensorReadingInput) (*models.SensorReading, error) {
	m.inserted = append(m.inserted, input)
	m.nextID++
	return &models.SensorReading{
		ID:           m.nextID,
		DeviceID:     input.DeviceID,
		Temperature:  input.Temperature,
		Humidity:     input.Humidity,
		SoilMoisture: input.SoilMoisture,
		CustomData:   input.CustomData,
		Timestamp:    input.Timestamp,
	}, nil
}

func (m *mockSensorRepo) ListByDevice(ctx context.Context, deviceID string, limit int) ([]models.SensorReading, error) {
	return nil, nil
}
