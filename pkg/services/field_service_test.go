package services

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

func seedFarm(t *testing.T, farms *mockFarmRepo) *models.Farm {
	t.Helper()
	farm, err := farms.Create(context.Background(), &models.FarmInput{Name: "Green Valley"})
	if err != nil {
		t.Fatalf("seed farm: %v", err)
	}
	return farm
}

func TestFieldService_CreateUnderExistingFarm(t *testing.T) {
	farms := newMockFarmRepo()
	farm := seedFarm(t, farms)
	svc := NewFieldService(newMockFieldRepo(), farms, newMockCycleRepo(), zap.NewNop())

	field, err := svc.Create(context.Background(), &models.FieldInput{
		FarmID: farm.ID,
		Name:   "North 40",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if field.FarmID != farm.ID {
		t.Errorf("unexpected field %+v", field)
	}
}

func TestFieldService_CreateMissingFarmIs404(t *testing.T) {
	svc := NewFieldService(newMockFieldRepo(), newMockFarmRepo(), newMockCycleRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), &models.FieldInput{FarmID: 42, Name: "North 40"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("missing parent must be not-found, got %v", err)
	}
}

func TestFieldService_CreateBlankNameRejected(t *testing.T) {
	farms := newMockFarmRepo()
	farm := seedFarm(t, farms)
	svc := NewFieldService(newMockFieldRepo(), farms, newMockCycleRepo(), zap.NewNop())

	_, err := svc.Create(context.Background(), &models.FieldInput{FarmID: farm.ID, Name: "   "})
	var rej *apperrors.ServerRejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected ServerRejection, got %v", err)
	}
	if rej.Fields[0].Field != "name" {
		t.Errorf("unexpected fields %+v", rej.Fields)
	}
}

func TestFieldService_CreateAcceptsZeroArea(t *testing.T) {
	farms := newMockFarmRepo()
	farm := seedFarm(t, farms)
	svc := NewFieldService(newMockFieldRepo(), farms, newMockCycleRepo(), zap.NewNop())

	area := 0.0
	field, err := svc.Create(context.Background(), &models.FieldInput{
		FarmID:       farm.ID,
		Name:         "North 40",
		AreaHectares: &area,
	})
	if err != nil {
		t.Fatalf("zero area is a valid value: %v", err)
	}
	if field.AreaHectares == nil || *field.AreaHectares != 0 {
		t.Errorf("unexpected field %+v", field)
	}
}

func TestFieldService_CreateNegativeAreaRejected(t *testing.T) {
	farms := newMockFarmRepo()
	farm := seedFarm(t, farms)
	svc := NewFieldService(newMockFieldRepo(), farms, newMockCycleRepo(), zap.NewNop())

	area := -1.5
	_, err := svc.Create(context.Background(), &models.FieldInput{
		FarmID:       farm.ID,
		Name:         "North 40",
		AreaHectares: &area,
	})
	var rej *apperrors.ServerRejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected ServerRejection, got %v", err)
	}
	if rej.Fields[0].Field != "area_hectares" {
		t.Errorf("unexpected fields %+v", rej.Fields)
	}
}

func TestFieldService_UpdateCannotMoveField(t *testing.T) {
	farms := newMockFarmRepo()
	farm := seedFarm(t, farms)
	other := seedFarm(t, farms)
	fields := newMockFieldRepo()
	svc := NewFieldService(fields, farms, newMockCycleRepo(), zap.NewNop())

	field, err := svc.Create(context.Background(), &models.FieldInput{FarmID: farm.ID, Name: "North 40"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(context.Background(), field.ID, &models.FieldInput{FarmID: other.ID, Name: "North 40"})
	var rej *apperrors.ServerRejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected ServerRejection, got %v", err)
	}
	if rej.Fields[0].Field != "farm_id" {
		t.Errorf("unexpected fields %+v", rej.Fields)
	}
}

func TestFieldService_GetIncludesCycles(t *testing.T) {
	farms := newMockFarmRepo()
	farm := seedFarm(t, farms)
	fields := newMockFieldRepo()
	cycles := newMockCycleRepo()
	svc := NewFieldService(fields, farms, cycles, zap.NewNop())

	field, err := svc.Create(context.Background(), &models.FieldInput{FarmID: farm.ID, Name: "North 40"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cycles.Create(context.Background(), &models.CropCycleInput{FieldID: field.ID, CropType: "corn"}); err != nil {
		t.Fatalf("seed cycle: %v", err)
	}

	got, err := svc.Get(context.Background(), field.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.CropCycles) != 1 || got.CropCycles[0].CropType != "corn" {
		t.Errorf("expected embedded cycles, got %+v", got.CropCycles)
	}
}

func TestFieldService_ListMissingFarmFilter(t *testing.T) {
	svc := NewFieldService(newMockFieldRepo(), newMockFarmRepo(), newMockCycleRepo(), zap.NewNop())

	missing := int64(42)
	_, err := svc.List(context.Background(), &missing)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for filter on missing farm, got %v", err)
	}
}

func TestPredictionService_MissingPredictionIsNotFound(t *testing.T) {
	farms := newMockFarmRepo()
	farm := seedFarm(t, farms)
	fields := newMockFieldRepo()
	field, err := fields.Create(context.Background(), &models.FieldInput{FarmID: farm.ID, Name: "North 40"})
	if err != nil {
		t.Fatalf("seed field: %v", err)
	}

	svc := NewPredictionService(&mockPredictionRepo{}, fields, newMockCycleRepo(), zap.NewNop())
	_, err = svc.CurrentForField(context.Background(), field.ID)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPredictionService_ReturnsCurrent(t *testing.T) {
	fields := newMockFieldRepo()
	field, err := fields.Create(context.Background(), &models.FieldInput{FarmID: 1, Name: "North 40"})
	if err != nil {
		t.Fatalf("seed field: %v", err)
	}

	repo := &mockPredictionRepo{current: &models.YieldPrediction{ID: 1, CropCycleID: 2, PredictedYieldTonnes: 8.2}}
	svc := NewPredictionService(repo, fields, newMockCycleRepo(), zap.NewNop())

	p, err := svc.CurrentForField(context.Background(), field.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PredictedYieldTonnes != 8.2 {
		t.Errorf("unexpected prediction %+v", p)
	}
}

func TestSensorService_IngestDefaultsTimestamp(t *testing.T) {
	repo := &mockSensorRepo{}
	svc := NewSensorService(repo, zap.NewNop())

	reading, err := svc.Ingest(context.Background(), &models.SensorReadingInput{DeviceID: " dev-1 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.DeviceID != "dev-1" {
		t.Errorf("device id not trimmed: %q", reading.DeviceID)
	}
	if reading.Timestamp.IsZero() {
		t.Error("expected defaulted timestamp")
	}
}

func TestSensorService_IngestBlankDeviceRejected(t *testing.T) {
	svc := NewSensorService(&mockSensorRepo{}, zap.NewNop())

	_, err := svc.Ingest(context.Background(), &models.SensorReadingInput{DeviceID: "  "})
	var rej *apperrors.ServerRejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected ServerRejection, got %v", err)
	}
}
