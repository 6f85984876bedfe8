package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/testhelpers"
)

func ptr[T any](v T) *T { return &v }

func seedHierarchy(t *testing.T, ctx context.Context, farms FarmRepository, fields FieldRepository, cycles CropCycleRepository) (*models.Farm, *models.Field, *models.CropCycle) {
	t.Helper()

	farm, err := farms.Create(ctx, &models.FarmInput{
		Name:              "Green Valley",
		LocationText:      ptr("Eastern ridge"),
		TotalAreaHectares: ptr(120.5),
	})
	require.NoError(t, err)

	field, err := fields.Create(ctx, &models.FieldInput{
		FarmID:   farm.ID,
		Name:     "North 40",
		SoilType: ptr("loam"),
	})
	require.NoError(t, err)

	cycle, err := cycles.Create(ctx, &models.CropCycleInput{
		FieldID:      field.ID,
		CropType:     "corn",
		PlantingDate: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	return farm, field, cycle
}

func TestFarmRepository_CRUD(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()
	repo := NewFarmRepository(tdb.DB)

	farm, err := repo.Create(ctx, &models.FarmInput{Name: "Green Valley", TotalAreaHectares: ptr(120.5)})
	require.NoError(t, err)
	assert.NotZero(t, farm.ID)
	assert.False(t, farm.CreatedAt.IsZero())

	got, err := repo.Get(ctx, farm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Valley", got.Name)
	assert.Nil(t, got.LocationText)

	updated, err := repo.Update(ctx, farm.ID, &models.FarmInput{Name: "Green Valley East"})
	require.NoError(t, err)
	assert.Equal(t, "Green Valley East", updated.Name)
	assert.Nil(t, updated.TotalAreaHectares, "full replace must clear omitted attributes")

	exists, err := repo.Exists(ctx, farm.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, farm.ID))
	_, err = repo.Get(ctx, farm.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, farm.ID), apperrors.ErrNotFound)
}

func TestFarmRepository_ListOrder(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()
	repo := NewFarmRepository(tdb.DB)

	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		_, err := repo.Create(ctx, &models.FarmInput{Name: name})
		require.NoError(t, err)
	}

	farms, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, farms, 3)
	assert.Equal(t, "Alpha", farms[0].Name)
	assert.Equal(t, "Charlie", farms[2].Name)
}

func TestFieldRepository_FilterAndImmutableParent(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()
	farms := NewFarmRepository(tdb.DB)
	fields := NewFieldRepository(tdb.DB)

	farm, field, _ := seedHierarchy(t, ctx, farms, fields, NewCropCycleRepository(tdb.DB))
	other, err := farms.Create(ctx, &models.FarmInput{Name: "Hilltop"})
	require.NoError(t, err)

	scoped, err := fields.List(ctx, &farm.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, field.ID, scoped[0].ID)

	empty, err := fields.List(ctx, &other.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	// Update carries a different farm id; the repository must not move the
	// field.
	updated, err := fields.Update(ctx, field.ID, &models.FieldInput{FarmID: other.ID, Name: "North 40", SoilType: ptr("clay")})
	require.NoError(t, err)
	assert.Equal(t, farm.ID, updated.FarmID)
	assert.Equal(t, "clay", *updated.SoilType)
}

func TestCropCycleRepository_RoundTrip(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()
	cycles := NewCropCycleRepository(tdb.DB)

	_, _, cycle := seedHierarchy(t, ctx, NewFarmRepository(tdb.DB), NewFieldRepository(tdb.DB), cycles)
	assert.Nil(t, cycle.ActualHarvestDate)

	harvest := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	updated, err := cycles.Update(ctx, cycle.ID, &models.CropCycleInput{
		CropType:          "corn",
		PlantingDate:      cycle.PlantingDate,
		ActualHarvestDate: &harvest,
		ActualYieldTonnes: ptr(9.75),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ActualHarvestDate)
	assert.Equal(t, 9.75, *updated.ActualYieldTonnes)
	assert.Equal(t, models.CycleCompleted, updated.Status())
}

func TestDeleteFarmCascades(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()
	farms := NewFarmRepository(tdb.DB)
	fields := NewFieldRepository(tdb.DB)
	cycles := NewCropCycleRepository(tdb.DB)

	farm, field, cycle := seedHierarchy(t, ctx, farms, fields, cycles)
	require.NoError(t, farms.Delete(ctx, farm.ID))

	_, err := fields.Get(ctx, field.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = cycles.Get(ctx, cycle.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func insertPrediction(t *testing.T, tdb *testhelpers.TestDB, cycleID int64, day int, yield float64) {
	t.Helper()
	_, err := tdb.DB.Exec(context.Background(), `
		INSERT INTO yield_predictions (crop_cycle_id, model_version, prediction_date, predicted_yield_tonnes)
		VALUES ($1, 'v2', $2, $3)`,
		cycleID, time.Date(2026, 7, day, 0, 0, 0, 0, time.UTC), yield)
	require.NoError(t, err)
}

func TestPredictionRepository_LatestAndCurrent(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()
	fields := NewFieldRepository(tdb.DB)
	cycles := NewCropCycleRepository(tdb.DB)
	predictions := NewPredictionRepository(tdb.DB)

	_, field, cycle := seedHierarchy(t, ctx, NewFarmRepository(tdb.DB), fields, cycles)

	_, err := predictions.LatestForCycle(ctx, cycle.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = predictions.CurrentForField(ctx, field.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	insertPrediction(t, tdb, cycle.ID, 1, 7.4)
	insertPrediction(t, tdb, cycle.ID, 15, 8.2)

	latest, err := predictions.LatestForCycle(ctx, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.2, latest.PredictedYieldTonnes)

	current, err := predictions.CurrentForField(ctx, field.ID)
	require.NoError(t, err)
	assert.Equal(t, cycle.ID, current.CropCycleID)

	// Completing the cycle removes it from the field's current view.
	harvest := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	_, err = cycles.Update(ctx, cycle.ID, &models.CropCycleInput{
		CropType:          cycle.CropType,
		PlantingDate:      cycle.PlantingDate,
		ActualHarvestDate: &harvest,
	})
	require.NoError(t, err)

	_, err = predictions.CurrentForField(ctx, field.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The per-cycle history stays queryable after completion.
	latest, err = predictions.LatestForCycle(ctx, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.2, latest.PredictedYieldTonnes)
}

func TestSensorReadingRepository_InsertAndList(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()
	repo := NewSensorReadingRepository(tdb.DB)

	base := time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := repo.Insert(ctx, &models.SensorReadingInput{
			DeviceID:    "dev-1",
			Temperature: ptr(20.0 + float64(i)),
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, &models.SensorReadingInput{DeviceID: "dev-2", Timestamp: base})
	require.NoError(t, err)

	readings, err := repo.ListByDevice(ctx, "dev-1", 2)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 22.0, *readings[0].Temperature, "newest reading first")
	assert.Equal(t, 21.0, *readings[1].Temperature)
}
