package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/database"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

// CropCycleRepository defines the interface for crop cycle data access.
type CropCycleRepository interface {
	Create(ctx context.Context, input *models.CropCycleInput) (*models.CropCycle, error)
	Get(ctx context.Context, id int64) (*models.CropCycle, error)
	List(ctx context.Context, fieldID *int64) ([]models.CropCycle, error)
	Update(ctx context.Context, id int64, input *models.CropCycleInput) (*models.CropCycle, error)
	Delete(ctx context.Context, id int64) error
}

// cropCycleRepository implements CropCycleRepository using PostgreSQL.
type cropCycleRepository struct {
	db *database.DB
}

// NewCropCycleRepository creates a new crop cycle repository.
func NewCropCycleRepository(db *database.DB) CropCycleRepository {
	return &cropCycleRepository{db: db}
}

const cropCycleColumns = `id, field_id, crop_type, planting_date, expected_harvest_date,
		actual_harvest_date, actual_yield_tonnes, notes, created_at`

func scanCropCycle(row pgx.Row) (*models.CropCycle, error) {
	var cycle models.CropCycle
	err := row.Scan(
		&cycle.ID,
		&cycle.FieldID,
		&cycle.CropType,
		&cycle.PlantingDate,
		&cycle.ExpectedHarvestDate,
		&cycle.ActualHarvestDate,
		&cycle.ActualYieldTonnes,
		&cycle.Notes,
		&cycle.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

// Create inserts a new crop cycle under its field.
func (r *cropCycleRepository) Create(ctx context.Context, input *models.CropCycleInput) (*models.CropCycle, error) {
	query := `
		INSERT INTO crop_cycles (field_id, crop_type, planting_date, expected_harvest_date,
			actual_harvest_date, actual_yield_tonnes, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + cropCycleColumns

	cycle, err := scanCropCycle(r.db.QueryRow(ctx, query,
		input.FieldID,
		input.CropType,
		input.PlantingDate,
		input.ExpectedHarvestDate,
		input.ActualHarvestDate,
		input.ActualYieldTonnes,
		input.Notes,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create crop cycle: %w", err)
	}

	return cycle, nil
}

// Get retrieves a crop cycle by ID.
func (r *cropCycleRepository) Get(ctx context.Context, id int64) (*models.CropCycle, error) {
	query := `SELECT ` + cropCycleColumns + ` FROM crop_cycles WHERE id = $1`

	cycle, err := scanCropCycle(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get crop cycle: %w", err)
	}

	return cycle, nil
}

// List retrieves crop cycles in creation order, optionally scoped to one
// field.
func (r *cropCycleRepository) List(ctx context.Context, fieldID *int64) ([]models.CropCycle, error) {
	query := `SELECT ` + cropCycleColumns + ` FROM crop_cycles`
	args := []any{}
	if fieldID != nil {
		query += ` WHERE field_id = $1`
		args = append(args, *fieldID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list crop cycles: %w", err)
	}
	defer rows.Close()

	cycles := []models.CropCycle{}
	for rows.Next() {
		cycle, err := scanCropCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crop cycle: %w", err)
		}
		cycles = append(cycles, *cycle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crop cycles: %w", err)
	}

	return cycles, nil
}

// Update fully replaces a crop cycle's mutable attributes. The field
// association is never touched.
func (r *cropCycleRepository) Update(ctx context.Context, id int64, input *models.CropCycleInput) (*models.CropCycle, error) {
	query := `
		UPDATE crop_cycles
		SET crop_type = $2, planting_date = $3, expected_harvest_date = $4,
			actual_harvest_date = $5, actual_yield_tonnes = $6, notes = $7
		WHERE id = $1
		RETURNING ` + cropCycleColumns

	cycle, err := scanCropCycle(r.db.QueryRow(ctx, query,
		id,
		input.CropType,
		input.PlantingDate,
		input.ExpectedHarvestDate,
		input.ActualHarvestDate,
		input.ActualYieldTonnes,
		input.Notes,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update crop cycle: %w", err)
	}

	return cycle, nil
}

// Delete removes a crop cycle by ID.
func (r *cropCycleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM crop_cycles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete crop cycle: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Ensure cropCycleRepository implements CropCycleRepository at compile time.
var _ CropCycleRepository = (*cropCycleRepository)(nil)
