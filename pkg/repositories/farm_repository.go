package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/database"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

// FarmRepository defines the interface for farm data access.
type FarmRepository interface {
	Create(ctx context.Context, input *models.FarmInput) (*models.Farm, error)
	Get(ctx context.Context, id int64) (*models.Farm, error)
	List(ctx context.Context) ([]models.Farm, error)
	Update(ctx context.Context, id int64, input *models.FarmInput) (*models.Farm, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// farmRepository implements FarmRepository using PostgreSQL.
type farmRepository struct {
	db *database.DB
}

// NewFarmRepository creates a new farm repository.
func NewFarmRepository(db *database.DB) FarmRepository {
	return &farmRepository{db: db}
}

// Create inserts a new farm and returns it with generated attributes.
func (r *farmRepository) Create(ctx context.Context, input *models.FarmInput) (*models.Farm, error) {
	query := `
		INSERT INTO farms (name, location_text, total_area_hectares)
		VALUES ($1, $2, $3)
		RETURNING id, name, location_text, total_area_hectares, created_at`

	var farm models.Farm
	err := r.db.QueryRow(ctx, query, input.Name, input.LocationText, input.TotalAreaHectares).Scan(
		&farm.ID,
		&farm.Name,
		&farm.LocationText,
		&farm.TotalAreaHectares,
		&farm.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create farm: %w", err)
	}

	return &farm, nil
}

// Get retrieves a farm by ID without its fields.
func (r *farmRepository) Get(ctx context.Context, id int64) (*models.Farm, error) {
	query := `
		SELECT id, name, location_text, total_area_hectares, created_at
		FROM farms
		WHERE id = $1`

	var farm models.Farm
	err := r.db.QueryRow(ctx, query, id).Scan(
		&farm.ID,
		&farm.Name,
		&farm.LocationText,
		&farm.TotalAreaHectares,
		&farm.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}

	return &farm, nil
}

// List retrieves all farms in creation order.
func (r *farmRepository) List(ctx context.Context) ([]models.Farm, error) {
	query := `
		SELECT id, name, location_text, total_area_hectares, created_at
		FROM farms
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list farms: %w", err)
	}
	defer rows.Close()

	farms := []models.Farm{}
	for rows.Next() {
		var farm models.Farm
		if err := rows.Scan(
			&farm.ID,
			&farm.Name,
			&farm.LocationText,
			&farm.TotalAreaHectares,
			&farm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan farm: %w", err)
		}
		farms = append(farms, farm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate farms: %w", err)
	}

	return farms, nil
}

// Update fully replaces a farm's mutable attributes.
func (r *farmRepository) Update(ctx context.Context, id int64, input *models.FarmInput) (*models.Farm, error) {
	query := `
		UPDATE farms
		SET name = $2, location_text = $3, total_area_hectares = $4
		WHERE id = $1
		RETURNING id, name, location_text, total_area_hectares, created_at`

	var farm models.Farm
	err := r.db.QueryRow(ctx, query, id, input.Name, input.LocationText, input.TotalAreaHectares).Scan(
		&farm.ID,
		&farm.Name,
		&farm.LocationText,
		&farm.TotalAreaHectares,
		&farm.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update farm: %w", err)
	}

	return &farm, nil
}

// Delete removes a farm by ID. Fields and cycles are removed via CASCADE.
func (r *farmRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM farms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete farm: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Exists reports whether a farm with the given ID exists.
func (r *farmRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM farms WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check farm existence: %w", err)
	}
	return exists, nil
}

// Ensure farmRepository implements FarmRepository at compile time.
var _ FarmRepository = (*farmRepository)(nil)
