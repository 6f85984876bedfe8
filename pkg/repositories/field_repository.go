package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/database"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

// FieldRepository defines the interface for field data access.
type FieldRepository interface {
	Create(ctx context.Context, input *models.FieldInput) (*models.Field, error)
	Get(ctx context.Context, id int64) (*models.Field, error)
	List(ctx context.Context, farmID *int64) ([]models.Field, error)
	Update(ctx context.Context, id int64, input *models.FieldInput) (*models.Field, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// fieldRepository implements FieldRepository using PostgreSQL.
type fieldRepository struct {
	db *database.DB
}

// NewFieldRepository creates a new field repository.
func NewFieldRepository(db *database.DB) FieldRepository {
	return &fieldRepository{db: db}
}

// Create inserts a new field under its farm.
func (r *fieldRepository) Create(ctx context.Context, input *models.FieldInput) (*models.Field, error) {
	query := `
		INSERT INTO fields (farm_id, name, area_hectares, soil_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, farm_id, name, area_hectares, soil_type, created_at`

	var field models.Field
	err := r.db.QueryRow(ctx, query, input.FarmID, input.Name, input.AreaHectares, input.SoilType).Scan(
		&field.ID,
		&field.FarmID,
		&field.Name,
		&field.AreaHectares,
		&field.SoilType,
		&field.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}

	return &field, nil
}

// Get retrieves a field by ID without its crop cycles.
func (r *fieldRepository) Get(ctx context.Context, id int64) (*models.Field, error) {
	query := `
		SELECT id, farm_id, name, area_hectares, soil_type, created_at
		FROM fields
		WHERE id = $1`

	var field models.Field
	err := r.db.QueryRow(ctx, query, id).Scan(
		&field.ID,
		&field.FarmID,
		&field.Name,
		&field.AreaHectares,
		&field.SoilType,
		&field.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get field: %w", err)
	}

	return &field, nil
}

// List retrieves fields in creation order, optionally scoped to one farm.
func (r *fieldRepository) List(ctx context.Context, farmID *int64) ([]models.Field, error) {
	query := `
		SELECT id, farm_id, name, area_hectares, soil_type, created_at
		FROM fields`
	args := []any{}
	if farmID != nil {
		query += ` WHERE farm_id = $1`
		args = append(args, *farmID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}
	defer rows.Close()

	fields := []models.Field{}
	for rows.Next() {
		var field models.Field
		if err := rows.Scan(
			&field.ID,
			&field.FarmID,
			&field.Name,
			&field.AreaHectares,
			&field.SoilType,
			&field.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan field: %w", err)
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fields: %w", err)
	}

	return fields, nil
}

// Update fully replaces a field's mutable attributes. The farm association
// is never touched.
func (r *fieldRepository) Update(ctx context.Context, id int64, input *models.FieldInput) (*models.Field, error) {
	query := `
		UPDATE fields
		SET name = $2, area_hectares = $3, soil_type = $4
		WHERE id = $1
		RETURNING id, farm_id, name, area_hectares, soil_type, created_at`

	var field models.Field
	err := r.db.QueryRow(ctx, query, id, input.Name, input.AreaHectares, input.SoilType).Scan(
		&field.ID,
		&field.FarmID,
		&field.Name,
		&field.AreaHectares,
		&field.SoilType,
		&field.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update field: %w", err)
	}

	return &field, nil
}

// Delete removes a field by ID. Cycles are removed via CASCADE.
func (r *fieldRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM fields WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete field: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Exists reports whether a field with the given ID exists.
func (r *fieldRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM fields WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check field existence: %w", err)
	}
	return exists, nil
}

// Ensure fieldRepository implements FieldRepository at compile time.
var _ FieldRepository = (*fieldRepository)(nil)
