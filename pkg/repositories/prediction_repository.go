package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/database"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

// PredictionRepository defines read-only access to yield predictions.
// Predictions are written by the batch pipeline, never by this service.
type PredictionRepository interface {
	LatestForCycle(ctx context.Context, cycleID int64) (*models.YieldPrediction, error)
	CurrentForField(ctx context.Context, fieldID int64) (*models.YieldPrediction, error)
}

// predictionRepository implements PredictionRepository using PostgreSQL.
type predictionRepository struct {
	db *database.DB
}

// NewPredictionRepository creates a new prediction repository.
func NewPredictionRepository(db *database.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

const predictionColumns = `id, crop_cycle_id, model_version, prediction_date,
		predicted_yield_tonnes, confidence_score, input_features_summary`

func scanPrediction(row pgx.Row) (*models.YieldPrediction, error) {
	var p models.YieldPrediction
	err := row.Scan(
		&p.ID,
		&p.CropCycleID,
		&p.ModelVersion,
		&p.PredictionDate,
		&p.PredictedYieldTonnes,
		&p.ConfidenceScore,
		&p.InputFeaturesSummary,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LatestForCycle retrieves the newest prediction for a crop cycle.
func (r *predictionRepository) LatestForCycle(ctx context.Context, cycleID int64) (*models.YieldPrediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM yield_predictions
		WHERE crop_cycle_id = $1
		ORDER BY prediction_date DESC, id DESC
		LIMIT 1`

	p, err := scanPrediction(r.db.QueryRow(ctx, query, cycleID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest prediction: %w", err)
	}

	return p, nil
}

// CurrentForField retrieves the newest prediction among the field's active
// cycles. A cycle is active while it has no actual harvest date.
func (r *predictionRepository) CurrentForField(ctx context.Context, fieldID int64) (*models.YieldPrediction, error) {
	query := `
		SELECT p.id, p.crop_cycle_id, p.model_version, p.prediction_date,
			p.predicted_yield_tonnes, p.confidence_score, p.input_features_summary
		FROM yield_predictions p
		JOIN crop_cycles c ON c.id = p.crop_cycle_id
		WHERE c.field_id = $1 AND c.actual_harvest_date IS NULL
		ORDER BY p.prediction_date DESC, p.id DESC
		LIMIT 1`

	p, err := scanPrediction(r.db.QueryRow(ctx, query, fieldID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get current field prediction: %w", err)
	}

	return p, nil
}

// Ensure predictionRepository implements PredictionRepository at compile time.
var _ PredictionRepository = (*predictionRepository)(nil)
