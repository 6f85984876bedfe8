package repositories

import (
	"context"
	"fmt"

	"github.com/farmsight-ag/farmsight/pkg/database"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

// SensorReadingRepository defines the interface for sensor reading storage.
type SensorReadingRepository interface {
	Insert(ctx context.Context, input *models.SensorReadingInput) (*models.SensorReading, error)
	ListByDevice(ctx context.Context, deviceID string, limit int) ([]models.SensorReading, error)
}

// sensorReadingRepository implements SensorReadingRepository using PostgreSQL.
type sensorReadingRepository struct {
	db *database.DB
}

// NewSensorReadingRepository creates a new sensor reading repository.
func NewSensorReadingRepository(db *database.DB) SensorReadingRepository {
	return &sensorReadingRepository{db: db}
}

// Insert stores one reading and returns it with the server-side receipt
// timestamp.
func (r *sensorReadingRepository) Insert(ctx context.Context, input *models.SensorReadingInput) (*models.SensorReading, error) {
	query := `
		INSERT INTO sensor_readings (device_id, temperature, humidity, soil_moisture, custom_data, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, device_id, temperature, humidity, soil_moisture, custom_data, timestamp, received_at`

	var reading models.SensorReading
	err := r.db.QueryRow(ctx, query,
		input.DeviceID,
		input.Temperature,
		input.Humidity,
		input.SoilMoisture,
		input.CustomData,
		input.Timestamp,
	).Scan(
		&reading.ID,
		&reading.DeviceID,
		&reading.Temperature,
		&reading.Humidity,
		&reading.SoilMoisture,
		&reading.CustomData,
		&reading.Timestamp,
		&reading.ReceivedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sensor reading: %w", err)
	}

	return &reading, nil
}

// ListByDevice retrieves the newest readings for a device.
func (r *sensorReadingRepository) ListByDevice(ctx context.Context, deviceID string, limit int) ([]models.SensorReading, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, device_id, temperature, humidity, soil_moisture, custom_data, timestamp, received_at
		FROM sensor_readings
		WHERE device_id = $1
		ORDER BY timestamp DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sensor readings: %w", err)
	}
	defer rows.Close()

	readings := []models.SensorReading{}
	for rows.Next() {
		var reading models.SensorReading
		if err := rows.Scan(
			&reading.ID,
			&reading.DeviceID,
			&reading.Temperature,
			&reading.Humidity,
			&reading.SoilMoisture,
			&reading.CustomData,
			&reading.Timestamp,
			&reading.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sensor reading: %w", err)
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sensor readings: %w", err)
	}

	return readings, nil
}

// Ensure sensorReadingRepository implements SensorReadingRepository at compile time.
var _ SensorReadingRepository = (*sensorReadingRepository)(nil)
