package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/models"
	"github.com/farmsight-ag/farmsight/pkg/repositories"
)

// SensorService ingests and serves device sensor readings.
type SensorService interface {
	Ingest(ctx context.Context, input *models.SensorReadingInput) (*models.SensorReading, error)
	ListByDevice(ctx context.Context, deviceID string, limit int) ([]models.SensorReading, error)
}

type sensorService struct {
	readings repositories.SensorReadingRepository
	logger   *zap.Logger
}

// NewSensorService creates a new sensor service.
func NewSensorService(readings repositories.SensorReadingRepository, logger *zap.Logger) SensorService {
	return &sensorService{
		readings: readings,
		logger:   logger.Named("sensor-service"),
	}
}

var _ SensorService = (*sensorService)(nil)

// Ingest stores one reading. A missing timestamp defaults to the time of
// receipt.
func (s *sensorService) Ingest(ctx context.Context, input *models.SensorReadingInput) (*models.SensorReading, error) {
	input.DeviceID = strings.TrimSpace(input.DeviceID)
	if input.DeviceID == "" {
		var rej rejection
		rej.add("device_id", "must not be blank")
		return nil, rej.err()
	}
	if input.Timestamp.IsZero() {
		input.Timestamp = time.Now().UTC()
	}

	reading, err := s.readings.Insert(ctx, input)
	if err != nil {
		s.logger.Error("Failed to store sensor reading",
			zap.String("device_id", input.DeviceID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Debug("Stored sensor reading",
		zap.String("device_id", reading.DeviceID),
		zap.Int64("reading_id", reading.ID))
	return reading, nil
}

func (s *sensorService) ListByDevice(ctx context.Context, deviceID string, limit int) ([]models.SensorReading, error) {
	return s.readings.ListByDevice(ctx, deviceID, limit)
}
