package ingest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/farmsight-ag/farmsight/pkg/models"
)

// knownKeys are the payload attributes with dedicated columns. Everything
// else a device reports is kept verbatim in custom_data.
var knownKeys = map[string]bool{
	"temperature":   true,
	"humidity":      true,
	"soil_moisture": true,
	"timestamp":     true,
}

// ParsePayload decodes one device message into a reading input. The device
// id comes from the topic, never the payload. A missing timestamp defaults
// to the time of receipt.
func ParsePayload(deviceID string, payload []byte) (*models.SensorReadingInput, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}

	input := &models.SensorReadingInput{DeviceID: deviceID}

	if err := unmarshalOptFloat(raw, "temperature", &input.Temperature); err != nil {
		return nil, err
	}
	if err := unmarshalOptFloat(raw, "humidity", &input.Humidity); err != nil {
		return nil, err
	}
	if err := unmarshalOptFloat(raw, "soil_moisture", &input.SoilMoisture); err != nil {
		return nil, err
	}

	if ts, ok := raw["timestamp"]; ok {
		var s string
		if err := json.Unmarshal(ts, &s); err != nil {
			return nil, fmt.Errorf("malformed timestamp: %w", err)
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("malformed timestamp: %w", err)
		}
		input.Timestamp = t.UTC()
	} else {
		input.Timestamp = time.Now().UTC()
	}

	custom := map[string]json.RawMessage{}
	for key, value := range raw {
		if !knownKeys[key] {
			custom[key] = value
		}
	}
	if len(custom) > 0 {
		data, err := json.Marshal(custom)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal custom data: %w", err)
		}
		input.CustomData = data
	}

	return input, nil
}

func unmarshalOptFloat(raw map[string]json.RawMessage, key string, dst **float64) error {
	value, ok := raw[key]
	if !ok {
		return nil
	}
	var f float64
	if err := json.Unmarshal(value, &f); err != nil {
		return fmt.Errorf("malformed %s: %w", key, err)
	}
	*dst = &f
	return nil
}
