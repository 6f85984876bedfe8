package models

import (
	"encoding/json"
	"time"
)

// SensorReading is one measurement reported by a device in the field.
// All measurement values are optional; devices report whatever sensors they
// carry. CustomData carries any device-specific extras untouched.
type SensorReading struct {
	ID           int64           `json:"id"`
	DeviceID     string          `json:"device_id"`
	Temperature  *float64        `json:"temperature,omitempty"`
	Humidity     *float64        `json:"humidity,omitempty"`
	SoilMoisture *float64        `json:"soil_moisture,omitempty"`
	CustomData   json.RawMessage `json:"custom_data,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	ReceivedAt   time.Time       `json:"received_at"`
}

// SensorReadingInput is the record submitted by the ingest listener or the
// sensor-data endpoint.
type SensorReadingInput struct {
	DeviceID     string          `json:"device_id"`
	Temperature  *float64        `json:"temperature,omitempty"`
	Humidity     *float64        `json:"humidity,omitempty"`
	SoilMoisture *float64        `json:"soil_moisture,omitempty"`
	CustomData   json.RawMessage `json:"custom_data,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}
