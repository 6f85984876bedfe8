package models

import "time"

// Field belongs to exactly one farm. The farm association is immutable once
// the field exists.
type Field struct {
	ID           int64     `json:"id"`
	FarmID       int64     `json:"farm_id"`
	Name         string    `json:"name"`
	AreaHectares *float64  `json:"area_hectares,omitempty"`
	SoilType     *string   `json:"soil_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// CropCycles is populated only on single-field reads.
	CropCycles []CropCycle `json:"crop_cycles,omitempty"`
}

// FieldInput is the record submitted to create or fully replace a field.
type FieldInput struct {
	FarmID       int64    `json:"farm_id"`
	Name         string   `json:"name"`
	AreaHectares *float64 `json:"area_hectares,omitempty"`
	SoilType     *string  `json:"soil_type,omitempty"`
}

const (
	MaxFieldNameLen = 100
	MaxSoilTypeLen  = 50
)
