package models

import "time"

// Farm is the root of the resource hierarchy. A farm owns zero or more
// fields, ordered as the backend returns them (creation order).
type Farm struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	LocationText      *string   `json:"location_text,omitempty"`
	TotalAreaHectares *float64  `json:"total_area_hectares,omitempty"`
	CreatedAt         time.Time `json:"created_at"`

	// Fields is populated only on single-farm reads.
	Fields []Field `json:"fields,omitempty"`
}

// FarmInput is the record submitted to create or fully replace a farm.
// Optional attributes left empty by the operator are omitted from the wire
// payload, never sent as null or zero.
type FarmInput struct {
	Name              string   `json:"name"`
	LocationText      *string  `json:"location_text,omitempty"`
	TotalAreaHectares *float64 `json:"total_area_hectares,omitempty"`
}

// MaxFarmNameLen and friends bound farm attributes at the validation
// boundary; the database schema carries the same limits.
const (
	MaxFarmNameLen     = 100
	MaxLocationTextLen = 255
)
