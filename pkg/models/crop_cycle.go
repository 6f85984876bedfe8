package models

import "time"

// CycleStatus is derived at render time from the presence of an actual
// harvest date. It is never stored or transmitted.
type CycleStatus string

const (
	CycleActive    CycleStatus = "Active"
	CycleCompleted CycleStatus = "Completed"
)

// CropCycle belongs to exactly one field. The field association is immutable
// once the cycle exists.
type CropCycle struct {
	ID                  int64      `json:"id"`
	FieldID             int64      `json:"field_id"`
	CropType            string     `json:"crop_type"`
	PlantingDate        time.Time  `json:"planting_date"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date,omitempty"`
	ActualHarvestDate   *time.Time `json:"actual_harvest_date,omitempty"`
	ActualYieldTonnes   *float64   `json:"actual_yield_tonnes,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// Status reports whether the cycle is still in the ground. Completed means
// an actual harvest date has been recorded.
func (c CropCycle) Status() CycleStatus {
	if c.ActualHarvestDate != nil {
		return CycleCompleted
	}
	return CycleActive
}

// CropCycleInput is the record submitted to create or fully replace a crop
// cycle.
type CropCycleInput struct {
	FieldID             int64      `json:"field_id"`
	CropType            string     `json:"crop_type"`
	PlantingDate        time.Time  `json:"planting_date"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date,omitempty"`
	ActualHarvestDate   *time.Time `json:"actual_harvest_date,omitempty"`
	ActualYieldTonnes   *float64   `json:"actual_yield_tonnes,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
}

const MaxCropTypeLen = 100
