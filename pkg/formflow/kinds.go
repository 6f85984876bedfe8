package formflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

// FarmLister supplies the candidate parents for field forms.
type FarmLister interface {
	ListFarms(ctx context.Context) ([]models.Farm, error)
}

// FieldLister supplies the candidate parents for crop cycle forms.
type FieldLister interface {
	ListFields(ctx context.Context, farmID *int64) ([]models.Field, error)
}

// FarmKind configures the farm form. Farms are roots: no parent selector,
// no reference data, the form starts Ready.
func FarmKind() Kind {
	return Kind{
		Name: "farm",
		Fields: []FieldSpec{
			{Name: "name", Label: "Farm Name", Type: InputText, Required: true, MaxLength: models.MaxFarmNameLen},
			{Name: "location_text", Label: "Location", Type: InputText, MaxLength: models.MaxLocationTextLen},
			{Name: "total_area_hectares", Label: "Total Area (hectares)", Type: InputNumber},
		},
		Normalize: func(v Values, _ int64) (any, error) {
			area, err := optFloat("total_area_hectares", v["total_area_hectares"])
			if err != nil {
				return nil, err
			}
			return models.FarmInput{
				Name:              strings.TrimSpace(v["name"]),
				LocationText:      optString(v["location_text"]),
				TotalAreaHectares: area,
			}, nil
		},
		Seed: func(entity any) (Values, int64, error) {
			farm, ok := entity.(*models.Farm)
			if !ok {
				return nil, 0, fmt.Errorf("farm form cannot be seeded from %T", entity)
			}
			return Values{
				"name":                farm.Name,
				"location_text":       formatOptString(farm.LocationText),
				"total_area_hectares": formatOptFloat(farm.TotalAreaHectares),
			}, 0, nil
		},
	}
}

// FieldKind configures the field form. The farm selector is populated from
// the unfiltered farm list.
func FieldKind(farms FarmLister) Kind {
	return Kind{
		Name:        "field",
		ParentField: "farm_id",
		ParentNoun:  "farms",
		Fields: []FieldSpec{
			{Name: "name", Label: "Field Name", Type: InputText, Required: true, MaxLength: models.MaxFieldNameLen},
			{Name: "area_hectares", Label: "Area (hectares)", Type: InputNumber},
			{Name: "soil_type", Label: "Soil Type", Type: InputText, MaxLength: models.MaxSoilTypeLen},
		},
		LoadParentOptions: func(ctx context.Context) ([]ParentOption, error) {
			list, err := farms.ListFarms(ctx)
			if err != nil {
				return nil, err
			}
			opts := make([]ParentOption, 0, len(list))
			for _, f := range list {
				opts = append(opts, ParentOption{ID: f.ID, Label: fmt.Sprintf("%s (ID: %d)", f.Name, f.ID)})
			}
			return opts, nil
		},
		Normalize: func(v Values, parentID int64) (any, error) {
			area, err := optFloat("area_hectares", v["area_hectares"])
			if err != nil {
				return nil, err
			}
			return models.FieldInput{
				FarmID:       parentID,
				Name:         strings.TrimSpace(v["name"]),
				AreaHectares: area,
				SoilType:     optString(v["soil_type"]),
			}, nil
		},
		Seed: func(entity any) (Values, int64, error) {
			field, ok := entity.(*models.Field)
			if !ok {
				return nil, 0, fmt.Errorf("field form cannot be seeded from %T", entity)
			}
			return Values{
				"name":          field.Name,
				"area_hectares": formatOptFloat(field.AreaHectares),
				"soil_type":     formatOptString(field.SoilType),
			}, field.FarmID, nil
		},
	}
}

// CropCycleKind configures the crop cycle form. The field selector is
// populated from the unfiltered field list, and a planting date is required
// before submission.
func CropCycleKind(fields FieldLister) Kind {
	return Kind{
		Name:        "crop cycle",
		ParentField: "field_id",
		ParentNoun:  "fields",
		Fields: []FieldSpec{
			{Name: "crop_type", Label: "Crop Type", Type: InputText, Required: true, MaxLength: models.MaxCropTypeLen},
			{Name: "planting_date", Label: "Planting Date", Type: InputDateTime, Required: true},
			{Name: "expected_harvest_date", Label: "Expected Harvest Date", Type: InputDateTime},
			{Name: "actual_harvest_date", Label: "Actual Harvest Date", Type: InputDateTime},
			{Name: "actual_yield_tonnes", Label: "Actual Yield (tonnes)", Type: InputNumber},
			{Name: "notes", Label: "Notes", Type: InputTextArea},
		},
		LoadParentOptions: func(ctx context.Context) ([]ParentOption, error) {
			list, err := fields.ListFields(ctx, nil)
			if err != nil {
				return nil, err
			}
			opts := make([]ParentOption, 0, len(list))
			for _, f := range list {
				opts = append(opts, ParentOption{
					ID:    f.ID,
					Label: fmt.Sprintf("%s (Farm ID: %d, Field ID: %d)", f.Name, f.FarmID, f.ID),
				})
			}
			return opts, nil
		},
		Validate: func(v Values) *apperrors.ValidationError {
			if strings.TrimSpace(v["planting_date"]) == "" {
				return &apperrors.ValidationError{Field: "planting_date", Reason: "missing required date"}
			}
			return nil
		},
		Normalize: func(v Values, parentID int64) (any, error) {
			planting, err := parseInstant("planting_date", v["planting_date"])
			if err != nil {
				return nil, err
			}
			expected, err := optInstant("expected_harvest_date", v["expected_harvest_date"])
			if err != nil {
				return nil, err
			}
			actual, err := optInstant("actual_harvest_date", v["actual_harvest_date"])
			if err != nil {
				return nil, err
			}
			yield, err := optFloat("actual_yield_tonnes", v["actual_yield_tonnes"])
			if err != nil {
				return nil, err
			}
			return models.CropCycleInput{
				FieldID:             parentID,
				CropType:            strings.TrimSpace(v["crop_type"]),
				PlantingDate:        planting,
				ExpectedHarvestDate: expected,
				ActualHarvestDate:   actual,
				ActualYieldTonnes:   yield,
				Notes:               optString(v["notes"]),
			}, nil
		},
		Seed: func(entity any) (Values, int64, error) {
			cycle, ok := entity.(*models.CropCycle)
			if !ok {
				return nil, 0, fmt.Errorf("crop cycle form cannot be seeded from %T", entity)
			}
			return Values{
				"crop_type":             cycle.CropType,
				"planting_date":         formatInstant(cycle.PlantingDate),
				"expected_harvest_date": formatOptInstant(cycle.ExpectedHarvestDate),
				"actual_harvest_date":   formatOptInstant(cycle.ActualHarvestDate),
				"actual_yield_tonnes":   formatOptFloat(cycle.ActualYieldTonnes),
				"notes":                 formatOptString(cycle.Notes),
			}, cycle.FieldID, nil
		},
	}
}
