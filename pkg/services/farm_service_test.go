package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
	"github.com/farmsight-ag/farmsight/pkg/models"
)

func TestFarmService_CreateValid(t *testing.T) {
	svc := NewFarmService(newMockFarmRepo(), newMockFieldRepo(), zap.NewNop())

	loc := "Bernalillo County"
	farm, err := svc.Create(context.Background(), &models.FarmInput{
		Name:         "Green Valley",
		LocationText: &loc,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if farm.ID == 0 || farm.Name != "Green Valley" {
		t.Errorf("unexpected farm %+v", farm)
	}
}

func TestFarmService_CreateTrimsName(t *testing.T) {
	svc := NewFarmService(newMockFarmRepo(), newMockFieldRepo(), zap.NewNop())

	farm, err := svc.Create(context.Background(), &models.FarmInput{Name: "  Green Valley  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if farm.Name != "Green Valley" {
		t.Errorf("name not trimmed: %q", farm.Name)
	}
}

func TestFarmService_CreateAcceptsZeroArea(t *testing.T) {
	svc := NewFarmService(newMockFarmRepo(), newMockFieldRepo(), zap.NewNop())

	area := 0.0
	farm, err := svc.Create(context.Background(), &models.FarmInput{
		Name:              "Green Valley",
		TotalAreaHectares: &area,
	})
	if err != nil {
		t.Fatalf("zero area is a valid value: %v", err)
	}
	if farm.TotalAreaHectares == nil || *farm.TotalAreaHectares != 0 {
		t.Errorf("unexpected farm %+v", farm)
	}
}

func TestFarmService_NameLimitCountsCharacters(t *testing.T) {
	svc := NewFarmService(newMockFarmRepo(), newMockFieldRepo(), zap.NewNop())

	// 100 two-byte characters: over 100 bytes, exactly at the character limit.
	name := strings.Repeat("å", 100)
	if _, err := svc.Create(context.Background(), &models.FarmInput{Name: name}); err != nil {
		t.Fatalf("100-character name must be accepted: %v", err)
	}

	_, err := svc.Create(context.Background(), &models.FarmInput{Name: name + "å"})
	var rej *apperrors.ServerRejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected ServerRejection for 101 characters, got %v", err)
	}
	if rej.Fields[0].Field != "name" {
		t.Errorf("unexpected fields %+v", rej.Fields)
	}
}

func TestFarmService_CreateRejectionsAreOrdered(t *testing.T) {
	svc := NewFarmService(newMockFarmRepo(), newMockFieldRepo(), zap.NewNop())

	area := -2.0
	_, err := svc.Create(context.Background(), &models.FarmInput{
		Name:              "   ",
		TotalAreaHectares: &area,
	})
	var rej *apperrors.ServerRejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected ServerRejection, got %v", err)
	}
	if len(rej.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", rej.Fields)
	}
	if rej.Fields[0].Field != "name" || rej.Fields[1].Field != "total_area_hectares" {
		t.Errorf("unexpected order %+v", rej.Fields)
	}
}

func TestFarmService_GetIncludesFields(t *testing.T) {
	farms := newMockFarmRepo()
	fields := newMockFieldRepo()
	svc := NewFarmService(farms, fields, zap.NewNop())

	farm, err := svc.Create(context.Background(), &models.FarmInput{Name: "Green Valley"})
	if err != nil {
		t.Fatalf("create farm: %v", err)
	}
	if _, err := fields.Create(context.Background(), &models.FieldInput{FarmID: farm.ID, Name: "North 40"}); err != nil {
		t.Fatalf("create field: %v", err)
	}

	got, err := svc.Get(context.Background(), farm.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Fields) != 1 || got.Fields[0].Name != "North 40" {
		t.Errorf("expected embedded fields, got %+v", got.Fields)
	}
}

func TestFarmService_GetMissing(t *testing.T) {
	svc := NewFarmService(newMockFarmRepo(), newMockFieldRepo(), zap.NewNop())
	_, err := svc.Get(context.Background(), 404)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFarmService_UpdateReplacesOptionals(t *testing.T) {
	farms := newMockFarmRepo()
	svc := NewFarmService(farms, newMockFieldRepo(), zap.NewNop())

	loc := "somewhere"
	farm, err := svc.Create(context.Background(), &models.FarmInput{Name: "Green Valley", LocationText: &loc})
	if err != nil {
		t.Fatalf("create farm: %v", err)
	}

	// Full replacement: omitting the location clears it.
	updated, err := svc.Update(context.Background(), farm.ID, &models.FarmInput{Name: "Green Valley"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.LocationText != nil {
		t.Errorf("expected location cleared, got %v", *updated.LocationText)
	}
}
