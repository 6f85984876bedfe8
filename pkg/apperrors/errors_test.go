package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestServerRejection_FlattenPreservesOrder(t *testing.T) {
	rej := &ServerRejection{
		StatusCode: 422,
		Fields: []FieldError{
			{Field: "name", Message: "must not be blank"},
			{Field: "planting_date", Message: "must be provided"},
			{Field: "actual_yield_tonnes", Message: "must not be negative"},
		},
	}

	want := "name: must not be blank; planting_date: must be provided; actual_yield_tonnes: must not be negative"
	if got := rej.Flatten(); got != want {
		t.Errorf("Flatten() = %q, want %q", got, want)
	}
}

func TestServerRejection_FlattenEmptyFields(t *testing.T) {
	rej := &ServerRejection{StatusCode: 422}
	if got := rej.Flatten(); got != "the server rejected the submitted record" {
		t.Errorf("unexpected fallback message: %q", got)
	}
}

func TestServerRejection_FlattenFieldlessMessage(t *testing.T) {
	rej := &ServerRejection{
		StatusCode: 422,
		Fields: []FieldError{
			{Message: "record is inconsistent"},
			{Field: "name", Message: "must not be blank"},
		},
	}
	want := "record is inconsistent; name: must not be blank"
	if got := rej.Flatten(); got != want {
		t.Errorf("Flatten() = %q, want %q", got, want)
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Op: "GET /farms", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("expected TransportError to unwrap its cause")
	}
}

func TestErrNotFound_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("farm 42: %w", ErrNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected wrapped error to match ErrNotFound")
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "planting_date", Reason: "missing required date"}
	if got := err.Error(); got != "planting_date: missing required date" {
		t.Errorf("Error() = %q", got)
	}
}
