package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports that a requested resource does not exist. For optional
// secondary resources (yield predictions) this is a valid terminal state, not
// a failure.
var ErrNotFound = errors.New("not found")

// ValidationError is a client-detected input problem caught before a record
// is submitted. It blocks submission and is recoverable by correcting input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// FieldError is a single field-level message in a server validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ServerRejection is a backend validation failure on a submitted record.
// Fields preserves the order the server reported them in.
type ServerRejection struct {
	StatusCode int
	Fields     []FieldError
}

func (e *ServerRejection) Error() string {
	return e.Flatten()
}

// Flatten joins the field-level messages into a single human-readable
// message, one "field: message" pair per field, in server order.
func (e *ServerRejection) Flatten() string {
	if len(e.Fields) == 0 {
		return "the server rejected the submitted record"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return strings.Join(parts, "; ")
}

// TransportError is a network or server failure on a fetch or submit. On a
// primary fetch it is fatal to the view; on a secondary fetch it degrades
// gracefully.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
