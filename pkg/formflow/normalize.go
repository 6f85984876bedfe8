package formflow

import (
	"strconv"
	"strings"
	"time"

	"github.com/farmsight-ag/farmsight/pkg/apperrors"
)

// instantLayouts are the accepted input forms for timestamps, tried in
// order: the canonical wire form first, then the browser datetime-local
// form, then a bare date.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseInstant normalizes an entered timestamp to a canonical UTC instant.
func parseInstant(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &apperrors.ValidationError{Field: field, Reason: "not a recognizable date"}
}

// optInstant returns nil for an empty input. An absent optional date is
// omitted from the record entirely, never submitted as null.
func optInstant(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseInstant(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// optFloat returns nil for an empty input. An absent optional number is
// omitted from the record entirely, never submitted as zero.
func optFloat(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: field, Reason: "not a number"}
	}
	return &f, nil
}

// optString returns nil for an empty input so the attribute is omitted from
// the record rather than sent as an empty string.
func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// formatInstant renders a stored timestamp back into the canonical form the
// normalizer accepts, so an unchanged edit round-trips identically.
func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// formatOptInstant renders an absent optional date as an empty input.
func formatOptInstant(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatInstant(*t)
}

// formatOptFloat renders an absent optional number as an empty input.
func formatOptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// formatOptString renders an absent optional string as an empty input, not
// a sentinel.
func formatOptString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
