// Package validator provides CEF record prefix validation.
package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jittakal/cefencoder/internal/errors"
	"github.com/jittakal/cefencoder/pkg/event"
)

// RecordValidator checks the prefix fields of an encoded record.
type RecordValidator struct{}

// NewRecordValidator creates a new record validator.
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

// Validate checks that every required field is present and non-empty, then
// that severity is an integer in [0, 10].
func (v *RecordValidator) Validate(rec event.Record) error {
	if err := v.CheckRequired(rec); err != nil {
		return err
	}
	_, err := v.Severity(rec)
	return err
}

// CheckRequired reports the first required field, in header order, that is
// absent or empty.
func (v *RecordValidator) CheckRequired(rec event.Record) error {
	for _, field := range event.RequiredFields {
		if !present(rec, field) {
			return &errors.MissingFieldError{Field: field}
		}
	}
	return nil
}

// Severity returns the record's severity as an integer. The encoder stores
// severity as text; integer values are accepted for callers validating raw
// records.
func (v *RecordValidator) Severity(rec event.Record) (int, error) {
	raw, ok := rec[event.FieldSeverity]
	if !ok {
		return 0, &errors.MissingFieldError{Field: event.FieldSeverity}
	}

	switch sev := raw.(type) {
	case string:
		return ParseSeverity(sev)
	case int:
		if sev < event.MinSeverity || sev > event.MaxSeverity {
			return 0, &errors.SeverityError{Value: strconv.Itoa(sev)}
		}
		return sev, nil
	default:
		return 0, &errors.SeverityError{Value: fmt.Sprint(raw)}
	}
}

// ParseSeverity parses a base-10 integer severity. Surrounding whitespace is
// ignored. Fractional input such as "6.5" is rejected rather than truncated,
// and a value that is not a number fails the range check.
func ParseSeverity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < event.MinSeverity || n > event.MaxSeverity {
		return 0, &errors.SeverityError{Value: s}
	}
	return n, nil
}

func present(rec event.Record, field string) bool {
	v, ok := rec[field]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return s != ""
	}
	return true
}
