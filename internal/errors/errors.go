// Package errors defines application-specific error types and sentinel errors.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	ErrMissingRequiredField  = errors.New("missing required field")
	ErrInvalidSeverity       = errors.New("invalid severity")
	ErrUnknownExtensionKey   = errors.New("unknown extension key")
	ErrInvalidExtensionValue = errors.New("invalid extension value")
	ErrInvalidRecord         = errors.New("invalid record")
)

// MissingFieldError reports a required prefix field that is absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%v: field=%s", ErrMissingRequiredField, e.Field)
}

// Is reports whether target is ErrMissingRequiredField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// SeverityError reports a severity that is not an integer in [0, 10].
type SeverityError struct {
	Value string
}

func (e *SeverityError) Error() string {
	return fmt.Sprintf("%v: value=%q (must be an integer between 0 and 10)", ErrInvalidSeverity, e.Value)
}

// Is reports whether target is ErrInvalidSeverity.
func (e *SeverityError) Is(target error) bool {
	return target == ErrInvalidSeverity
}

// ExtensionError describes an extension pair that was dropped.
type ExtensionError struct {
	Key   string
	Value string
	Err   error
}

func (e *ExtensionError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: key=%s", e.Err, e.Key)
	}
	return fmt.Sprintf("%v: key=%s value=%q", e.Err, e.Key, e.Value)
}

func (e *ExtensionError) Unwrap() error {
	return e.Err
}

// ValidationError represents an event validation failure.
type ValidationError struct {
	EventID string
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: event_id=%s field=%s: %s",
		e.EventID, e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidRecord.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// RecordError ties an encoding failure to a record's position in a batch.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err aborts the encoding of a whole record.
// Extension errors are recovered locally and are not fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrMissingRequiredField) || errors.Is(err, ErrInvalidSeverity)
}

// Field returns the prefix field named by err, or "" when err does not
// concern a single field.
func Field(err error) string {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return missing.Field
	}
	var sev *SeverityError
	if errors.As(err, &sev) {
		return "severity"
	}
	return ""
}
