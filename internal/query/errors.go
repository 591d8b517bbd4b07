package query

import (
	"errors"
	"fmt"
)

// Sentinel errors for the closed set of validation failure kinds. Callers
// match against them with [errors.Is]; the concrete error value is always a
// *ValidationError carrying the offending field and raw input.
var (
	// ErrFieldNotAllowed is returned when a filter, sort or projection
	// parameter references a field outside the entity's allow-list.
	ErrFieldNotAllowed = errors.New("field not allowed")

	// ErrInvalidFieldValue is returned when a filter value cannot be
	// coerced to the field's declared type.
	ErrInvalidFieldValue = errors.New("invalid field value")

	// ErrInvalidRange is returned when a range filter's lower bound
	// exceeds its upper bound.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidPagination is returned for a negative or non-numeric
	// limit or offset.
	ErrInvalidPagination = errors.New("invalid pagination")
)

// ValidationError is the structured error returned by request validation.
// It names the failure kind, the offending field and the raw input so the
// transport layer can render an actionable 4xx body without string parsing.
type ValidationError struct {
	// Kind is one of the sentinel errors above.
	Kind error

	// Field is the parameter or field name that failed validation.
	Field string

	// Value is the raw input that was rejected.
	Value string

	// Expected describes what would have been accepted (e.g. the declared
	// field type). Optional.
	Expected string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: field %q", e.Kind, e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(", value %q", e.Value)
	}
	if e.Expected != "" {
		msg += fmt.Sprintf(", expected %s", e.Expected)
	}
	return msg
}

// Is reports whether target matches the error's kind, so that
// errors.Is(err, ErrFieldNotAllowed) works on wrapped *ValidationError values.
func (e *ValidationError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func fieldNotAllowed(field string) *ValidationError {
	return &ValidationError{Kind: ErrFieldNotAllowed, Field: field}
}

func invalidFieldValue(field, value, expected string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidFieldValue, Field: field, Value: value, Expected: expected}
}

func invalidRange(field, value string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidRange, Field: field, Value: value, Expected: "min <= max"}
}

func invalidPagination(field, value string) *ValidationError {
	return &ValidationError{Kind: ErrInvalidPagination, Field: field, Value: value, Expected: "non-negative integer"}
}
