package schema

import (
	"fmt"
	"strings"
)

// ValidationError represents a single rejected value.
type ValidationError struct {
	// Path is the attribute key, with an element index for array items.
	Path string

	// Message describes what's wrong.
	Message string

	// Value is the rejected value.
	Value any

	// Expected describes what was expected.
	Expected string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	}

	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e.Errors), strings.Join(msgs, "\n  - "))
}

// Add adds a validation error.
func (e *ValidationErrors) Add(err *ValidationError) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// Merge adds all errors from other.
func (e *ValidationErrors) Merge(other *ValidationErrors) {
	if other == nil {
		return
	}
	e.Errors = append(e.Errors, other.Errors...)
}

// HasErrors reports whether any error was collected.
func (e *ValidationErrors) HasErrors() bool {
	return e != nil && len(e.Errors) > 0
}

// Len returns the number of errors.
func (e *ValidationErrors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Errors)
}

// AsError returns nil when empty, otherwise e.
func (e *ValidationErrors) AsError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// ForPath returns the errors whose path is path or an element of path.
func (e *ValidationErrors) ForPath(path string) []*ValidationError {
	if e == nil {
		return nil
	}
	var out []*ValidationError
	for _, err := range e.Errors {
		if err.Path == path || strings.HasPrefix(err.Path, path+"[") {
			out = append(out, err)
		}
	}
	return out
}

// NewTypeError creates a validation error for a type mismatch.
func NewTypeError(path, expected string, actual any) *ValidationError {
	return &ValidationError{
		Path:     path,
		Message:  fmt.Sprintf("expected %s, got %T", expected, actual),
		Value:    actual,
		Expected: expected,
	}
}

// NewEnumError creates a validation error for a value outside its set.
func NewEnumError(path string, value any, allowed []string) *ValidationError {
	return &ValidationError{
		Path:     path,
		Message:  fmt.Sprintf("value %v is not one of %v", value, allowed),
		Value:    value,
		Expected: fmt.Sprintf("one of %v", allowed),
	}
}

// NewRangeError creates a validation error for an out-of-range number.
func NewRangeError(path string, value any, min, max *float64) *ValidationError {
	var expected string
	switch {
	case min != nil && max != nil:
		expected = fmt.Sprintf("between %v and %v", *min, *max)
	case min != nil:
		expected = fmt.Sprintf(">= %v", *min)
	case max != nil:
		expected = fmt.Sprintf("<= %v", *max)
	default:
		expected = "a finite number"
	}
	return &ValidationError{
		Path:     path,
		Message:  fmt.Sprintf("value %v is out of range", value),
		Value:    value,
		Expected: expected,
	}
}

// NewLengthError creates a validation error for an array of the wrong length.
func NewLengthError(path string, value any, want, got int) *ValidationError {
	return &ValidationError{
		Path:     path,
		Message:  fmt.Sprintf("expected %d elements, got %d", want, got),
		Value:    value,
		Expected: fmt.Sprintf("%d elements", want),
	}
}

// NewUnknownPropertyError creates a validation error for an undeclared key.
func NewUnknownPropertyError(path string) *ValidationError {
	return &ValidationError{
		Path:    path,
		Message: "unknown property",
	}
}
