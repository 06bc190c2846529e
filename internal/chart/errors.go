package chart

import (
	"errors"
	"fmt"
)

// Chart errors.
var (
	// ErrContainer is returned for a container id that is not a valid
	// element id.
	ErrContainer = errors.New("invalid container id")

	// ErrClosed is returned by operations on a closed chart.
	ErrClosed = errors.New("chart closed")

	// ErrUnknownStore is returned for a store name outside the chart models.
	ErrUnknownStore = errors.New("unknown store")
)

// InitError reports a component that failed during New.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("chart: init %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
