package event

import (
	"context"
	"fmt"
)

// Priority determines handler execution order. Lower values execute first.
type Priority int

const (
	// PriorityCritical is for stores mirroring linked attributes.
	PriorityCritical Priority = 0

	// PriorityHigh is for derived-value recomputation rules.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow is for terminal observers such as the scene graph.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Handler processes events.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle calls f(ctx, event).
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// TypedHandlerFunc handles events carrying a payload of type T.
type TypedHandlerFunc[T any] func(ctx context.Context, event Event[T]) error

// AsHandler adapts a typed handler. Events with another payload type produce
// an error wrapping ErrPayloadType.
func AsHandler[T any](fn TypedHandlerFunc[T]) Handler {
	return HandlerFunc(func(ctx context.Context, event any) error {
		typed, ok := event.(Event[T])
		if !ok {
			return fmt.Errorf("%w: %T", ErrPayloadType, event)
		}
		return fn(ctx, typed)
	})
}

// FilterFunc decides whether an event is delivered to a subscription.
type FilterFunc func(event any) bool

// Stats reports bus activity counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	Dropped       uint64
	HandlerErrors uint64
	Panics        uint64
	MaxDepth      int
}
