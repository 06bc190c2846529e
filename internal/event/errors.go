package event

import (
	"errors"
	"fmt"

	"github.com/dshills/tschart/internal/event/topic"
)

// Sentinel errors for event bus operations.
var (
	// ErrBusClosed is returned when publishing or subscribing on a closed bus.
	ErrBusClosed = errors.New("event bus is closed")

	// ErrInvalidEvent is returned when an event carries no valid topic.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrNilHandler is returned when subscribing with a nil handler.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrInvalidTopic is returned when a subscription pattern is malformed.
	ErrInvalidTopic = errors.New("invalid topic pattern")

	// ErrInvalidSubscription is returned when unsubscribing a nil subscription.
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrCascadeDepth is returned when a nested publish exceeds the maximum depth.
	ErrCascadeDepth = errors.New("event cascade exceeded maximum depth")

	// ErrPayloadType is returned by typed handlers receiving an unexpected payload.
	ErrPayloadType = errors.New("unexpected event payload type")
)

// HandlerError wraps an error returned by a subscriber.
type HandlerError struct {
	SubscriptionID string
	Topic          topic.Topic
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s for %s: %v", e.SubscriptionID, e.Topic, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError records a recovered subscriber panic.
type PanicError struct {
	SubscriptionID string
	Topic          topic.Topic
	Value          any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler %s for %s panicked: %v", e.SubscriptionID, e.Topic, e.Value)
}
