package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/tschart/internal/event/topic"
)

// Event is an immutable, typed event.
type Event[T any] struct {
	// Topic is the hierarchical event name, for example "attr.canvas.width".
	Topic topic.Topic

	// Payload carries the event-specific data.
	Payload T

	// Metadata carries identification common to every event.
	Metadata Metadata
}

// Metadata is attached to every event.
type Metadata struct {
	// ID uniquely identifies this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source names the component that published the event.
	Source string
}

// NewEvent creates an event with fresh metadata.
func NewEvent[T any](t topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// EventTopic implements TopicProvider.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Topic
}

// EventMetadata returns the event metadata.
func (e Event[T]) EventMetadata() Metadata {
	return e.Metadata
}

// TopicProvider is implemented by every event the bus can route.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// EventPayload returns the payload as an untyped value.
func (e Event[T]) EventPayload() any {
	return e.Payload
}

// PayloadProvider is implemented by events that expose their payload to
// untyped handlers.
type PayloadProvider interface {
	EventPayload() any
}
