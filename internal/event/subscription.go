package event

import "github.com/dshills/tschart/internal/event/topic"

// SubscriptionConfig holds per-subscription settings.
type SubscriptionConfig struct {
	// Priority orders delivery among subscribers of the same event.
	Priority Priority

	// Once removes the subscription after its first delivery.
	Once bool

	// Filter, when set, must return true for the event to be delivered.
	Filter FilterFunc

	// Name labels the subscriber in logs.
	Name string
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the delivery priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithOnce makes the subscription deliver at most one event.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// WithFilter sets a delivery filter.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithName labels the subscriber in logs.
func WithName(name string) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Name = name
	}
}

// Subscription is a registered handler for a topic pattern.
type Subscription struct {
	id        string
	pattern   topic.Topic
	handler   Handler
	config    SubscriptionConfig
	seq       uint64
	cancelled bool
}

// ID returns the subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Topic returns the subscribed pattern.
func (s *Subscription) Topic() topic.Topic {
	return s.pattern
}

// Config returns the subscription settings.
func (s *Subscription) Config() SubscriptionConfig {
	return s.config
}

// IsActive reports whether the subscription still receives events.
func (s *Subscription) IsActive() bool {
	return !s.cancelled
}

// Cancel stops delivery to this subscription. Prefer Bus.Unsubscribe, which
// also releases the registry entry.
func (s *Subscription) Cancel() {
	s.cancelled = true
}

func (s *Subscription) label() string {
	if s.config.Name != "" {
		return s.config.Name
	}
	return s.id
}

func (s *Subscription) shouldDeliver(event any) bool {
	if s.cancelled {
		return false
	}
	return s.config.Filter == nil || s.config.Filter(event)
}
