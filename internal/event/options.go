package event

import "github.com/dshills/tschart/internal/logging"

// DefaultMaxDepth bounds nested publishes.
const DefaultMaxDepth = 64

// BusOption configures a Bus.
type BusOption func(*busConfig)

type busConfig struct {
	id       string
	logger   *logging.Logger
	maxDepth int
}

func defaultBusConfig() busConfig {
	return busConfig{
		logger:   logging.Nop(),
		maxDepth: DefaultMaxDepth,
	}
}

// WithLogger sets the logger for dropped events and handler failures.
func WithLogger(l *logging.Logger) BusOption {
	return func(c *busConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxDepth sets the maximum nesting depth of publishes.
func WithMaxDepth(depth int) BusOption {
	return func(c *busConfig) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithID sets the bus identifier used in subscription IDs and logs.
func WithID(id string) BusOption {
	return func(c *busConfig) {
		c.id = id
	}
}
