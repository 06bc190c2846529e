package widget

import (
	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/logging"
)

type options struct {
	bus    *event.Bus
	logger *logging.Logger
}

// Option configures a widget constructor.
type Option func(*options)

// WithBus publishes widget events on b.
func WithBus(b *event.Bus) Option {
	return func(o *options) {
		o.bus = b
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.WithComponent(component)
	return o
}
