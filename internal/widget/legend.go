package widget

import (
	"context"
	"fmt"

	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/logging"
	"github.com/dshills/tschart/internal/model"
)

// Legend checks the legend labels against the series and keeps the labels
// the scene draws.
type Legend struct {
	annotations *model.Annotations
	bus         *event.Bus
	logger      *logging.Logger

	labels []string
}

// NewLegend creates a legend controller reading labels from annotations.
func NewLegend(annotations *model.Annotations, opts ...Option) *Legend {
	o := buildOptions("widget.legend", opts)
	return &Legend{annotations: annotations, bus: o.bus, logger: o.logger}
}

// Labels returns the labels to draw, or nil when the legend is hidden.
func (l *Legend) Labels() []string {
	return append([]string(nil), l.labels...)
}

// Hide clears the drawn labels until the next Update.
func (l *Legend) Hide() {
	l.labels = nil
}

// Update matches the configured labels against the current series names.
// An empty label list hides the legend. A count mismatch hides the legend,
// logs a warning and publishes StructureMismatch; the returned error wraps
// ErrLegendMismatch.
func (l *Legend) Update(ctx context.Context, series []string) error {
	labels := l.annotations.Strings(model.KeyLegend)
	if len(labels) == 0 {
		l.labels = nil
		return nil
	}
	if len(labels) == len(series) {
		l.labels = labels
		return nil
	}

	l.labels = nil
	msg := fmt.Sprintf("%d legend labels for %d series", len(labels), len(series))
	l.logger.Warn("skipping legend: %s", msg)
	if l.bus != nil {
		payload := events.StructureMismatch{
			Component: "legend",
			Expected:  len(series),
			Actual:    len(labels),
			Message:   msg,
		}
		if err := event.Publish(ctx, l.bus, events.TopicStructureMismatch, payload, "widget.legend"); err != nil {
			l.logger.Warn("publish mismatch: %v", err)
		}
	}
	return fmt.Errorf("%w: %s", ErrLegendMismatch, msg)
}
