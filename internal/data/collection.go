package data

import (
	"context"
	"fmt"

	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/logging"
)

// Collection is the ordered set of series shown by a chart.
//
// A Collection is not safe for concurrent use.
type Collection struct {
	series []Series
	bus    *event.Bus
	logger *logging.Logger
}

// Option configures a Collection.
type Option func(*Collection)

// WithBus publishes data.changed events on b.
func WithBus(b *event.Bus) Option {
	return func(c *Collection) {
		c.bus = b
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Collection) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCollection creates an empty collection.
func NewCollection(opts ...Option) *Collection {
	c := &Collection{logger: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("data")
	return c
}

// Series returns a copy of every series in order.
func (c *Collection) Series() []Series {
	out := make([]Series, len(c.series))
	for i, s := range c.series {
		out[i] = s.Clone()
	}
	return out
}

// View returns the stored series without copying. Callers must not modify
// the result.
func (c *Collection) View() []Series {
	return c.series
}

// Len returns the number of series.
func (c *Collection) Len() int {
	return len(c.series)
}

// Names returns the series names in order.
func (c *Collection) Names() []string {
	names := make([]string, len(c.series))
	for i, s := range c.series {
		names[i] = s.Name
	}
	return names
}

// Get returns a copy of the named series.
func (c *Collection) Get(name string) (Series, bool) {
	i := c.index(name)
	if i < 0 {
		return Series{}, false
	}
	return c.series[i].Clone(), true
}

// Extent returns the bounds of every point. ok is false when the collection
// holds no points.
func (c *Collection) Extent() (Extent, bool) {
	return ExtentOf(c.series)
}

// Replace swaps the whole collection. Invalid input leaves the collection
// unchanged.
func (c *Collection) Replace(ctx context.Context, series []Series) error {
	normalized, err := normalizeAll(series)
	if err != nil {
		return err
	}
	c.series = normalized
	return c.publish(ctx, events.DataReplace, c.Names())
}

// Add appends a new series.
func (c *Collection) Add(ctx context.Context, s Series) error {
	if c.index(s.Name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateSeries, s.Name)
	}
	n, err := normalize(s)
	if err != nil {
		return err
	}
	c.series = append(c.series, n)
	return c.publish(ctx, events.DataAdd, []string{s.Name})
}

// Remove deletes the named series.
func (c *Collection) Remove(ctx context.Context, name string) error {
	i := c.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSeries, name)
	}
	c.series = append(c.series[:i:i], c.series[i+1:]...)
	return c.publish(ctx, events.DataRemove, []string{name})
}

// Append adds points to the named series, keeping it sorted by x.
func (c *Collection) Append(ctx context.Context, name string, points ...Point) error {
	i := c.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSeries, name)
	}
	merged := c.series[i].Clone()
	merged.Points = append(merged.Points, points...)
	n, err := normalize(merged)
	if err != nil {
		return err
	}
	c.series[i] = n
	return c.publish(ctx, events.DataAppend, []string{name})
}

// Slide appends p to the named series and drops its oldest point, keeping the
// window length fixed.
func (c *Collection) Slide(ctx context.Context, name string, p Point) error {
	i := c.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSeries, name)
	}
	merged := c.series[i].Clone()
	merged.Points = append(merged.Points, p)
	n, err := normalize(merged)
	if err != nil {
		return err
	}
	if len(n.Points) > 1 {
		n.Points = n.Points[1:]
	}
	c.series[i] = n
	return c.publish(ctx, events.DataAppend, []string{name})
}

func (c *Collection) index(name string) int {
	for i, s := range c.series {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func (c *Collection) publish(ctx context.Context, kind events.DataKind, names []string) error {
	c.logger.Debug("data %s %v", kind, names)
	if c.bus == nil {
		return nil
	}
	return event.Publish(ctx, c.bus, events.TopicDataChanged, events.DataChanged{Kind: kind, Series: names}, "data")
}
