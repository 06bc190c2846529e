package widget

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/dshills/tschart/internal/data"
	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/logging"
	"github.com/dshills/tschart/internal/model"
	"github.com/dshills/tschart/internal/scene"
)

// Cursor snaps to the data point nearest the pointer and labels it.
type Cursor struct {
	axes        *model.Axes
	annotations *model.Annotations
	data        *data.Collection

	bus    *event.Bus
	logger *logging.Logger

	visible bool
	series  string
	x       float64
}

// NewCursor creates a data cursor over the series of c.
func NewCursor(axes *model.Axes, annotations *model.Annotations, c *data.Collection, opts ...Option) *Cursor {
	o := buildOptions("widget.cursor", opts)
	return &Cursor{axes: axes, annotations: annotations, data: c, bus: o.bus, logger: o.logger}
}

// Enabled reports whether the dataCursor annotation is on.
func (c *Cursor) Enabled() bool {
	return c.annotations.Bool(model.KeyDataCursor)
}

// Visible reports whether the cursor is shown.
func (c *Cursor) Visible() bool {
	return c.visible && c.Enabled()
}

// MoveTo moves the cursor to the point nearest plot pixel (px, py): the
// closest x in every series, then the series whose point is vertically
// closest.
func (c *Cursor) MoveTo(ctx context.Context, px, py float64) (events.CursorMoved, error) {
	if !c.Enabled() {
		return events.CursorMoved{Hidden: true}, ErrCursorDisabled
	}
	xs, ys := c.axes.Scale(model.X), c.axes.Scale(model.Y)
	if xs == nil || ys == nil {
		return events.CursorMoved{Hidden: true}, ErrNoScale
	}

	x := xs.Invert(px)
	best, bestDist := -1, math.Inf(1)
	var bestPoint data.Point
	series := c.data.View()
	for i, s := range series {
		j := s.Bisect(x)
		if j < 0 {
			continue
		}
		p := s.Points[j]
		if d := math.Abs(ys.Map(p.Y) - py); d < bestDist {
			best, bestDist, bestPoint = i, d, p
		}
	}
	if best < 0 {
		return events.CursorMoved{Hidden: true}, c.Hide(ctx)
	}

	c.visible = true
	c.series = series[best].Name
	c.x = bestPoint.X
	moved := events.CursorMoved{
		Series: c.series,
		Index:  series[best].Bisect(c.x),
		X:      bestPoint.X,
		Y:      bestPoint.Y,
	}
	return moved, c.publish(ctx, moved)
}

// Hide hides the cursor.
func (c *Cursor) Hide(ctx context.Context) error {
	if !c.visible {
		return nil
	}
	c.visible = false
	return c.publish(ctx, events.CursorMoved{Hidden: true})
}

// Mark returns the cursor position under the current scales, or nil when
// hidden. A cursor whose series has gone, or whose x left the domain, is
// hidden.
func (c *Cursor) Mark() *scene.CursorMark {
	if !c.Visible() {
		return nil
	}
	xs, ys := c.axes.Scale(model.X), c.axes.Scale(model.Y)
	if xs == nil || ys == nil {
		return nil
	}

	idx := -1
	var s data.Series
	for i, cand := range c.data.View() {
		if cand.Name == c.series {
			idx, s = i, cand
			break
		}
	}
	if idx < 0 {
		return nil
	}
	j := s.Bisect(c.x)
	if j < 0 {
		return nil
	}
	p := s.Points[j]
	d := xs.Domain()
	if p.X < math.Min(d[0], d[1]) || p.X > math.Max(d[0], d[1]) {
		return nil
	}
	return &scene.CursorMark{
		Series: idx,
		X:      xs.Map(p.X),
		Y:      ys.Map(p.Y),
		Label:  fmt.Sprintf("%s: %s", s.Name, strconv.FormatFloat(p.Y, 'g', 6, 64)),
	}
}

func (c *Cursor) publish(ctx context.Context, moved events.CursorMoved) error {
	if c.bus == nil {
		return nil
	}
	if err := event.Publish(ctx, c.bus, events.TopicCursorMoved, moved, "widget.cursor"); err != nil {
		return fmt.Errorf("publish cursor move: %w", err)
	}
	return nil
}
