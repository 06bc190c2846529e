package widget

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/logging"
	"github.com/dshills/tschart/internal/model"
)

// BrushState is the brush drag state.
type BrushState int

const (
	// BrushIdle waits for a drag.
	BrushIdle BrushState = iota

	// BrushDragging follows the pointer.
	BrushDragging
)

// String returns the state name.
func (s BrushState) String() string {
	if s == BrushDragging {
		return "dragging"
	}
	return "idle"
}

// Brush zooms one axis of the chart to the range selected on the brush
// plot. Every drag tick writes the axis domain once.
type Brush struct {
	axes  *model.Axes
	store *model.Brush
	dim   model.Dim

	bus    *event.Bus
	logger *logging.Logger

	state  BrushState
	origin float64
	sel    [2]float64
	empty  bool
}

// NewBrush creates a brush controller zooming the axis matching the brush
// type: x brushes write xDomain, y brushes write yDomain.
func NewBrush(axes *model.Axes, store *model.Brush, opts ...Option) *Brush {
	o := buildOptions("widget.brush", opts)
	dim := model.X
	if store.Kind() == model.BrushY {
		dim = model.Y
	}
	return &Brush{
		axes:   axes,
		store:  store,
		dim:    dim,
		bus:    o.bus,
		logger: o.logger,
		empty:  true,
	}
}

// Store returns the brush attribute store.
func (b *Brush) Store() *model.Brush {
	return b.store
}

// Dim returns the zoomed axis.
func (b *Brush) Dim() model.Dim {
	return b.dim
}

// State returns the drag state.
func (b *Brush) State() BrushState {
	return b.state
}

// Empty reports whether nothing is selected.
func (b *Brush) Empty() bool {
	return b.empty
}

// Selection returns the selected data range, ascending.
func (b *Brush) Selection() ([2]float64, bool) {
	return b.sel, !b.empty
}

// Extent returns the selection in brush pixels under the current brush
// scale.
func (b *Brush) Extent() ([2]float64, bool) {
	s := b.store.Scale()
	if s == nil || b.empty {
		return [2]float64{}, false
	}
	return [2]float64{s.Map(b.sel[0]), s.Map(b.sel[1])}, true
}

// clampPx limits px to the brush pixel range.
func (b *Brush) clampPx(px float64) float64 {
	r := b.store.Range()
	lo, hi := math.Min(r[0], r[1]), math.Max(r[0], r[1])
	return math.Max(lo, math.Min(hi, px))
}

// DragStart begins a new, empty selection at brush pixel px. No attribute
// changes: the zoomed domain is only touched by DragMove and DragEnd.
func (b *Brush) DragStart(ctx context.Context, px float64) error {
	if b.store.Scale() == nil {
		return ErrNoScale
	}
	b.state = BrushDragging
	b.origin = b.clampPx(px)
	b.empty = true
	b.sel = [2]float64{}
	return b.publish(ctx)
}

// DragMove extends the selection from the drag origin to brush pixel px and
// writes the inverted data range to the zoomed axis domain.
func (b *Brush) DragMove(ctx context.Context, px float64) (attr.Result, error) {
	if b.state != BrushDragging {
		return attr.Result{}, ErrNotDragging
	}
	s := b.store.Scale()
	if s == nil {
		return attr.Result{}, ErrNoScale
	}

	px = b.clampPx(px)
	if px == b.origin {
		b.empty = true
		return attr.Result{}, b.publish(ctx)
	}
	lo, hi := snap(s.Invert(b.origin)), snap(s.Invert(px))
	if lo > hi {
		lo, hi = hi, lo
	}
	b.sel = [2]float64{lo, hi}
	b.empty = false

	return b.write(ctx, []any{lo, hi})
}

// DragEnd finishes the drag. An empty selection restores the brush's full
// domain on the zoomed axis.
func (b *Brush) DragEnd(ctx context.Context) (attr.Result, error) {
	if b.state != BrushDragging {
		return attr.Result{}, ErrNotDragging
	}
	b.state = BrushIdle
	if b.empty {
		return b.write(ctx, b.store.Domain(model.KeyDomain))
	}
	return attr.Result{}, b.publish(ctx)
}

// Select sets the selection to the data range [lo, hi] without a drag.
func (b *Brush) Select(ctx context.Context, lo, hi float64) (attr.Result, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo == hi {
		return b.Clear(ctx)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	b.sel = [2]float64{lo, hi}
	b.empty = false
	return b.write(ctx, []any{lo, hi})
}

// Clear drops the selection and restores the brush's full domain on the
// zoomed axis.
func (b *Brush) Clear(ctx context.Context) (attr.Result, error) {
	b.state = BrushIdle
	b.empty = true
	b.sel = [2]float64{}
	return b.write(ctx, b.store.Domain(model.KeyDomain))
}

// write sets the zoomed axis domain and reports the new brush state. The
// bus is held so the write and the brush event settle once.
func (b *Brush) write(ctx context.Context, domain []any) (attr.Result, error) {
	if b.bus != nil {
		release := b.bus.Hold()
		defer release()
	}

	res := b.axes.Apply(ctx, map[string]any{b.dim.Domain(): domain}, attr.WithSource("widget.brush"))
	if err := res.Err(); err != nil {
		b.logger.Warn("brush domain %v rejected: %v", domain, err)
		return res, err
	}
	return res, b.publish(ctx)
}

func (b *Brush) publish(ctx context.Context) error {
	if b.bus == nil {
		return nil
	}
	payload := events.BrushChanged{
		Dragging: b.state == BrushDragging,
		Empty:    b.empty,
		Extent:   b.sel,
	}
	if err := event.Publish(ctx, b.bus, events.TopicBrushChanged, payload, "widget.brush"); err != nil {
		return fmt.Errorf("publish brush change: %w", err)
	}
	return nil
}

// snap rounds v to 12 significant digits, so a drag between pixels that
// map to round data values yields exactly those values.
func snap(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	return r
}
