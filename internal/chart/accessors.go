package chart

import (
	"context"
	"fmt"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/model"
	"github.com/dshills/tschart/internal/scale"
	"github.com/dshills/tschart/internal/widget"
)

// Store returns the attribute store named name: one of the model store
// names. The brush store exists only while the brush is enabled.
func (c *Chart) Store(name string) (*attr.Store, error) {
	switch name {
	case model.StoreCanvas:
		return c.canvas.Store, nil
	case model.StoreAxes:
		return c.axes.Store, nil
	case model.StoreMarks:
		return c.marks.Store, nil
	case model.StoreAnnotations:
		return c.annotations.Store, nil
	case model.StoreWidgets:
		return c.widgets.Store, nil
	case model.StoreAnimations:
		return c.animations.Store, nil
	case model.StoreListeners:
		return c.listeners.Store, nil
	case model.StoreBrush:
		if c.brushStore != nil {
			return c.brushStore.Store, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStore, name)
}

// stores returns the live stores in a fixed order.
func (c *Chart) stores() []*attr.Store {
	out := []*attr.Store{
		c.canvas.Store, c.axes.Store, c.marks.Store, c.annotations.Store,
		c.widgets.Store, c.animations.Store, c.listeners.Store,
	}
	if c.brushStore != nil {
		out = append(out, c.brushStore.Store)
	}
	return out
}

// Apply writes a batch of attributes to one store and runs the
// recomputation rules before returning.
func (c *Chart) Apply(ctx context.Context, store string, values map[string]any) attr.Result {
	s, err := c.Store(store)
	if err != nil {
		return attr.Result{Store: store, PublishErr: err}
	}
	if c.closed {
		return attr.Result{Store: store, PublishErr: ErrClosed}
	}
	return s.Apply(ctx, values, attr.WithSource("chart"))
}

// Set writes one attribute.
func (c *Chart) Set(store, key string, value any) attr.Result {
	return c.Apply(context.Background(), store, map[string]any{key: value})
}

// Get returns a copy of one attribute.
func (c *Chart) Get(store, key string) (any, bool) {
	s, err := c.Store(store)
	if err != nil {
		return nil, false
	}
	return s.Get(key)
}

// Brush returns the brush controller, or nil while the brush is disabled.
func (c *Chart) Brush() *widget.Brush {
	return c.brush
}

// Cursor returns the data cursor controller.
func (c *Chart) Cursor() *widget.Cursor {
	return c.cursor
}

// Legend returns the legend controller.
func (c *Chart) Legend() *widget.Legend {
	return c.legend
}

// Canvas

func (c *Chart) Width() float64  { return c.canvas.Width() }
func (c *Chart) Height() float64 { return c.canvas.Height() }

func (c *Chart) SetWidth(v float64) attr.Result {
	return c.Set(model.StoreCanvas, model.KeyWidth, v)
}

func (c *Chart) SetHeight(v float64) attr.Result {
	return c.Set(model.StoreCanvas, model.KeyHeight, v)
}

// Margin returns the canvas margin.
func (c *Chart) Margin() model.Margin {
	return c.canvas.Margin()
}

// SetMargin sets all four margins.
func (c *Chart) SetMargin(m model.Margin) attr.Result {
	return c.Set(model.StoreCanvas, model.KeyMargin, m.Slice())
}

// SetMarginTop sets one side of the margin. The other sides keep their
// values.
func (c *Chart) SetMarginTop(v float64) attr.Result {
	return c.Set(model.StoreCanvas, model.KeyMarginTop, v)
}

func (c *Chart) SetMarginRight(v float64) attr.Result {
	return c.Set(model.StoreCanvas, model.KeyMarginRight, v)
}

func (c *Chart) SetMarginBottom(v float64) attr.Result {
	return c.Set(model.StoreCanvas, model.KeyMarginBottom, v)
}

func (c *Chart) SetMarginLeft(v float64) attr.Result {
	return c.Set(model.StoreCanvas, model.KeyMarginLeft, v)
}

// Graph returns the plot area size.
func (c *Chart) Graph() model.Size {
	return c.canvas.Graph()
}

// Axes

func (c *Chart) XLabel() string  { return c.axes.String(model.KeyXLabel) }
func (c *Chart) YLabel() string  { return c.axes.String(model.KeyYLabel) }
func (c *Chart) XOrient() string { return c.axes.String(model.KeyXOrient) }
func (c *Chart) YOrient() string { return c.axes.String(model.KeyYOrient) }
func (c *Chart) XType() string   { return c.axes.String(model.KeyXType) }
func (c *Chart) YType() string   { return c.axes.String(model.KeyYType) }
func (c *Chart) Round() bool     { return c.axes.Bool(model.KeyRound) }

func (c *Chart) SetXLabel(v string) attr.Result  { return c.Set(model.StoreAxes, model.KeyXLabel, v) }
func (c *Chart) SetYLabel(v string) attr.Result  { return c.Set(model.StoreAxes, model.KeyYLabel, v) }
func (c *Chart) SetXOrient(v string) attr.Result { return c.Set(model.StoreAxes, model.KeyXOrient, v) }
func (c *Chart) SetYOrient(v string) attr.Result { return c.Set(model.StoreAxes, model.KeyYOrient, v) }
func (c *Chart) SetXType(v string) attr.Result   { return c.Set(model.StoreAxes, model.KeyXType, v) }
func (c *Chart) SetYType(v string) attr.Result   { return c.Set(model.StoreAxes, model.KeyYType, v) }
func (c *Chart) SetRound(v bool) attr.Result     { return c.Set(model.StoreAxes, model.KeyRound, v) }

// XDomain returns the configured x domain; bounds are numbers or the "min"
// and "max" sentinels.
func (c *Chart) XDomain() []any {
	return c.axes.Domain(model.KeyXDomain)
}

// YDomain returns the configured y domain.
func (c *Chart) YDomain() []any {
	return c.axes.Domain(model.KeyYDomain)
}

// SetXDomain sets the x domain. Each bound is a number or "min"/"max".
func (c *Chart) SetXDomain(lo, hi any) attr.Result {
	return c.Set(model.StoreAxes, model.KeyXDomain, []any{lo, hi})
}

// SetYDomain sets the y domain. Each bound is a number or "min"/"max".
func (c *Chart) SetYDomain(lo, hi any) attr.Result {
	return c.Set(model.StoreAxes, model.KeyYDomain, []any{lo, hi})
}

// ResolvedXDomain returns the x domain with the sentinels replaced by the
// data bounds.
func (c *Chart) ResolvedXDomain() [2]float64 {
	r, _ := c.axes.Resolved(model.X)
	return r
}

// ResolvedYDomain returns the y domain with the sentinels resolved.
func (c *Chart) ResolvedYDomain() [2]float64 {
	r, _ := c.axes.Resolved(model.Y)
	return r
}

// XRange and YRange return the pixel ranges, which follow the plot area.
func (c *Chart) XRange() [2]float64 { return c.axes.Range(model.X) }
func (c *Chart) YRange() [2]float64 { return c.axes.Range(model.Y) }

// XScale and YScale return the current scales.
func (c *Chart) XScale() scale.Scale { return c.axes.Scale(model.X) }
func (c *Chart) YScale() scale.Scale { return c.axes.Scale(model.Y) }

// XAxis and YAxis return the current axis generators.
func (c *Chart) XAxis() *scale.Axis { return c.axes.Axis(model.X) }
func (c *Chart) YAxis() *scale.Axis { return c.axes.Axis(model.Y) }

func (c *Chart) XTickFormat() string { return c.axes.String(model.KeyXTickFormat) }
func (c *Chart) YTickFormat() string { return c.axes.String(model.KeyYTickFormat) }

// SetXTickFormat sets the x tick label format: "", "number:<d>",
// "percent:<d>", "si:<d>", "time:<layout>" or "lua:<body>".
func (c *Chart) SetXTickFormat(spec string) attr.Result {
	return c.Set(model.StoreAxes, model.KeyXTickFormat, spec)
}

// SetYTickFormat sets the y tick label format.
func (c *Chart) SetYTickFormat(spec string) attr.Result {
	return c.Set(model.StoreAxes, model.KeyYTickFormat, spec)
}

// Marks

func (c *Chart) Type() string          { return c.marks.Type() }
func (c *Chart) Interpolation() string { return c.marks.String(model.KeyInterpolation) }
func (c *Chart) Symbols() []string     { return c.marks.Strings(model.KeySymbols) }
func (c *Chart) Size() float64         { return c.marks.Float(model.KeySize) }

func (c *Chart) SetType(v string) attr.Result {
	return c.Set(model.StoreMarks, model.KeyType, v)
}

func (c *Chart) SetInterpolation(v string) attr.Result {
	return c.Set(model.StoreMarks, model.KeyInterpolation, v)
}

// SetSymbols sets the scatter symbols, cycled over the series.
func (c *Chart) SetSymbols(v ...string) attr.Result {
	return c.Set(model.StoreMarks, model.KeySymbols, v)
}

// SetSize sets the scatter symbol radius.
func (c *Chart) SetSize(v float64) attr.Result {
	return c.Set(model.StoreMarks, model.KeySize, v)
}

// Colors returns the explicit series colors, or nil for the automatic
// palette.
func (c *Chart) Colors() []string {
	return c.marks.Colors()
}

// SetColors sets explicit series colors and class names. No arguments
// selects the automatic palette.
func (c *Chart) SetColors(v ...string) attr.Result {
	if len(v) == 0 {
		return c.Set(model.StoreMarks, model.KeyColors, model.AutoColors)
	}
	return c.Set(model.StoreMarks, model.KeyColors, v)
}

// Annotations

func (c *Chart) Title() string     { return c.annotations.String(model.KeyTitle) }
func (c *Chart) Caption() string   { return c.annotations.String(model.KeyCaption) }
func (c *Chart) DataCursor() bool  { return c.annotations.Bool(model.KeyDataCursor) }
func (c *Chart) Editable() bool    { return c.annotations.Bool(model.KeyEditable) }
func (c *Chart) Interactive() bool { return c.annotations.Bool(model.KeyInteractive) }

// LegendLabels returns the configured legend labels. Legend().Labels()
// returns the labels actually drawn.
func (c *Chart) LegendLabels() []string {
	return c.annotations.Strings(model.KeyLegend)
}

func (c *Chart) SetTitle(v string) attr.Result {
	return c.Set(model.StoreAnnotations, model.KeyTitle, v)
}

func (c *Chart) SetCaption(v string) attr.Result {
	return c.Set(model.StoreAnnotations, model.KeyCaption, v)
}

// SetLegend sets one legend label per series. No arguments hides the
// legend.
func (c *Chart) SetLegend(labels ...string) attr.Result {
	if labels == nil {
		labels = []string{}
	}
	return c.Set(model.StoreAnnotations, model.KeyLegend, labels)
}

func (c *Chart) SetDataCursor(v bool) attr.Result {
	return c.Set(model.StoreAnnotations, model.KeyDataCursor, v)
}

func (c *Chart) SetEditable(v bool) attr.Result {
	return c.Set(model.StoreAnnotations, model.KeyEditable, v)
}

func (c *Chart) SetInteractive(v bool) attr.Result {
	return c.Set(model.StoreAnnotations, model.KeyInteractive, v)
}

// Widgets

func (c *Chart) BrushEnabled() bool { return c.widgets.BrushEnabled() }
func (c *Chart) BrushType() string  { return string(c.widgets.BrushType()) }

// SetBrushEnabled shows or removes the brush.
func (c *Chart) SetBrushEnabled(v bool) attr.Result {
	return c.Set(model.StoreWidgets, model.KeyBrush, v)
}

// SetBrushType selects the brushed axis, "x" or "y". An enabled brush is
// rebuilt for the new axis.
func (c *Chart) SetBrushType(v string) attr.Result {
	return c.Set(model.StoreWidgets, model.KeyBrushType, v)
}

// Animations

func (c *Chart) InitType() string   { return c.animations.String(model.KeyInitType) }
func (c *Chart) InitEasing() string { return c.animations.String(model.KeyInitEasing) }

// InitDuration returns the enter animation duration in milliseconds.
func (c *Chart) InitDuration() float64 {
	return c.animations.Float(model.KeyInitDuration)
}

func (c *Chart) SetInitType(v string) attr.Result {
	return c.Set(model.StoreAnimations, model.KeyInitType, v)
}

func (c *Chart) SetInitEasing(v string) attr.Result {
	return c.Set(model.StoreAnimations, model.KeyInitEasing, v)
}

// SetInitDuration sets the enter animation duration in milliseconds.
func (c *Chart) SetInitDuration(ms float64) attr.Result {
	return c.Set(model.StoreAnimations, model.KeyInitDuration, ms)
}

// Listeners

func (c *Chart) ListenChart() bool { return c.listeners.Bool(model.KeyListenChart) }
func (c *Chart) ListenData() bool  { return c.listeners.Bool(model.KeyListenData) }

// SetListenChart switches live redraws on configuration changes.
func (c *Chart) SetListenChart(v bool) attr.Result {
	return c.Set(model.StoreListeners, model.KeyListenChart, v)
}

// SetListenData switches live redraws on data changes.
func (c *Chart) SetListenData(v bool) attr.Result {
	return c.Set(model.StoreListeners, model.KeyListenData, v)
}
