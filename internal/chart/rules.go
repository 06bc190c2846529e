package chart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/cascade"
	"github.com/dshills/tschart/internal/config/schema"
	"github.com/dshills/tschart/internal/data"
	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/event/topic"
	"github.com/dshills/tschart/internal/format"
	"github.com/dshills/tschart/internal/model"
	"github.com/dshills/tschart/internal/scale"
	"github.com/dshills/tschart/internal/scene"
	"github.com/dshills/tschart/internal/widget"
)

// Topic helpers for the rule table.
func canvasT(key string) topic.Topic      { return events.Attr(model.StoreCanvas, key) }
func axesT(key string) topic.Topic        { return events.Attr(model.StoreAxes, key) }
func marksT(key string) topic.Topic       { return events.Attr(model.StoreMarks, key) }
func annotationsT(key string) topic.Topic { return events.Attr(model.StoreAnnotations, key) }
func widgetsT(key string) topic.Topic     { return events.Attr(model.StoreWidgets, key) }
func brushT(key string) topic.Topic       { return events.Attr(model.StoreBrush, key) }

// both lists the two dimensions.
var both = []model.Dim{model.X, model.Y}

// rules returns the fixed rule table of a chart.
func (c *Chart) rules() []cascade.Rule {
	return []cascade.Rule{
		{
			Name:     "graph",
			Triggers: []topic.Topic{canvasT(model.KeyWidth), canvasT(model.KeyHeight), canvasT(model.KeyMargin)},
			Writes:   []topic.Topic{canvasT(model.KeyGraph)},
			Run:      c.updateGraph,
		},
		{
			Name:     "ranges",
			Triggers: []topic.Topic{canvasT(model.KeyGraph)},
			Writes:   []topic.Topic{axesT(model.KeyXRange), axesT(model.KeyYRange)},
			Run:      c.updateRanges,
		},
		{
			Name: "domains",
			Triggers: []topic.Topic{
				events.TopicDataChanged, axesT(model.KeyXDomain), axesT(model.KeyYDomain), marksT(model.KeyType),
			},
			Writes: []topic.Topic{axesT(model.KeyXResolved), axesT(model.KeyYResolved)},
			Run:    c.updateDomains,
		},
		{
			Name: "scales",
			Triggers: []topic.Topic{
				axesT(model.KeyXResolved), axesT(model.KeyYResolved),
				axesT(model.KeyXRange), axesT(model.KeyYRange),
				axesT(model.KeyXType), axesT(model.KeyYType),
				axesT(model.KeyRound), events.TopicDataChanged,
			},
			Writes: []topic.Topic{axesT(model.KeyXScale), axesT(model.KeyYScale)},
			Run:    c.updateScales,
		},
		{
			Name: "axes",
			Triggers: []topic.Topic{
				axesT(model.KeyXScale), axesT(model.KeyYScale),
				axesT(model.KeyXOrient), axesT(model.KeyYOrient),
				axesT(model.KeyXTickFormat), axesT(model.KeyYTickFormat),
				axesT(model.KeyXLabel), axesT(model.KeyYLabel),
			},
			Writes: []topic.Topic{axesT(model.KeyXAxis), axesT(model.KeyYAxis)},
			Run:    c.updateAxes,
		},
		{
			Name:     "legend",
			Triggers: []topic.Topic{annotationsT(model.KeyLegend), events.TopicDataChanged},
			Run:      c.updateLegend,
		},
		{
			Name:     "brush-layout",
			Triggers: []topic.Topic{widgetsT(model.KeyBrush), widgetsT(model.KeyBrushType)},
			Run:      c.updateBrushLayout,
		},
		{
			Name: "redraw-domains",
			Triggers: []topic.Topic{
				axesT(model.KeyXResolved), axesT(model.KeyYResolved),
				axesT(model.KeyXScale), axesT(model.KeyYScale),
			},
			Run: c.redraw(scene.LayerMarks, scene.LayerLegend, scene.LayerCursor),
		},
		{
			Name:     "redraw-axes",
			Triggers: []topic.Topic{axesT(model.KeyXAxis), axesT(model.KeyYAxis)},
			Run:      c.redraw(scene.LayerAxes),
		},
		{
			Name: "redraw-layout",
			Triggers: []topic.Topic{
				canvasT(model.KeyGraph), canvasT(model.KeyWidth), canvasT(model.KeyHeight), marksT(model.KeyType),
			},
			Run: c.redrawAll,
		},
		{
			Name:     "redraw-marks",
			Triggers: []topic.Topic{events.AttrStore(model.StoreMarks), events.AttrStore(model.StoreAnimations)},
			Run:      c.redraw(scene.LayerMarks, scene.LayerLegend, scene.LayerCursor),
		},
		{
			Name:     "redraw-annotations",
			Triggers: []topic.Topic{events.AttrStore(model.StoreAnnotations)},
			Run:      c.redraw(scene.LayerAnnotations, scene.LayerLegend, scene.LayerCursor),
		},
		{
			Name:     "redraw-data",
			Triggers: []topic.Topic{events.TopicDataChanged},
			Run:      c.redrawData,
		},
		{
			Name:     "redraw-listeners",
			Triggers: []topic.Topic{events.AttrStore(model.StoreListeners)},
			Run:      c.redrawListeners,
		},
		{
			Name:     "redraw-brush",
			Triggers: []topic.Topic{events.TopicBrushChanged},
			Run:      c.redraw(scene.LayerBrush),
		},
		{
			Name:     "redraw-cursor",
			Triggers: []topic.Topic{events.TopicCursorMoved},
			Run:      c.redraw(scene.LayerCursor),
		},
	}
}

// dimsOf returns the dimensions an axes trigger concerns. Other triggers,
// and the initial run, concern both.
func dimsOf(t cascade.Trigger) []model.Dim {
	segs := t.Topic.Segments()
	if len(segs) != 3 || segs[0] != string(events.TopicAttrPrefix) || segs[1] != model.StoreAxes {
		return both
	}
	key := strings.TrimPrefix(segs[2], "_")
	switch {
	case strings.HasPrefix(key, "x"):
		return []model.Dim{model.X}
	case strings.HasPrefix(key, "y"):
		return []model.Dim{model.Y}
	}
	return both
}

// live reports whether a trigger redraws the rendered chart under the
// listener switches. Before the first render everything is drawn anyway.
func (c *Chart) live(t cascade.Trigger) bool {
	if c.scene == nil || !c.scene.Rendered() {
		return true
	}
	switch {
	case t.Topic == events.TopicDataChanged:
		return c.listeners.Bool(model.KeyListenData)
	case t.Topic.HasPrefix(events.TopicAttrPrefix):
		return c.listeners.Bool(model.KeyListenChart)
	}
	return true
}

// updateGraph derives the plot area from the canvas size and margin. Margins
// larger than the canvas leave a zero-size plot area.
func (c *Chart) updateGraph(ctx context.Context, _ cascade.Trigger) error {
	g := c.canvas.Inner()
	g.Width = math.Max(0, g.Width)
	g.Height = math.Max(0, g.Height)
	c.canvas.Apply(ctx, map[string]any{model.KeyGraph: g},
		attr.WithoutValidation(), attr.WithSource("rule.graph"))
	return nil
}

// updateRanges stretches the axes over the plot area, y growing upwards.
func (c *Chart) updateRanges(ctx context.Context, _ cascade.Trigger) error {
	g := c.canvas.Graph()
	c.axes.Apply(ctx, map[string]any{
		model.KeyXRange: []float64{0, g.Width},
		model.KeyYRange: []float64{g.Height, 0},
	}, attr.WithoutValidation(), attr.WithSource("rule.ranges"))
	return nil
}

// updateDomains resolves the min and max sentinels of both domains against
// the data.
func (c *Chart) updateDomains(ctx context.Context, t cascade.Trigger) error {
	if t.Topic == events.TopicDataChanged && !c.live(t) {
		return nil
	}
	values := make(map[string]any, 2)
	for _, d := range both {
		ext, ok := c.extent(d)
		r := resolveDomain(c.axes.Domain(d.Domain()), ext, ok)
		values[d.Resolved()] = []float64{r[0], r[1]}
	}
	c.axes.Apply(ctx, values, attr.WithoutValidation(), attr.WithSource("rule.domains"))
	return nil
}

// extent returns the data bounds along d. Stacked marks use the bounds of
// the stacked bands along y.
func (c *Chart) extent(d model.Dim) ([2]float64, bool) {
	series := c.data.View()
	if d == model.Y && c.marks.Stacked() {
		lo, hi, ok := data.StackExtent(data.Stack(series, c.stackOffset()))
		return [2]float64{lo, hi}, ok
	}
	e, ok := data.ExtentOf(series)
	if d == model.X {
		return e.X, ok
	}
	return e.Y, ok
}

func (c *Chart) stackOffset() data.StackOffset {
	if c.marks.Type() == model.MarkSteamgraph {
		return data.OffsetWiggle
	}
	return data.OffsetZero
}

// resolveDomain replaces "min" and "max" with the data bounds, or with 0 and
// 1 when there is no data. Numeric bounds are kept.
func resolveDomain(spec []any, ext [2]float64, ok bool) [2]float64 {
	if !ok {
		ext = [2]float64{0, 1}
	}
	out := ext
	for i := 0; i < 2 && i < len(spec); i++ {
		switch v := spec[i].(type) {
		case float64:
			out[i] = v
		case string:
			if v == "min" {
				out[i] = ext[0]
			} else {
				out[i] = ext[1]
			}
		}
	}
	return out
}

// values returns every data value along d, for scales built from samples.
func (c *Chart) values(d model.Dim) []float64 {
	var out []float64
	for _, s := range c.data.View() {
		for _, p := range s.Points {
			if d == model.X {
				out = append(out, p.X)
			} else {
				out = append(out, p.Y)
			}
		}
	}
	return out
}

// buildScale creates the scale of d from the resolved domain, the range and
// the scale type of that same dimension.
func (c *Chart) buildScale(d model.Dim) (scale.Scale, error) {
	dom, ok := c.axes.Resolved(d)
	if !ok {
		return nil, nil
	}
	kind := c.axes.Kind(d)
	opts := []scale.Option{scale.WithNice(c.axes.Bool(model.KeyRound))}
	if kind == scale.KindQuantile || kind == scale.KindOrdinal {
		opts = append(opts, scale.WithValues(c.values(d)))
	}
	s, err := scale.New(kind, dom, c.axes.Range(d), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s scale: %w", d, err)
	}
	return s, nil
}

// checkScales refuses axes writes whose scale cannot be built over the
// current data, such as a log type over a domain that includes 0. The type
// key is blamed when both the type and the domain change.
func (c *Chart) checkScales(pending map[string]any, current func(string) any) []*schema.ValidationError {
	if c.data == nil {
		return nil
	}
	var errs []*schema.ValidationError
	for _, d := range both {
		typ, typeSet := pending[d.Type()]
		dom, domainSet := pending[d.Domain()]
		if !typeSet && !domainSet {
			continue
		}
		if !typeSet {
			typ = current(d.Type())
		}
		if !domainSet {
			dom = current(d.Domain())
		}

		kind, _ := typ.(string)
		spec, _ := dom.([]any)
		ext, ok := c.extent(d)
		var opts []scale.Option
		if scale.Kind(kind) == scale.KindQuantile || scale.Kind(kind) == scale.KindOrdinal {
			opts = append(opts, scale.WithValues(c.values(d)))
		}
		_, err := scale.New(scale.Kind(kind), resolveDomain(spec, ext, ok), c.axes.Range(d), opts...)
		if err == nil {
			continue
		}
		verr := &schema.ValidationError{Path: d.Domain(), Message: err.Error(), Value: dom}
		if typeSet {
			verr.Path, verr.Value = d.Type(), typ
		}
		errs = append(errs, verr)
	}
	return errs
}

// updateScales rebuilds the scales a trigger concerns. A rebuilt scale equal
// to the current one is not written.
func (c *Chart) updateScales(ctx context.Context, t cascade.Trigger) error {
	var errs []error
	values := make(map[string]any, 2)
	for _, d := range dimsOf(t) {
		s, err := c.buildScale(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if s == nil || scale.Equal(s, c.axes.Scale(d)) {
			continue
		}
		values[d.Scale()] = s
	}
	if len(values) > 0 {
		c.axes.Apply(ctx, values, attr.WithoutValidation(), attr.WithSource("rule.scales"))
	}
	return errors.Join(errs...)
}

// updateAxes rebuilds the axis generators a trigger concerns, replacing
// their tick formatters.
func (c *Chart) updateAxes(ctx context.Context, t cascade.Trigger) error {
	var errs []error
	values := make(map[string]any, 2)
	for _, d := range dimsOf(t) {
		ax, err := c.buildAxis(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ax != nil {
			values[d.Axis()] = ax
		}
	}
	if len(values) > 0 {
		c.axes.Apply(ctx, values, attr.WithoutValidation(), attr.WithSource("rule.axes"))
	}
	return errors.Join(errs...)
}

func (c *Chart) buildAxis(d model.Dim) (*scale.Axis, error) {
	s := c.axes.Scale(d)
	if s == nil {
		return nil, nil
	}
	f, err := format.Parse(c.axes.String(d.TickFormat()),
		format.WithLanguage(c.cfg.lang),
		format.WithLogger(c.cfg.logger),
		format.WithTimeout(c.cfg.timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("%s tick format: %w", d, err)
	}

	opts := []scale.AxisOption{scale.WithLabel(c.axes.String(d.Label()))}
	if f != nil {
		opts = append(opts, scale.WithFormat(f.Format))
	}
	ax, err := scale.NewAxis(s, c.axes.Orient(d), opts...)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return nil, fmt.Errorf("%s axis: %w", d, err)
	}

	if prev := c.formatters[d]; prev != nil {
		_ = prev.Close()
	}
	c.formatters[d] = f
	return ax, nil
}

// updateLegend matches the legend labels against the series. A mismatch is
// reported by the legend controller and only hides the legend. Without data
// there is nothing to match yet.
func (c *Chart) updateLegend(ctx context.Context, t cascade.Trigger) error {
	if c.data.Len() == 0 {
		c.legend.Hide()
	} else if err := c.legend.Update(ctx, c.data.Names()); err != nil && !errors.Is(err, widget.ErrLegendMismatch) {
		return err
	}
	if c.live(t) {
		c.scene.Invalidate(scene.LayerLegend)
	}
	return nil
}

// redraw returns a rule body marking layers dirty.
func (c *Chart) redraw(layers ...scene.Layer) func(context.Context, cascade.Trigger) error {
	return func(_ context.Context, t cascade.Trigger) error {
		if c.live(t) {
			c.scene.Invalidate(layers...)
		}
		return nil
	}
}

func (c *Chart) redrawAll(_ context.Context, t cascade.Trigger) error {
	if c.live(t) {
		c.scene.InvalidateAll()
	}
	return nil
}

// redrawData repaints the data layers; adding or removing series repaints
// everything.
func (c *Chart) redrawData(_ context.Context, t cascade.Trigger) error {
	if !c.live(t) {
		return nil
	}
	if dc, ok := t.Payload.(events.DataChanged); ok && dc.Kind.Structural() {
		c.scene.InvalidateAll()
		return nil
	}
	c.scene.Invalidate(scene.LayerMarks, scene.LayerCursor, scene.LayerBrush)
	return nil
}

// redrawListeners repaints everything when a listener switch changes, so
// turning one back on shows the current state.
func (c *Chart) redrawListeners(context.Context, cascade.Trigger) error {
	c.scene.InvalidateAll()
	return nil
}
