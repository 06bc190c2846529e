package chart

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/cascade"
	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/event/topic"
	"github.com/dshills/tschart/internal/model"
	"github.com/dshills/tschart/internal/scale"
	"github.com/dshills/tschart/internal/scene"
)

// brushRules returns the rules keeping the brush store current. They exist
// only while the brush is enabled.
func (c *Chart) brushRules() []cascade.Rule {
	return []cascade.Rule{
		{
			Name:     "brush-graph",
			Triggers: []topic.Topic{brushT(model.KeyWidth), brushT(model.KeyHeight), brushT(model.KeyMargin)},
			Writes:   []topic.Topic{brushT(model.KeyBrushSize)},
			Run:      c.updateBrushGraph,
		},
		{
			Name:     "brush-range",
			Triggers: []topic.Topic{brushT(model.KeyBrushSize)},
			Writes:   []topic.Topic{brushT(model.KeyRange)},
			Run:      c.updateBrushRange,
		},
		{
			Name:     "brush-orient",
			Triggers: []topic.Topic{axesT(model.KeyXOrient), axesT(model.KeyYOrient)},
			Writes:   []topic.Topic{brushT(model.KeyOrient)},
			Run:      c.updateBrushOrient,
		},
		{
			Name: "brush-scale",
			Triggers: []topic.Topic{
				brushT(model.KeyDomain), brushT(model.KeyRange), brushT(model.KeyScaleType),
				events.TopicDataChanged, marksT(model.KeyType),
			},
			Writes: []topic.Topic{brushT(model.KeyScale)},
			Run:    c.updateBrushScale,
		},
		{
			Name:     "brush-axis",
			Triggers: []topic.Topic{brushT(model.KeyScale), brushT(model.KeyOrient)},
			Writes:   []topic.Topic{brushT(model.KeyAxis)},
			Run:      c.updateBrushAxis,
		},
		{
			Name: "redraw-brush-layout",
			Triggers: []topic.Topic{
				brushT(model.KeyWidth), brushT(model.KeyHeight), brushT(model.KeyBrushSize),
			},
			Run: c.redrawAll,
		},
		{
			Name:     "redraw-brush-store",
			Triggers: []topic.Topic{events.AttrStore(model.StoreBrush)},
			Run:      c.redraw(scene.LayerBrush),
		},
	}
}

// registerBrushRules registers the brush rules, undoing a partial
// registration on error.
func (c *Chart) registerBrushRules() error {
	var done []string
	for _, r := range c.brushRules() {
		if err := c.engine.Register(r); err != nil {
			for _, name := range done {
				_ = c.engine.Unregister(name)
			}
			return err
		}
		done = append(done, r.Name)
	}
	return nil
}

func (c *Chart) unregisterBrushRules() {
	for _, r := range c.brushRules() {
		_ = c.engine.Unregister(r.Name)
	}
}

// updateBrushLayout creates, replaces or drops the brush when the widgets
// configuration changes.
func (c *Chart) updateBrushLayout(ctx context.Context, _ cascade.Trigger) error {
	want := c.widgets.BrushEnabled()
	kind := c.widgets.BrushType()
	if c.brushStore != nil && want && c.brushStore.Kind() == kind {
		return nil
	}
	if c.brushStore == nil && !want {
		return nil
	}

	if c.brushStore != nil {
		c.unregisterBrushRules()
		c.brushStore, c.brush = nil, nil
		c.logger.Debug("brush removed")
	}
	if want {
		if err := c.newBrush(kind); err != nil {
			return err
		}
		if err := c.registerBrushRules(); err != nil {
			c.brushStore, c.brush = nil, nil
			return err
		}
		var errs []error
		for _, name := range c.engine.Order() {
			if isBrushRule(name) {
				errs = append(errs, c.engine.Run(ctx, name))
			}
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
		c.logger.Debug("brush %s enabled", kind)
	}
	c.scene.InvalidateAll()
	return nil
}

func isBrushRule(name string) bool {
	return strings.HasPrefix(name, "brush-")
}

// brushDim returns the chart dimension the brush selects along.
func (c *Chart) brushDim() model.Dim {
	if c.brushStore.Kind() == model.BrushY {
		return model.Y
	}
	return model.X
}

func (c *Chart) updateBrushGraph(ctx context.Context, _ cascade.Trigger) error {
	g := c.brushStore.Inner()
	g.Width = math.Max(0, g.Width)
	g.Height = math.Max(0, g.Height)
	c.brushStore.Apply(ctx, map[string]any{model.KeyBrushSize: g},
		attr.WithoutValidation(), attr.WithSource("rule.brush-graph"))
	return nil
}

// updateBrushRange stretches the brush scale along its plot area: x brushes
// run left to right, y brushes bottom to top.
func (c *Chart) updateBrushRange(ctx context.Context, _ cascade.Trigger) error {
	g := c.brushStore.Graph()
	rng := []float64{0, g.Width}
	if c.brushStore.Kind() == model.BrushY {
		rng = []float64{g.Height, 0}
	}
	c.brushStore.Apply(ctx, map[string]any{model.KeyRange: rng},
		attr.WithoutValidation(), attr.WithSource("rule.brush-range"))
	return nil
}

// updateBrushOrient puts the brush axis on the same side as the chart axis
// it zooms.
func (c *Chart) updateBrushOrient(ctx context.Context, _ cascade.Trigger) error {
	orient := c.axes.Orient(c.brushDim())
	c.brushStore.Apply(ctx, map[string]any{model.KeyOrient: string(orient)},
		attr.WithSource("rule.brush-orient"))
	return nil
}

// updateBrushScale maps the full brush domain, resolved against the data,
// onto the brush range.
func (c *Chart) updateBrushScale(ctx context.Context, _ cascade.Trigger) error {
	d := c.brushDim()
	ext, ok := c.extent(d)
	dom := resolveDomain(c.brushStore.Domain(model.KeyDomain), ext, ok)

	kind := scale.Kind(c.brushStore.String(model.KeyScaleType))
	var opts []scale.Option
	if kind == scale.KindQuantile || kind == scale.KindOrdinal {
		opts = append(opts, scale.WithValues(c.values(d)))
	}
	s, err := scale.New(kind, dom, c.brushStore.Range(), opts...)
	if err != nil {
		return err
	}
	if scale.Equal(s, c.brushStore.Scale()) {
		return nil
	}
	c.brushStore.Apply(ctx, map[string]any{model.KeyScale: s},
		attr.WithoutValidation(), attr.WithSource("rule.brush-scale"))
	return nil
}

// updateBrushAxis rebuilds the brush axis. Ticks span the whole brush plot
// and labels sit in its middle.
func (c *Chart) updateBrushAxis(ctx context.Context, _ cascade.Trigger) error {
	s := c.brushStore.Scale()
	if s == nil {
		return nil
	}
	g := c.brushStore.Graph()
	size := g.Height
	if c.brushStore.Kind() == model.BrushY {
		size = g.Width
	}
	ax, err := scale.NewAxis(s, scale.Orient(c.brushStore.String(model.KeyOrient)),
		scale.WithTickSize(size),
		scale.WithTickPadding(-size/2),
	)
	if err != nil {
		return err
	}
	c.brushStore.Apply(ctx, map[string]any{model.KeyAxis: ax},
		attr.WithoutValidation(), attr.WithSource("rule.brush-axis"))
	return nil
}

// brushOrigin places the brush plot below the canvas for x brushes and to
// its right for y brushes.
func (c *Chart) brushOrigin() [2]float64 {
	m := c.brushStore.Margin()
	if c.brushStore.Kind() == model.BrushY {
		return [2]float64{c.canvas.Width() + m.Left, m.Top}
	}
	return [2]float64{m.Left, c.canvas.Height() + m.Top}
}

// documentSize is the canvas grown by the brush canvas.
func (c *Chart) documentSize() model.Size {
	size := model.Size{Width: c.canvas.Width(), Height: c.canvas.Height()}
	if c.brushStore == nil {
		return size
	}
	if c.brushStore.Kind() == model.BrushY {
		size.Width += c.brushStore.Width()
		size.Height = math.Max(size.Height, c.brushStore.Height())
	} else {
		size.Height += c.brushStore.Height()
		size.Width = math.Max(size.Width, c.brushStore.Width())
	}
	return size
}

// brushFrame returns the brush state to draw, or nil without a brush.
func (c *Chart) brushFrame() *scene.BrushFrame {
	if c.brushStore == nil || c.brushStore.Scale() == nil {
		return nil
	}
	g := c.brushStore.Graph()
	horizontal := c.brushStore.Kind() == model.BrushX

	crossDim, crossRange := model.Y, [2]float64{g.Height, 0}
	if !horizontal {
		crossDim, crossRange = model.X, [2]float64{0, g.Width}
	}
	ext, ok := c.extent(crossDim)
	dom := resolveDomain([]any{"min", "max"}, ext, ok)
	cross, err := scale.New(scale.KindLinear, dom, crossRange)
	if err != nil {
		c.logger.Warn("brush cross scale: %v", err)
	}

	extent, selected := c.brush.Extent()
	return &scene.BrushFrame{
		Origin:     c.brushOrigin(),
		Graph:      g,
		Horizontal: horizontal,
		Scale:      c.brushStore.Scale(),
		Cross:      cross,
		Axis:       c.brushStore.Axis(),
		Series:     c.data.View(),
		Extent:     extent,
		Empty:      !selected,
	}
}
