package chart

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/text/language"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/cascade"
	"github.com/dshills/tschart/internal/data"
	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/format"
	"github.com/dshills/tschart/internal/logging"
	"github.com/dshills/tschart/internal/model"
	"github.com/dshills/tschart/internal/scene"
	"github.com/dshills/tschart/internal/widget"
)

// containerPattern matches ids usable as element ids and CSS selectors.
var containerPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// Chart is one isolated chart instance.
type Chart struct {
	id     string
	cfg    config
	logger *logging.Logger

	// Core infrastructure
	bus     *event.Bus
	engine  *cascade.Engine
	scene   *scene.Scene
	metrics *Metrics
	subs    []*event.Subscription

	// Configuration models
	canvas      *model.Canvas
	axes        *model.Axes
	marks       *model.Marks
	annotations *model.Annotations
	widgets     *model.Widgets
	animations  *model.Animations
	listeners   *model.Listeners

	// Data
	data *data.Collection

	// Widgets
	legend     *widget.Legend
	cursor     *widget.Cursor
	brush      *widget.Brush
	brushStore *model.Brush
	brushOpts  map[string]any

	// Tick formatters owned by the current axes, indexed by model.Dim.
	formatters [2]format.Formatter

	closed bool
}

// New creates a chart drawn into the element named container. Invalid option
// values abort construction; unknown keys are dropped with a warning.
func New(container string, opts Options, options ...Option) (*Chart, error) {
	if !containerPattern.MatchString(container) {
		return nil, fmt.Errorf("%w: %q", ErrContainer, container)
	}

	cfg := config{
		logger:   logging.Nop(),
		maxDepth: 64,
		lang:     language.English,
		timeout:  format.DefaultTimeout,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	c := &Chart{
		id:        container,
		cfg:       cfg,
		logger:    cfg.logger.WithComponent("chart").WithField("chart", container),
		metrics:   NewMetrics(),
		brushOpts: opts.Brush,
	}
	if err := c.bootstrap(opts); err != nil {
		c.teardown()
		return nil, err
	}
	return c, nil
}

// bootstrap initializes every component in dependency order.
func (c *Chart) bootstrap(opts Options) error {
	// 1. Event bus
	c.bus = event.NewBus(
		event.WithID(c.id),
		event.WithLogger(c.cfg.logger),
		event.WithMaxDepth(c.cfg.maxDepth),
	)

	// 2. Configuration models
	storeOpts := []attr.Option{attr.WithBus(c.bus), attr.WithLogger(c.cfg.logger)}
	var err error
	if c.canvas, err = model.NewCanvas(opts.Canvas, storeOpts...); err != nil {
		return &InitError{Component: model.StoreCanvas, Err: err}
	}
	axesOpts := append(storeOpts, attr.WithBatchCheck(c.checkScales))
	if c.axes, err = model.NewAxes(opts.Axes, axesOpts...); err != nil {
		return &InitError{Component: model.StoreAxes, Err: err}
	}
	if c.marks, err = model.NewMarks(opts.Marks, storeOpts...); err != nil {
		return &InitError{Component: model.StoreMarks, Err: err}
	}
	if c.annotations, err = model.NewAnnotations(opts.Annotations, storeOpts...); err != nil {
		return &InitError{Component: model.StoreAnnotations, Err: err}
	}
	if c.widgets, err = model.NewWidgets(opts.Widgets, storeOpts...); err != nil {
		return &InitError{Component: model.StoreWidgets, Err: err}
	}
	if c.animations, err = model.NewAnimations(opts.Animations, storeOpts...); err != nil {
		return &InitError{Component: model.StoreAnimations, Err: err}
	}
	if c.listeners, err = model.NewListeners(opts.Listeners, storeOpts...); err != nil {
		return &InitError{Component: model.StoreListeners, Err: err}
	}

	// 3. Data
	c.data = data.NewCollection(data.WithBus(c.bus), data.WithLogger(c.cfg.logger))

	// 4. Widgets
	widgetOpts := []widget.Option{widget.WithBus(c.bus), widget.WithLogger(c.cfg.logger)}
	c.legend = widget.NewLegend(c.annotations, widgetOpts...)
	c.cursor = widget.NewCursor(c.axes, c.annotations, c.data, widgetOpts...)
	if c.widgets.BrushEnabled() {
		if err := c.newBrush(c.widgets.BrushType()); err != nil {
			return &InitError{Component: model.StoreBrush, Err: err}
		}
	}

	// 5. Scene
	c.scene = scene.New(c.frame,
		scene.WithID(c.id),
		scene.WithBus(c.bus),
		scene.WithLogger(c.cfg.logger),
	)

	// 6. Subscriptions
	if err := c.subscribe(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}

	// 7. Recomputation rules
	c.engine = cascade.New(c.bus, cascade.WithLogger(c.cfg.logger))
	for _, r := range c.rules() {
		if err := c.engine.Register(r); err != nil {
			return &InitError{Component: "rules", Err: err}
		}
	}
	if c.brushStore != nil {
		if err := c.registerBrushRules(); err != nil {
			return &InitError{Component: "rules", Err: err}
		}
	}

	release := c.bus.Hold()
	defer release()
	if err := c.engine.RunAll(context.Background()); err != nil {
		return &InitError{Component: "rules", Err: err}
	}

	c.logger.Debug("chart ready with %d rules", len(c.engine.Rules()))
	return nil
}

// newBrush creates the brush store and controller for t from the brush
// options.
func (c *Chart) newBrush(t model.BrushType) error {
	store, err := model.NewBrush(t, c.brushOpts, attr.WithBus(c.bus), attr.WithLogger(c.cfg.logger))
	if err != nil {
		return err
	}
	c.brushStore = store
	c.brush = widget.NewBrush(c.axes, store, widget.WithBus(c.bus), widget.WithLogger(c.cfg.logger))
	return nil
}

// ID returns the container id.
func (c *Chart) ID() string {
	return c.id
}

// Bus returns the chart event bus. Subscribers observe every attribute,
// data, widget and redraw event of this chart.
func (c *Chart) Bus() *event.Bus {
	return c.bus
}

// Engine returns the recomputation rule engine.
func (c *Chart) Engine() *cascade.Engine {
	return c.engine
}

// Scene returns the layered scene.
func (c *Chart) Scene() *scene.Scene {
	return c.scene
}

// Close releases the tick formatters and detaches every component from the
// bus. Later calls are no-ops.
func (c *Chart) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.teardown()
}

func (c *Chart) teardown() error {
	for _, sub := range c.subs {
		_ = c.bus.Unsubscribe(sub)
	}
	c.subs = nil
	if c.scene != nil {
		c.scene.Close()
	}
	var err error
	for i, f := range c.formatters {
		if f != nil {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
			c.formatters[i] = nil
		}
	}
	if c.bus != nil {
		c.bus.Close()
	}
	c.logger.Debug("chart closed")
	return err
}
