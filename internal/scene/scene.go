package scene

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/logging"
	"github.com/dshills/tschart/internal/model"
)

// Painter draws one layer into c.
type Painter interface {
	Paint(c *svg.SVG, f *Frame) error
}

// PainterFunc adapts a function to Painter.
type PainterFunc func(c *svg.SVG, f *Frame) error

// Paint calls fn(c, f).
func (fn PainterFunc) Paint(c *svg.SVG, f *Frame) error {
	return fn(c, f)
}

// Scene caches one SVG fragment per layer and repaints dirty layers on
// Flush.
//
// A Scene is not safe for concurrent use.
type Scene struct {
	id        string
	frame     FrameFunc
	tracker   *Tracker
	painters  [layerCount]Painter
	fragments [layerCount][]byte
	size      model.Size

	bus        *event.Bus
	logger     *logging.Logger
	autoFlush  bool
	rendered   bool
	closed     bool
	removeHook func()
}

// Option configures New.
type Option func(*Scene)

// WithID sets the prefix of element ids. It must be a valid XML name.
func WithID(id string) Option {
	return func(s *Scene) {
		if id != "" {
			s.id = id
		}
	}
}

// WithBus publishes LayerRedrawn on b and, once the scene has been rendered,
// flushes whenever b settles.
func WithBus(b *event.Bus) Option {
	return func(s *Scene) {
		s.bus = b
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPainter replaces the painter of one layer.
func WithPainter(l Layer, p Painter) Option {
	return func(s *Scene) {
		if l.Valid() && p != nil {
			s.painters[l] = p
		}
	}
}

// WithoutAutoFlush leaves flushing to explicit Flush and Render calls.
func WithoutAutoFlush() Option {
	return func(s *Scene) {
		s.autoFlush = false
	}
}

// New creates a scene drawing frames produced by frame.
func New(frame FrameFunc, opts ...Option) *Scene {
	s := &Scene{
		id:        "tschart",
		frame:     frame,
		tracker:   NewTracker(),
		painters:  defaultPainters(),
		logger:    logging.Nop(),
		autoFlush: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("scene")

	if s.bus != nil && s.autoFlush {
		s.removeHook = s.bus.OnSettled(s.onSettled)
	}
	return s
}

// ID returns the element id prefix.
func (s *Scene) ID() string {
	return s.id
}

// Tracker returns the dirty layer tracker.
func (s *Scene) Tracker() *Tracker {
	return s.tracker
}

// Invalidate marks layers dirty.
func (s *Scene) Invalidate(layers ...Layer) {
	s.tracker.Mark(layers...)
}

// InvalidateAll marks a structural change: every layer repaints.
func (s *Scene) InvalidateAll() {
	s.tracker.MarkFullRedraw()
}

// Rendered reports whether Render has completed at least once.
func (s *Scene) Rendered() bool {
	return s.rendered
}

// Redraws returns how many times l has been repainted.
func (s *Scene) Redraws(l Layer) int {
	return s.tracker.Redraws(l)
}

// Fragment returns a copy of the cached fragment of l.
func (s *Scene) Fragment(l Layer) []byte {
	if !l.Valid() {
		return nil
	}
	return bytes.Clone(s.fragments[l])
}

// Flush repaints the dirty layers and publishes one LayerRedrawn event. It
// returns the repainted layers, or nil when nothing was dirty. A layer whose
// painter fails keeps its previous fragment.
func (s *Scene) Flush(ctx context.Context) ([]Layer, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if !s.tracker.IsDirty() {
		return nil, nil
	}
	if s.frame == nil {
		return nil, ErrNoFrame
	}

	f, err := s.frame()
	if err != nil {
		return nil, fmt.Errorf("build frame: %w", err)
	}
	if f.ID == "" {
		f.ID = s.id
	}
	s.size = f.Size

	layers, full := s.tracker.Take()
	var errs []error
	names := make([]string, 0, len(layers))
	for _, l := range layers {
		if err := s.paint(l, f); err != nil {
			s.logger.Error("paint %s: %v", l, err)
			errs = append(errs, fmt.Errorf("paint %s: %w", l, err))
			continue
		}
		names = append(names, l.String())
	}

	if s.bus != nil && len(names) > 0 {
		payload := events.LayerRedrawn{Layers: names, Full: full}
		if err := event.Publish(ctx, s.bus, events.TopicLayerRedrawn, payload, "scene"); err != nil {
			errs = append(errs, err)
		}
	}
	s.logger.Debug("flushed %v (full=%v)", names, full)
	return layers, errors.Join(errs...)
}

func (s *Scene) paint(l Layer, f *Frame) error {
	p := s.painters[l]
	if p == nil {
		s.fragments[l] = nil
		return nil
	}
	var buf bytes.Buffer
	if err := p.Paint(svg.New(&buf), f); err != nil {
		return err
	}
	s.fragments[l] = buf.Bytes()
	return nil
}

// onSettled flushes once the scene is live. Before the first render dirty
// layers accumulate and Render paints everything.
func (s *Scene) onSettled() {
	if !s.rendered || s.closed || !s.tracker.IsDirty() {
		return
	}
	if _, err := s.Flush(context.Background()); err != nil {
		s.logger.Warn("flush after settle: %v", err)
	}
}

// Render writes the document to w. The first call paints every layer; later
// calls repaint only what is dirty.
func (s *Scene) Render(ctx context.Context, w io.Writer) error {
	if s.closed {
		return ErrClosed
	}
	if !s.rendered {
		s.tracker.MarkFullRedraw()
	}
	if _, err := s.Flush(ctx); err != nil {
		return err
	}
	s.rendered = true
	return s.write(w)
}

func (s *Scene) write(w io.Writer) error {
	ew := &errWriter{w: w}
	c := svg.New(ew)
	c.Start(px(s.size.Width), px(s.size.Height),
		fmt.Sprintf(`id="%s"`, s.id), `class="tschart"`)
	for _, l := range Layers() {
		c.Group(fmt.Sprintf(`id="%s-%s"`, s.id, l), fmt.Sprintf(`class="layer %s"`, l))
		_, _ = c.Writer.Write(s.fragments[l])
		c.Gend()
	}
	c.End()
	return ew.err
}

// Close detaches the scene from its bus. Later calls are no-ops.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.removeHook != nil {
		s.removeHook()
	}
}

// errWriter keeps the first write error; svgo ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// px rounds a coordinate to the integer grid svgo draws on.
func px(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
