package chart

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/dshills/tschart/internal/scene"
)

// Render writes the SVG document to w. The first call draws every layer;
// later calls redraw only the layers changed since the previous flush.
func (c *Chart) Render(w io.Writer) error {
	return c.RenderContext(context.Background(), w)
}

// RenderContext is Render with a context passed to redraw observers.
func (c *Chart) RenderContext(ctx context.Context, w io.Writer) error {
	if c.closed {
		return ErrClosed
	}
	start := time.Now()
	err := c.scene.Render(ctx, w)
	c.metrics.RecordRender(time.Since(start))
	if err != nil {
		c.logger.Warn("render failed: %v", err)
	}
	return err
}

// SVG renders the document into a byte slice.
func (c *Chart) SVG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Flush redraws the dirty layers without writing the document. Rendered
// charts flush on their own after every change.
func (c *Chart) Flush(ctx context.Context) ([]scene.Layer, error) {
	if c.closed {
		return nil, ErrClosed
	}
	return c.scene.Flush(ctx)
}

// Rendered reports whether the chart has been rendered once.
func (c *Chart) Rendered() bool {
	return c.scene.Rendered()
}

// Redraws returns how many times layer l has been painted.
func (c *Chart) Redraws(l scene.Layer) int {
	return c.scene.Redraws(l)
}
