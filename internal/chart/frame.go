package chart

import (
	"github.com/dshills/tschart/internal/model"
	"github.com/dshills/tschart/internal/scene"
)

// frame snapshots the stores for a scene flush.
func (c *Chart) frame() (*scene.Frame, error) {
	f := &scene.Frame{
		ID:     c.id,
		Size:   c.documentSize(),
		Margin: c.canvas.Margin(),
		Graph:  c.canvas.Graph(),
		X:      c.axes.Scale(model.X),
		Y:      c.axes.Scale(model.Y),
		XAxis:  c.axes.Axis(model.X),
		YAxis:  c.axes.Axis(model.Y),
		Series: c.data.View(),
		Marks: scene.MarkStyle{
			Type:          c.marks.Type(),
			Interpolation: c.marks.String(model.KeyInterpolation),
			Symbols:       c.marks.Strings(model.KeySymbols),
			Size:          c.marks.Float(model.KeySize),
			Colors:        c.marks.Colors(),
		},
		Title:   c.annotations.String(model.KeyTitle),
		Caption: c.annotations.String(model.KeyCaption),
		Legend:  c.legend.Labels(),
		Cursor:  c.cursor.Mark(),
		Brush:   c.brushFrame(),
	}

	if !c.scene.Rendered() && c.animations.Duration() > 0 {
		f.Enter = &scene.Enter{
			Type:     c.animations.String(model.KeyInitType),
			Duration: c.animations.Duration(),
			Easing:   c.animations.String(model.KeyInitEasing),
		}
	}
	return f, nil
}
