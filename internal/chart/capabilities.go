package chart

import (
	"context"
	"io"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/data"
	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/widget"
)

// Drawable renders itself as an SVG document.
type Drawable interface {
	Render(w io.Writer) error
	RenderContext(ctx context.Context, w io.Writer) error
}

// Interactive exposes the widget controllers.
type Interactive interface {
	Brush() *widget.Brush
	Cursor() *widget.Cursor
	Legend() *widget.Legend
}

// Animatable configures the first-render animation.
type Animatable interface {
	InitType() string
	SetInitType(v string) attr.Result
	InitDuration() float64
	SetInitDuration(ms float64) attr.Result
}

// Listenable reacts to data and configuration changes.
type Listenable interface {
	SetData(series []data.Series) error
	OnRedraw(fn func(events.LayerRedrawn)) (remove func(), err error)
	SetListenChart(v bool) attr.Result
	SetListenData(v bool) attr.Result
}

// Ensure Chart implements the capability interfaces.
var (
	_ Drawable    = (*Chart)(nil)
	_ Interactive = (*Chart)(nil)
	_ Animatable  = (*Chart)(nil)
	_ Listenable  = (*Chart)(nil)
)
