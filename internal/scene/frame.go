package scene

import (
	"time"

	"github.com/dshills/tschart/internal/data"
	"github.com/dshills/tschart/internal/model"
	"github.com/dshills/tschart/internal/scale"
)

// Frame is the chart state painters draw from. Nil scales or axes mean the
// corresponding part has not been built yet and is skipped.
type Frame struct {
	// ID prefixes every element id of the document.
	ID string

	// Size is the outer document size.
	Size model.Size

	// Margin places the plot area inside the document.
	Margin model.Margin

	// Graph is the plot area size.
	Graph model.Size

	X, Y         scale.Scale
	XAxis, YAxis *scale.Axis

	Series []data.Series
	Marks  MarkStyle

	Title   string
	Caption string

	// Legend holds one label per series, or nil when no legend is drawn.
	Legend []string

	// Cursor is nil while the data cursor is hidden.
	Cursor *CursorMark

	// Brush is nil while the brush is disabled.
	Brush *BrushFrame

	// Enter is set on the first render only.
	Enter *Enter
}

// MarkStyle selects how series are drawn.
type MarkStyle struct {
	Type          string
	Interpolation string
	Symbols       []string
	Size          float64

	// Colors are explicit colors or class names; empty selects the
	// automatic palette.
	Colors []string
}

// CursorMark is the data cursor position in plot coordinates.
type CursorMark struct {
	Series int
	X, Y   float64
	Label  string
}

// BrushFrame is the brush widget state.
type BrushFrame struct {
	// Origin is the top-left corner of the brush plot area in document
	// coordinates.
	Origin [2]float64

	// Graph is the brush plot area size.
	Graph model.Size

	// Horizontal is true for an x brush.
	Horizontal bool

	// Scale maps the brushed dimension; Cross maps the other one.
	Scale scale.Scale
	Cross scale.Scale
	Axis  *scale.Axis

	Series []data.Series

	// Extent is the selection in brush pixels, ignored when Empty.
	Extent [2]float64
	Empty  bool
}

// Enter describes the first-render animation of the marks layer.
type Enter struct {
	Type     string
	Duration time.Duration
	Easing   string
}

// FrameFunc builds the frame for a flush.
type FrameFunc func() (*Frame, error)
