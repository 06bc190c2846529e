package scale

import (
	"errors"
	"fmt"
	"strconv"
)

// Orient is the side of the plot an axis is drawn on.
type Orient string

// Axis orientations.
const (
	OrientTop    Orient = "top"
	OrientBottom Orient = "bottom"
	OrientLeft   Orient = "left"
	OrientRight  Orient = "right"
)

// ErrOrient is returned for an orientation that does not suit the axis.
var ErrOrient = errors.New("invalid axis orientation")

// Horizontal reports whether the axis runs along x.
func (o Orient) Horizontal() bool {
	return o == OrientTop || o == OrientBottom
}

// Sign is the direction ticks point away from the plot: +1 for bottom and
// right, -1 for top and left.
func (o Orient) Sign() float64 {
	if o == OrientTop || o == OrientLeft {
		return -1
	}
	return 1
}

// Tick is one generated axis tick.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// Axis generates ticks and labels for a scale.
type Axis struct {
	Scale       Scale
	Orient      Orient
	TickCount   int
	TickSize    float64
	TickPadding float64
	Format      func(float64) string
	Label       string
}

// AxisOption configures NewAxis.
type AxisOption func(*Axis)

// WithTicks sets the requested tick count.
func WithTicks(n int) AxisOption {
	return func(a *Axis) {
		if n > 0 {
			a.TickCount = n
		}
	}
}

// WithTickSize sets the tick line length.
func WithTickSize(size float64) AxisOption {
	return func(a *Axis) {
		a.TickSize = size
	}
}

// WithTickPadding sets the gap between tick line and label.
func WithTickPadding(p float64) AxisOption {
	return func(a *Axis) {
		a.TickPadding = p
	}
}

// WithFormat sets the tick label formatter.
func WithFormat(f func(float64) string) AxisOption {
	return func(a *Axis) {
		a.Format = f
	}
}

// WithLabel sets the axis title.
func WithLabel(label string) AxisOption {
	return func(a *Axis) {
		a.Label = label
	}
}

// NewAxis builds an axis for s. Horizontal axes take top or bottom,
// vertical axes take left or right; the caller decides which applies.
func NewAxis(s Scale, orient Orient, opts ...AxisOption) (*Axis, error) {
	if s == nil {
		return nil, errors.New("axis: nil scale")
	}
	switch orient {
	case OrientTop, OrientBottom, OrientLeft, OrientRight:
	default:
		return nil, fmt.Errorf("%w: %q", ErrOrient, orient)
	}
	a := &Axis{
		Scale:       s,
		Orient:      orient,
		TickCount:   DefaultTicks,
		TickSize:    6,
		TickPadding: 3,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Horizontal reports whether the axis runs along x.
func (a *Axis) Horizontal() bool {
	return a.Orient.Horizontal()
}

// Ticks returns the ticks of the axis in ascending value order.
func (a *Axis) Ticks() []Tick {
	values := a.Scale.Ticks(a.TickCount)
	format := a.Format
	if format == nil {
		if f, ok := a.Scale.(Formatter); ok {
			format = func(v float64) string { return f.FormatTick(v, values) }
		} else {
			format = defaultFormat
		}
	}

	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, Tick{Value: v, Pos: a.Scale.Map(v), Label: format(v)})
	}
	return ticks
}

// LabelOffset is the distance from the axis line to the tick label anchor.
func (a *Axis) LabelOffset() float64 {
	size := a.TickSize
	if size < 0 {
		size = 0
	}
	return a.Orient.Sign() * (size + a.TickPadding)
}

func defaultFormat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}
