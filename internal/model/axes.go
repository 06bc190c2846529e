package model

import (
	"errors"
	"fmt"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/config/schema"
	"github.com/dshills/tschart/internal/format"
	"github.com/dshills/tschart/internal/scale"
)

// StoreAxes names the axes store.
const StoreAxes = "axes"

// Axes keys.
const (
	KeyXLabel      = "xLabel"
	KeyYLabel      = "yLabel"
	KeyXOrient     = "xOrient"
	KeyYOrient     = "yOrient"
	KeyXDomain     = "xDomain"
	KeyYDomain     = "yDomain"
	KeyXRange      = "xRange"
	KeyYRange      = "yRange"
	KeyXType       = "xType"
	KeyYType       = "yType"
	KeyXScale      = "xScale"
	KeyYScale      = "yScale"
	KeyXAxis       = "xAxis"
	KeyYAxis       = "yAxis"
	KeyRound       = "round"
	KeyXTickFormat = "xTickFormat"
	KeyYTickFormat = "yTickFormat"
	KeyXResolved   = "_xDomain"
	KeyYResolved   = "_yDomain"
)

var errNotScale = errors.New("expected a scale")

func isScale(v any) error {
	if _, ok := v.(scale.Scale); !ok {
		return fmt.Errorf("%w, got %T", errNotScale, v)
	}
	return nil
}

func isAxis(v any) error {
	if _, ok := v.(*scale.Axis); !ok {
		return fmt.Errorf("expected an axis generator, got %T", v)
	}
	return nil
}

// isTickFormat accepts any spec format.Parse understands.
func isTickFormat(v any) error {
	f, err := format.Parse(v.(string))
	if err != nil {
		return err
	}
	if f != nil {
		_ = f.Close()
	}
	return nil
}

// AxesSchema declares the axes keys.
func AxesSchema() *schema.Schema {
	return schema.New(StoreAxes,
		schema.String(KeyXLabel, "x"),
		schema.String(KeyYLabel, "y"),
		schema.Enum(KeyXOrient, string(scale.OrientBottom), string(scale.OrientTop), string(scale.OrientBottom)),
		schema.Enum(KeyYOrient, string(scale.OrientLeft), string(scale.OrientLeft), string(scale.OrientRight)),
		schema.Domain(KeyXDomain, schema.DomainMin, schema.DomainMax).Describe("bounds or min/max sentinels"),
		schema.Domain(KeyYDomain, schema.DomainMin, schema.DomainMax).Describe("bounds or min/max sentinels"),
		schema.Numbers(KeyXRange, 0, 100).Len(2),
		schema.Numbers(KeyYRange, 100, 0).Len(2),
		schema.Enum(KeyXType, string(scale.KindLinear), scale.Kinds()...),
		schema.Enum(KeyYType, string(scale.KindLinear), scale.Kinds()...),
		schema.Handle(KeyXScale).Check(isScale),
		schema.Handle(KeyYScale).Check(isScale),
		schema.Handle(KeyXAxis).Check(isAxis),
		schema.Handle(KeyYAxis).Check(isAxis),
		schema.Bool(KeyRound, true).Describe("extend domains to nice values"),
		schema.String(KeyXTickFormat, "").Check(isTickFormat).Describe("number:<d>, percent:<d>, si:<d>, time:<layout> or lua:<body>"),
		schema.String(KeyYTickFormat, "").Check(isTickFormat).Describe("number:<d>, percent:<d>, si:<d>, time:<layout> or lua:<body>"),
		schema.Handle(KeyXResolved).Describe("x domain with sentinels resolved"),
		schema.Handle(KeyYResolved).Describe("y domain with sentinels resolved"),
	)
}

// Axes holds the axis configuration and the derived scales and generators.
type Axes struct {
	*attr.Store
}

// NewAxes creates the axes store.
func NewAxes(initial map[string]any, opts ...attr.Option) (*Axes, error) {
	s, err := attr.New(AxesSchema(), initial, opts...)
	if err != nil {
		return nil, err
	}
	return &Axes{s}, nil
}

// Dim selects the x or y half of the axes keys.
type Dim int

// Dimensions.
const (
	X Dim = iota
	Y
)

func (d Dim) String() string {
	if d == X {
		return "x"
	}
	return "y"
}

// pick returns xk for X and yk for Y.
func (d Dim) pick(xk, yk string) string {
	if d == X {
		return xk
	}
	return yk
}

// Key helpers for a dimension.
func (d Dim) Label() string      { return d.pick(KeyXLabel, KeyYLabel) }
func (d Dim) Orient() string     { return d.pick(KeyXOrient, KeyYOrient) }
func (d Dim) Domain() string     { return d.pick(KeyXDomain, KeyYDomain) }
func (d Dim) Range() string      { return d.pick(KeyXRange, KeyYRange) }
func (d Dim) Type() string       { return d.pick(KeyXType, KeyYType) }
func (d Dim) Scale() string      { return d.pick(KeyXScale, KeyYScale) }
func (d Dim) Axis() string       { return d.pick(KeyXAxis, KeyYAxis) }
func (d Dim) TickFormat() string { return d.pick(KeyXTickFormat, KeyYTickFormat) }
func (d Dim) Resolved() string   { return d.pick(KeyXResolved, KeyYResolved) }

// Scale returns the current scale of d, or nil before the first build.
func (a *Axes) Scale(d Dim) scale.Scale {
	s, _ := a.Value(d.Scale()).(scale.Scale)
	return s
}

// Axis returns the current axis generator of d, or nil before the first build.
func (a *Axes) Axis(d Dim) *scale.Axis {
	ax, _ := a.Value(d.Axis()).(*scale.Axis)
	return ax
}

// Resolved returns the sentinel-free domain of d.
func (a *Axes) Resolved(d Dim) ([2]float64, bool) {
	r, ok := a.Value(d.Resolved()).([]float64)
	if !ok || len(r) != 2 {
		return [2]float64{}, false
	}
	return [2]float64{r[0], r[1]}, true
}

// Range returns the pixel range of d.
func (a *Axes) Range(d Dim) [2]float64 {
	r := a.Floats(d.Range())
	if len(r) != 2 {
		return [2]float64{}
	}
	return [2]float64{r[0], r[1]}
}

// Kind returns the scale kind of d.
func (a *Axes) Kind(d Dim) scale.Kind {
	return scale.Kind(a.String(d.Type()))
}

// Orient returns the axis side of d.
func (a *Axes) Orient(d Dim) scale.Orient {
	return scale.Orient(a.String(d.Orient()))
}
