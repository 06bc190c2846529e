package model

import (
	"fmt"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/config/schema"
	"github.com/dshills/tschart/internal/scale"
)

// Store names of the widgets and brush models.
const (
	StoreWidgets = "widgets"
	StoreBrush   = "brush"
)

// Widgets keys.
const (
	KeyBrush     = "brush"
	KeyBrushType = "brushType"
)

// BrushType is the axis a brush selects along.
type BrushType string

// Brush types.
const (
	BrushX BrushType = "x"
	BrushY BrushType = "y"
)

// Brush keys beyond the shared box keys.
const (
	KeyOrient    = "orient"
	KeyDomain    = "domain"
	KeyRange     = "range"
	KeyScaleType = "type"
	KeyScale     = "scale"
	KeyAxis      = "axis"
	KeyBrushSize = "_brush"
)

// WidgetsSchema declares the widgets keys.
func WidgetsSchema() *schema.Schema {
	return schema.New(StoreWidgets,
		schema.Bool(KeyBrush, false).Describe("show a brush under the chart"),
		schema.Enum(KeyBrushType, string(BrushX), string(BrushX), string(BrushY)),
	)
}

// Widgets enables interactive widgets.
type Widgets struct {
	*attr.Store
}

// NewWidgets creates the widgets store.
func NewWidgets(initial map[string]any, opts ...attr.Option) (*Widgets, error) {
	s, err := attr.New(WidgetsSchema(), initial, opts...)
	if err != nil {
		return nil, err
	}
	return &Widgets{s}, nil
}

// BrushEnabled reports whether the brush is shown.
func (w *Widgets) BrushEnabled() bool { return w.Bool(KeyBrush) }

// BrushType returns the brush orientation.
func (w *Widgets) BrushType() BrushType { return BrushType(w.String(KeyBrushType)) }

// brushDefaults holds the per-type brush defaults.
type brushDefaults struct {
	size   Size
	margin Margin
	orient [2]scale.Orient
	rng    [2]float64
}

var brushDefaultsByType = map[BrushType]brushDefaults{
	BrushX: {
		size:   Size{Width: 960, Height: 150},
		margin: Margin{Top: 60, Right: 20, Bottom: 20, Left: 80},
		orient: [2]scale.Orient{scale.OrientBottom, scale.OrientTop},
		rng:    [2]float64{0, 100},
	},
	BrushY: {
		size:   Size{Width: 100, Height: 300},
		margin: Margin{Top: 20, Right: 20, Bottom: 50, Left: 10},
		orient: [2]scale.Orient{scale.OrientLeft, scale.OrientRight},
		rng:    [2]float64{100, 0},
	},
}

// BrushSchema declares the brush keys for a brush type. The default
// orientation comes first in each type's allowed pair.
func BrushSchema(t BrushType) (*schema.Schema, error) {
	d, ok := brushDefaultsByType[t]
	if !ok {
		return nil, fmt.Errorf("unknown brush type %q", t)
	}
	rules := boxRules(d.size, d.margin)
	rules = append(rules,
		schema.Enum(KeyOrient, string(d.orient[0]), string(d.orient[0]), string(d.orient[1])),
		schema.Domain(KeyDomain, schema.DomainMin, schema.DomainMax),
		schema.Numbers(KeyRange, d.rng[0], d.rng[1]).Len(2),
		schema.Enum(KeyScaleType, string(scale.KindLinear), scale.Kinds()...),
		schema.Handle(KeyScale).Check(isScale),
		schema.Handle(KeyAxis).Check(isAxis),
		schema.Handle(KeyBrushSize).Describe("brush plot area size inside the margin"),
	)
	return schema.New(StoreBrush, rules...), nil
}

// Brush holds the brush widget's own canvas and scale.
type Brush struct {
	box
	kind BrushType
}

// NewBrush creates the brush store for a brush type.
func NewBrush(t BrushType, initial map[string]any, opts ...attr.Option) (*Brush, error) {
	sch, err := BrushSchema(t)
	if err != nil {
		return nil, err
	}
	opts = append(opts, attr.WithBatchHook(marginHook))
	s, err := attr.New(sch, initial, opts...)
	if err != nil {
		return nil, err
	}
	return &Brush{box: box{s}, kind: t}, nil
}

// Kind returns the brush type.
func (b *Brush) Kind() BrushType { return b.kind }

// Graph returns the brush plot area size.
func (b *Brush) Graph() Size {
	if g, ok := b.Value(KeyBrushSize).(Size); ok {
		return g
	}
	return b.Inner()
}

// Scale returns the brush scale, or nil before the first build.
func (b *Brush) Scale() scale.Scale {
	s, _ := b.Value(KeyScale).(scale.Scale)
	return s
}

// Axis returns the brush axis, or nil before the first build.
func (b *Brush) Axis() *scale.Axis {
	a, _ := b.Value(KeyAxis).(*scale.Axis)
	return a
}

// Range returns the brush pixel range.
func (b *Brush) Range() [2]float64 {
	r := b.Floats(KeyRange)
	if len(r) != 2 {
		return [2]float64{}
	}
	return [2]float64{r[0], r[1]}
}
