package model

import (
	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/config/schema"
)

// Keys shared by every boxed model: the canvas and the brush.
const (
	KeyWidth        = "width"
	KeyHeight       = "height"
	KeyMargin       = "margin"
	KeyMarginTop    = "marginTop"
	KeyMarginRight  = "marginRight"
	KeyMarginBottom = "marginBottom"
	KeyMarginLeft   = "marginLeft"
)

// marginKeys lists the scalar keys in margin array order.
var marginKeys = [4]string{KeyMarginTop, KeyMarginRight, KeyMarginBottom, KeyMarginLeft}

// boxRules declares the size and margin keys with the given defaults.
func boxRules(size Size, m Margin) []*schema.Rule {
	rules := []*schema.Rule{
		schema.Number(KeyWidth, size.Width).Min(0).Describe("outer width in pixels"),
		schema.Number(KeyHeight, size.Height).Min(0).Describe("outer height in pixels"),
		schema.Numbers(KeyMargin, m.Slice()...).Len(4).Min(0).Describe("[top, right, bottom, left]"),
	}
	for i, key := range marginKeys {
		rules = append(rules, schema.Number(key, m.Slice()[i]).Min(0))
	}
	return rules
}

// marginHook keeps the margin array and its four scalars equal within a
// batch. Scalars written in the same batch win over the array.
func marginHook(pending map[string]any, current func(string) any) {
	touched := false
	for _, key := range append([]string{KeyMargin}, marginKeys[:]...) {
		if _, ok := pending[key]; ok {
			touched = true
			break
		}
	}
	if !touched {
		return
	}

	m, ok := pending[KeyMargin].([]float64)
	if !ok {
		m, _ = current(KeyMargin).([]float64)
	}
	m = append([]float64(nil), m...)
	for len(m) < 4 {
		m = append(m, 0)
	}
	for i, key := range marginKeys {
		if v, ok := pending[key].(float64); ok {
			m[i] = v
		}
	}

	pending[KeyMargin] = m
	for i, key := range marginKeys {
		pending[key] = m[i]
	}
}

// box reads the shared size and margin keys of a store.
type box struct {
	*attr.Store
}

// Width returns the outer width.
func (b box) Width() float64 { return b.Float(KeyWidth) }

// Height returns the outer height.
func (b box) Height() float64 { return b.Float(KeyHeight) }

// Margin returns the current margin.
func (b box) Margin() Margin { return MarginOf(b.Floats(KeyMargin)) }

// Inner returns the plot size inside the margin.
func (b box) Inner() Size {
	return b.Margin().Inner(Size{Width: b.Width(), Height: b.Height()})
}
