package model

import (
	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/config/schema"
)

// StoreCanvas names the canvas store.
const StoreCanvas = "canvas"

// KeyGraph is the derived plot area size.
const KeyGraph = "_graph"

// Canvas defaults.
var (
	DefaultCanvasSize   = Size{Width: 960, Height: 500}
	DefaultCanvasMargin = Margin{Top: 20, Right: 80, Bottom: 50, Left: 80}
)

// CanvasSchema declares the canvas keys.
func CanvasSchema() *schema.Schema {
	rules := boxRules(DefaultCanvasSize, DefaultCanvasMargin)
	rules = append(rules, schema.Handle(KeyGraph).Describe("plot area size inside the margin"))
	return schema.New(StoreCanvas, rules...)
}

// Canvas is the outer drawing surface.
type Canvas struct {
	box
}

// NewCanvas creates the canvas store.
func NewCanvas(initial map[string]any, opts ...attr.Option) (*Canvas, error) {
	opts = append(opts, attr.WithBatchHook(marginHook))
	s, err := attr.New(CanvasSchema(), initial, opts...)
	if err != nil {
		return nil, err
	}
	return &Canvas{box{s}}, nil
}

// Graph returns the derived plot area size, falling back to the computed
// size before the first recomputation.
func (c *Canvas) Graph() Size {
	if g, ok := c.Value(KeyGraph).(Size); ok {
		return g
	}
	return c.Inner()
}
