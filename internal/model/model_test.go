package model

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/logging"
)

func TestCanvas_Defaults(t *testing.T) {
	c, err := NewCanvas(nil)
	if err != nil {
		t.Fatalf("NewCanvas() failed: %v", err)
	}

	if c.Width() != 960 || c.Height() != 500 {
		t.Errorf("size = %vx%v, want 960x500", c.Width(), c.Height())
	}
	if got := c.Margin(); got != DefaultCanvasMargin {
		t.Errorf("Margin() = %+v, want %+v", got, DefaultCanvasMargin)
	}
	if got := c.Graph(); got != (Size{Width: 800, Height: 430}) {
		t.Errorf("Graph() = %v, want 800x430", got)
	}
}

func TestCanvas_InvalidMarginAtConstruction(t *testing.T) {
	_, err := NewCanvas(map[string]any{KeyMargin: []any{"50"}})
	if err == nil {
		t.Fatal("NewCanvas() with margin [\"50\"] should fail")
	}
	var aerr *attr.Error
	if !errors.As(err, &aerr) {
		t.Fatalf("error = %T, want *attr.Error", err)
	}
	if len(aerr.Rejected.ForPath(KeyMargin)) == 0 {
		t.Errorf("rejected = %v, want margin", aerr.Rejected)
	}
}

func TestCanvas_InvalidMarginOnSet(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelWarn, Output: &buf})
	c, _ := NewCanvas(nil, attr.WithLogger(logger))

	res := c.Set(KeyMargin, []any{"50"})
	if res.OK() {
		t.Fatal("Set(margin, [\"50\"]) should be rejected")
	}
	if got := c.Floats(KeyMargin); !reflect.DeepEqual(got, []float64{20, 80, 50, 80}) {
		t.Errorf("margin = %v, want default [20 80 50 80]", got)
	}
	if c.Float(KeyMarginTop) != 20 {
		t.Errorf("marginTop = %v, want 20", c.Float(KeyMarginTop))
	}
	if !strings.Contains(buf.String(), "rejected value") {
		t.Errorf("log = %q, want a rejection warning", buf.String())
	}
}

func TestCanvas_MarginConsistency(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   Margin
	}{
		{"array", map[string]any{KeyMargin: []float64{1, 2, 3, 4}}, Margin{1, 2, 3, 4}},
		{"scalar", map[string]any{KeyMarginLeft: 40}, Margin{20, 80, 50, 40}},
		{"scalar wins in batch", map[string]any{KeyMargin: []float64{1, 2, 3, 4}, KeyMarginTop: 9}, Margin{9, 2, 3, 4}},
		{"rejected scalar", map[string]any{KeyMarginTop: -1}, DefaultCanvasMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := NewCanvas(nil)
			c.SetMany(tt.values)

			if got := c.Margin(); got != tt.want {
				t.Errorf("Margin() = %+v, want %+v", got, tt.want)
			}
			scalars := Margin{
				Top:    c.Float(KeyMarginTop),
				Right:  c.Float(KeyMarginRight),
				Bottom: c.Float(KeyMarginBottom),
				Left:   c.Float(KeyMarginLeft),
			}
			if scalars != tt.want {
				t.Errorf("scalars = %+v, want %+v", scalars, tt.want)
			}
		})
	}
}

func TestCanvas_GraphIsDerived(t *testing.T) {
	c, _ := NewCanvas(nil)
	res := c.Set(KeyGraph, Size{Width: 1, Height: 1})
	if res.OK() {
		t.Error("validated write to _graph should be rejected")
	}
}

func TestAxes_Orient(t *testing.T) {
	a, err := NewAxes(nil)
	if err != nil {
		t.Fatalf("NewAxes() failed: %v", err)
	}

	res := a.Set(KeyXOrient, "left")
	if res.OK() {
		t.Fatal("Set(xOrient, left) should be rejected")
	}
	if got := a.String(KeyXOrient); got != "bottom" {
		t.Errorf("xOrient = %q, want bottom", got)
	}
	if res := a.Set(KeyYOrient, "right"); !res.OK() {
		t.Errorf("Set(yOrient, right) failed: %v", res.Err())
	}
}

func TestAxes_Validation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		ok    bool
	}{
		{"domain numbers", KeyXDomain, []any{0, 10}, true},
		{"domain sentinel", KeyYDomain, []any{0, "max"}, true},
		{"domain bad sentinel", KeyYDomain, []any{0, "top"}, false},
		{"domain three elements", KeyXDomain, []float64{0, 1, 2}, false},
		{"range", KeyXRange, []float64{0, 800}, true},
		{"range sentinel", KeyXRange, []any{0, "max"}, false},
		{"type", KeyXType, "log", true},
		{"type unknown", KeyXType, "radial", false},
		{"scale handle wrong type", KeyXScale, "linear", false},
		{"tick format", KeyXTickFormat, "number:2", true},
		{"tick format lua", KeyYTickFormat, "lua:v * 2", true},
		{"tick format broken lua", KeyYTickFormat, "lua:return (", false},
		{"tick format unknown", KeyYTickFormat, "color:red", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := NewAxes(nil)
			if res := a.Set(tt.key, tt.value); res.OK() != tt.ok {
				t.Errorf("Set(%s, %v).OK() = %v, want %v (%v)", tt.key, tt.value, res.OK(), tt.ok, res.Err())
			}
		})
	}
}

func TestMarks_Validation(t *testing.T) {
	m, err := NewMarks(nil)
	if err != nil {
		t.Fatalf("NewMarks() failed: %v", err)
	}
	if m.Colors() != nil || m.String(KeyColors) != AutoColors {
		t.Errorf("default colors = %v, want auto", m.Value(KeyColors))
	}

	if res := m.Set(KeySymbols, "square"); !res.OK() {
		t.Fatalf("Set(symbols, square) failed: %v", res.Err())
	}
	if got := m.Strings(KeySymbols); !reflect.DeepEqual(got, []string{"square"}) {
		t.Errorf("symbols = %v, want [square]", got)
	}

	if res := m.Set(KeyColors, []string{"#ff0000", "series-a"}); !res.OK() {
		t.Errorf("Set(colors) failed: %v", res.Err())
	}
	if res := m.Set(KeyColors, []string{"#zz0000"}); res.OK() {
		t.Error("Set(colors, #zz0000) should be rejected")
	}
	if got := m.Colors(); !reflect.DeepEqual(got, []string{"#ff0000", "series-a"}) {
		t.Errorf("Colors() = %v, want the last valid palette", got)
	}

	if res := m.Set(KeyType, "pie"); res.OK() {
		t.Error("Set(type, pie) should be rejected")
	}
	if res := m.Set(KeyType, MarkSteamgraph); !res.OK() || !m.Stacked() {
		t.Errorf("steamgraph should be accepted and stacked: %v", res.Err())
	}
	if res := m.Set(KeySize, -1); res.OK() {
		t.Error("Set(size, -1) should be rejected")
	}
}

func TestBrush_Defaults(t *testing.T) {
	tests := []struct {
		kind   BrushType
		size   Size
		margin Margin
		orient string
		rng    [2]float64
		bad    string
	}{
		{BrushX, Size{960, 150}, Margin{60, 20, 20, 80}, "bottom", [2]float64{0, 100}, "left"},
		{BrushY, Size{100, 300}, Margin{20, 20, 50, 10}, "left", [2]float64{100, 0}, "top"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			b, err := NewBrush(tt.kind, nil)
			if err != nil {
				t.Fatalf("NewBrush() failed: %v", err)
			}
			if got := (Size{b.Width(), b.Height()}); got != tt.size {
				t.Errorf("size = %v, want %v", got, tt.size)
			}
			if got := b.Margin(); got != tt.margin {
				t.Errorf("Margin() = %+v, want %+v", got, tt.margin)
			}
			if got := b.String(KeyOrient); got != tt.orient {
				t.Errorf("orient = %q, want %q", got, tt.orient)
			}
			if got := b.Range(); got != tt.rng {
				t.Errorf("Range() = %v, want %v", got, tt.rng)
			}
			if res := b.Set(KeyOrient, tt.bad); res.OK() {
				t.Errorf("Set(orient, %s) should be rejected", tt.bad)
			}
			if b.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", b.Kind(), tt.kind)
			}
		})
	}

	if _, err := NewBrush(BrushType("z"), nil); err == nil {
		t.Error("NewBrush(z) should fail")
	}
}

func TestAnimations_Duration(t *testing.T) {
	a, err := NewAnimations(map[string]any{KeyInitDuration: 250})
	if err != nil {
		t.Fatalf("NewAnimations() failed: %v", err)
	}
	if got := a.Duration().Milliseconds(); got != 250 {
		t.Errorf("Duration() = %dms, want 250ms", got)
	}
	if _, err := NewAnimations(map[string]any{KeyInitEasing: "wobble"}); err == nil {
		t.Error("NewAnimations(initEasing wobble) should fail")
	}
}

func TestListenersAndAnnotations_Defaults(t *testing.T) {
	l, _ := NewListeners(nil)
	if !l.Bool(KeyListenChart) || !l.Bool(KeyListenData) {
		t.Error("listeners should default to true")
	}

	a, _ := NewAnnotations(map[string]any{KeyLegend: []string{"a", "b"}})
	if got := a.Strings(KeyLegend); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("legend = %v, want [a b]", got)
	}
	if a.Bool(KeyDataCursor) {
		t.Error("dataCursor should default to false")
	}
}

func TestWidgets(t *testing.T) {
	w, _ := NewWidgets(map[string]any{KeyBrush: true, KeyBrushType: "y"})
	if !w.BrushEnabled() || w.BrushType() != BrushY {
		t.Errorf("widgets = %v %v, want enabled y", w.BrushEnabled(), w.BrushType())
	}
	if res := w.Set(KeyBrushType, "z"); res.OK() {
		t.Error("Set(brushType, z) should be rejected")
	}
}

func TestSchemas(t *testing.T) {
	var names []string
	for _, s := range Schemas() {
		names = append(names, s.Name())
	}
	want := []string{
		StoreCanvas, StoreAxes, StoreMarks, StoreAnnotations,
		StoreWidgets, StoreAnimations, StoreListeners, StoreBrush, StoreBrush,
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Schemas() names = %v, want %v", names, want)
	}
}
