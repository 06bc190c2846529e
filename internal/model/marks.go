package model

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/config/schema"
)

// StoreMarks names the marks store.
const StoreMarks = "marks"

// Marks keys.
const (
	KeyType          = "type"
	KeyInterpolation = "interpolation"
	KeySymbols       = "symbols"
	KeySize          = "size"
	KeyColors        = "colors"
)

// Mark types.
const (
	MarkLine        = "line"
	MarkArea        = "area"
	MarkScatter     = "scatter"
	MarkSteamgraph  = "steamgraph"
	MarkStackedArea = "stacked-area"
)

// MarkTypes lists every mark type.
var MarkTypes = []string{MarkLine, MarkArea, MarkScatter, MarkSteamgraph, MarkStackedArea}

// Interpolations lists every line interpolation.
var Interpolations = []string{
	"linear", "linear-closed", "step", "step-before", "step-after",
	"basis", "basis-open", "basis-closed", "bundle",
	"cardinal", "cardinal-open", "cardinal-closed", "monotone",
}

// Symbols lists every scatter symbol.
var Symbols = []string{"circle", "square", "cross", "diamond", "triangle-up", "triangle-down"}

// AutoColors selects the automatic palette.
const AutoColors = "auto"

// checkColors accepts "auto" or a list whose "#" entries are valid hex
// colors. Other entries are CSS class names.
func checkColors(v any) error {
	colors, ok := v.([]string)
	if !ok {
		return nil
	}
	for i, c := range colors {
		if strings.HasPrefix(c, "#") {
			if _, err := colorful.Hex(c); err != nil {
				return fmt.Errorf("colors[%d]: %q is not a #rrggbb color", i, c)
			}
			continue
		}
		if c == "" || strings.ContainsAny(c, " \t\"<>") {
			return fmt.Errorf("colors[%d]: %q is not a class name", i, c)
		}
	}
	return nil
}

// MarksSchema declares the marks keys.
func MarksSchema() *schema.Schema {
	colors := schema.Strings(KeyColors).OrKeyword(AutoColors).Check(checkColors).
		Describe(`"auto" or #rrggbb colors and CSS class names`)
	colors.Default = AutoColors

	return schema.New(StoreMarks,
		schema.Enum(KeyType, MarkLine, MarkTypes...),
		schema.Enum(KeyInterpolation, "linear", Interpolations...),
		schema.Strings(KeySymbols, "circle").OneOf(Symbols...).AcceptScalar(),
		schema.Number(KeySize, 5).Min(0),
		colors,
	)
}

// Marks configures how series are drawn.
type Marks struct {
	*attr.Store
}

// NewMarks creates the marks store.
func NewMarks(initial map[string]any, opts ...attr.Option) (*Marks, error) {
	s, err := attr.New(MarksSchema(), initial, opts...)
	if err != nil {
		return nil, err
	}
	return &Marks{s}, nil
}

// Type returns the mark type.
func (m *Marks) Type() string { return m.String(KeyType) }

// Stacked reports whether the mark type stacks series.
func (m *Marks) Stacked() bool {
	t := m.Type()
	return t == MarkStackedArea || t == MarkSteamgraph
}

// Colors returns the explicit colors, or nil for the automatic palette.
func (m *Marks) Colors() []string {
	c, _ := m.Value(KeyColors).([]string)
	return append([]string(nil), c...)
}
