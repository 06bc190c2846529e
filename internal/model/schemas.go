package model

import "github.com/dshills/tschart/internal/config/schema"

// Schemas returns the schema of every chart store in option file order,
// with one brush schema per brush type.
func Schemas() []*schema.Schema {
	out := []*schema.Schema{
		CanvasSchema(),
		AxesSchema(),
		MarksSchema(),
		AnnotationsSchema(),
		WidgetsSchema(),
		AnimationsSchema(),
		ListenersSchema(),
	}
	for _, t := range []BrushType{BrushX, BrushY} {
		if s, err := BrushSchema(t); err == nil {
			out = append(out, s)
		}
	}
	return out
}
