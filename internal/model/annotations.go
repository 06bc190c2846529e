package model

import (
	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/config/schema"
)

// StoreAnnotations names the annotations store.
const StoreAnnotations = "annotations"

// Annotations keys.
const (
	KeyTitle       = "title"
	KeyCaption     = "caption"
	KeyLegend      = "legend"
	KeyDataCursor  = "dataCursor"
	KeyEditable    = "editable"
	KeyInteractive = "interactive"
)

// AnnotationsSchema declares the annotations keys.
func AnnotationsSchema() *schema.Schema {
	return schema.New(StoreAnnotations,
		schema.String(KeyTitle, ""),
		schema.String(KeyCaption, ""),
		schema.Strings(KeyLegend).Describe("one label per series"),
		schema.Bool(KeyDataCursor, false),
		schema.Bool(KeyEditable, false),
		schema.Bool(KeyInteractive, false),
	)
}

// Annotations holds the title, caption, legend labels and interaction flags.
type Annotations struct {
	*attr.Store
}

// NewAnnotations creates the annotations store.
func NewAnnotations(initial map[string]any, opts ...attr.Option) (*Annotations, error) {
	s, err := attr.New(AnnotationsSchema(), initial, opts...)
	if err != nil {
		return nil, err
	}
	return &Annotations{s}, nil
}
