package model

import (
	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/config/schema"
)

// StoreListeners names the listeners store.
const StoreListeners = "listeners"

// Listeners keys.
const (
	KeyListenChart = "chart"
	KeyListenData  = "data"
)

// ListenersSchema declares the listeners keys.
func ListenersSchema() *schema.Schema {
	return schema.New(StoreListeners,
		schema.Bool(KeyListenChart, true).Describe("redraw on configuration changes"),
		schema.Bool(KeyListenData, true).Describe("redraw on data changes"),
	)
}

// Listeners switches live redraws on or off after the first render.
type Listeners struct {
	*attr.Store
}

// NewListeners creates the listeners store.
func NewListeners(initial map[string]any, opts ...attr.Option) (*Listeners, error) {
	s, err := attr.New(ListenersSchema(), initial, opts...)
	if err != nil {
		return nil, err
	}
	return &Listeners{s}, nil
}
