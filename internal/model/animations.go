package model

import (
	"time"

	"github.com/dshills/tschart/internal/attr"
	"github.com/dshills/tschart/internal/config/schema"
)

// StoreAnimations names the animations store.
const StoreAnimations = "animations"

// Animations keys.
const (
	KeyInitType     = "initType"
	KeyInitDuration = "initDuration"
	KeyInitEasing   = "initEasing"
)

// Enter animation types.
const (
	AnimArise     = "arise"
	AnimEnterLeft = "enterLeft"
)

// Easings lists the supported easing names.
var Easings = []string{"linear", "cubic", "sin", "exp", "circle", "elastic", "bounce", "back"}

// AnimationsSchema declares the animations keys.
func AnimationsSchema() *schema.Schema {
	return schema.New(StoreAnimations,
		schema.Enum(KeyInitType, AnimArise, AnimArise, AnimEnterLeft),
		schema.Number(KeyInitDuration, 1000).Min(0).Describe("milliseconds"),
		schema.Enum(KeyInitEasing, "linear", Easings...),
	)
}

// Animations configures the first-render enter animation.
type Animations struct {
	*attr.Store
}

// NewAnimations creates the animations store.
func NewAnimations(initial map[string]any, opts ...attr.Option) (*Animations, error) {
	s, err := attr.New(AnimationsSchema(), initial, opts...)
	if err != nil {
		return nil, err
	}
	return &Animations{s}, nil
}

// Duration returns the enter animation duration.
func (a *Animations) Duration() time.Duration {
	return time.Duration(a.Float(KeyInitDuration) * float64(time.Millisecond))
}
