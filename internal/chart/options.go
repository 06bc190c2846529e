package chart

import (
	"time"

	"golang.org/x/text/language"

	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/logging"
	"github.com/dshills/tschart/internal/model"
)

// Options holds the initial attributes of every model, keyed by attribute
// name. Missing keys take their defaults.
type Options struct {
	Canvas      map[string]any
	Axes        map[string]any
	Marks       map[string]any
	Annotations map[string]any
	Widgets     map[string]any
	Animations  map[string]any
	Listeners   map[string]any

	// Brush configures the brush when widgets.brush is enabled.
	Brush map[string]any
}

// sections maps top-level option names to their fields.
func (o *Options) sections() map[string]*map[string]any {
	return map[string]*map[string]any{
		model.StoreCanvas:      &o.Canvas,
		model.StoreAxes:        &o.Axes,
		model.StoreMarks:       &o.Marks,
		model.StoreAnnotations: &o.Annotations,
		model.StoreWidgets:     &o.Widgets,
		model.StoreAnimations:  &o.Animations,
		model.StoreListeners:   &o.Listeners,
		model.StoreBrush:       &o.Brush,
	}
}

// OptionsFromMap splits a nested option map into Options. Unknown top-level
// keys and sections that are not objects are ignored with a warning.
func OptionsFromMap(m map[string]any, logger *logging.Logger) Options {
	if logger == nil {
		logger = logging.Nop()
	}
	var opts Options
	sections := opts.sections()
	for key, v := range m {
		dst, ok := sections[key]
		if !ok {
			logger.Warn("ignoring unknown option section %q", key)
			continue
		}
		sec, ok := v.(map[string]any)
		if !ok {
			logger.Warn("ignoring option section %q: expected an object, got %T", key, v)
			continue
		}
		*dst = sec
	}
	return opts
}

// Map returns the options as a nested map, omitting empty sections.
func (o Options) Map() map[string]any {
	out := make(map[string]any)
	for key, sec := range o.sections() {
		if len(*sec) > 0 {
			out[key] = *sec
		}
	}
	return out
}

type config struct {
	logger   *logging.Logger
	maxDepth int
	lang     language.Tag
	hooks    []func(events.LayerRedrawn)
	timeout  time.Duration
}

// Option configures New.
type Option func(*config)

// WithLogger sets the logger shared by every chart component.
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxDepth limits how deeply attribute changes may cascade.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithLanguage sets the locale of number tick labels.
func WithLanguage(tag language.Tag) Option {
	return func(c *config) {
		c.lang = tag
	}
}

// WithFormatTimeout bounds each call of a Lua tick formatter.
func WithFormatTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRedrawHook calls fn after every scene flush.
func WithRedrawHook(fn func(events.LayerRedrawn)) Option {
	return func(c *config) {
		if fn != nil {
			c.hooks = append(c.hooks, fn)
		}
	}
}
