package attr

import (
	"context"
	"errors"
	"reflect"
	"slices"

	"github.com/tiendc/go-deepcopy"

	"github.com/dshills/tschart/internal/config/schema"
	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/logging"
)

// ErrDerived is returned when a validated write targets a derived key.
var ErrDerived = errors.New("derived attribute is read-only")

// BatchHook adjusts a pending batch before it is applied. Hooks keep linked
// keys consistent, for example a margin array and its scalar fields. pending
// holds canonical values; current reads the stored value of a key.
type BatchHook func(pending map[string]any, current func(key string) any)

// BatchCheck inspects a validated batch after the hooks ran and returns the
// entries it refuses. Refused keys are rejected; the rest of the batch still
// applies. Unvalidated writes skip the checks.
type BatchCheck func(pending map[string]any, current func(key string) any) []*schema.ValidationError

// Store is a validated key/value container.
//
// A Store is not safe for concurrent use.
type Store struct {
	name   string
	schema *schema.Schema
	values map[string]any
	bus    *event.Bus
	logger *logging.Logger
	hooks  []BatchHook
	checks []BatchCheck
}

// Option configures a Store.
type Option func(*Store)

// WithBus publishes change events on bus.
func WithBus(bus *event.Bus) Option {
	return func(s *Store) {
		s.bus = bus
	}
}

// WithLogger sets the logger used for rejected and unknown keys.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBatchHook adds a hook run on every batch, including the initial one.
func WithBatchHook(h BatchHook) Option {
	return func(s *Store) {
		s.hooks = append(s.hooks, h)
	}
}

// WithBatchCheck adds a check run on every validated batch.
func WithBatchCheck(c BatchCheck) Option {
	return func(s *Store) {
		s.checks = append(s.checks, c)
	}
}

// New creates a store holding the schema defaults overlaid with initial.
// Any invalid initial value aborts construction. Unknown initial keys are
// dropped with a warning.
func New(sch *schema.Schema, initial map[string]any, opts ...Option) (*Store, error) {
	s := &Store{
		name:   sch.Name(),
		schema: sch,
		values: make(map[string]any),
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("attr." + s.name)

	for _, r := range sch.Rules() {
		if r.Default != nil {
			s.values[r.Key] = clone(r.Default)
		}
	}

	res := s.apply(context.Background(), initial, setConfig{validate: true, publish: false})
	if res.Rejected.HasErrors() {
		return nil, res.Err()
	}
	return s, nil
}

// SetOption configures one write.
type SetOption func(*setConfig)

type setConfig struct {
	validate bool
	publish  bool
	source   string
}

// WithoutValidation writes derived keys. Values are stored as given.
func WithoutValidation() SetOption {
	return func(c *setConfig) {
		c.validate = false
	}
}

// Silently applies the write without publishing change events.
func Silently() SetOption {
	return func(c *setConfig) {
		c.publish = false
	}
}

// WithSource names the writer in published events.
func WithSource(source string) SetOption {
	return func(c *setConfig) {
		c.source = source
	}
}

// Name returns the store name.
func (s *Store) Name() string {
	return s.name
}

// Schema returns the store schema.
func (s *Store) Schema() *schema.Schema {
	return s.schema
}

// Set writes one key.
func (s *Store) Set(key string, value any, opts ...SetOption) Result {
	return s.Apply(context.Background(), map[string]any{key: value}, opts...)
}

// SetMany writes a batch of keys.
func (s *Store) SetMany(values map[string]any, opts ...SetOption) Result {
	return s.Apply(context.Background(), values, opts...)
}

// Apply writes a batch of keys and publishes the resulting change events with
// ctx. Handlers re-entering the store from those events should pass their
// own context on.
func (s *Store) Apply(ctx context.Context, values map[string]any, opts ...SetOption) Result {
	cfg := setConfig{validate: true, publish: true, source: "attr." + s.name}
	for _, opt := range opts {
		opt(&cfg)
	}
	return s.apply(ctx, values, cfg)
}

func (s *Store) apply(ctx context.Context, values map[string]any, cfg setConfig) Result {
	res := Result{Store: s.name}
	pending := make(map[string]any, len(values))

	for _, key := range s.order(values) {
		value := values[key]
		rule, ok := s.schema.Rule(key)
		if !ok {
			res.Unknown = append(res.Unknown, key)
			continue
		}

		if !cfg.validate {
			pending[key] = value
			continue
		}
		if rule.Derived() {
			s.reject(ctx, &res, cfg, &schema.ValidationError{Path: key, Message: ErrDerived.Error(), Value: value})
			continue
		}
		v, verr := rule.Validate(value)
		if verr != nil {
			s.reject(ctx, &res, cfg, verr)
			continue
		}
		pending[key] = v
	}

	for _, key := range res.Unknown {
		s.logger.WithField("key", key).Warn("dropping unknown attribute")
		if cfg.publish && s.bus != nil {
			_ = event.Publish(ctx, s.bus, events.TopicUnknownAttribute,
				events.UnknownAttribute{Store: s.name, Key: key}, cfg.source)
		}
	}

	if len(pending) == 0 {
		return res
	}

	for _, hook := range s.hooks {
		hook(pending, s.get)
	}
	if cfg.validate {
		for _, check := range s.checks {
			for _, verr := range check(pending, s.get) {
				delete(pending, verr.Path)
				s.reject(ctx, &res, cfg, verr)
			}
		}
		if len(pending) == 0 {
			return res
		}
	}

	applied := make(map[string]any, len(pending))
	old := make(map[string]any, len(pending))
	for _, key := range s.schema.Keys() {
		v, ok := pending[key]
		if !ok {
			continue
		}
		prev, had := s.values[key]
		if had && equal(prev, v) {
			continue
		}
		old[key] = prev
		applied[key] = v
		s.values[key] = clone(v)
		res.Changed = append(res.Changed, key)
	}

	if !cfg.publish || s.bus == nil {
		return res
	}

	release := s.bus.Hold()
	defer release()

	var errs []error
	for _, key := range res.Changed {
		// A nested write during an earlier event already published this key.
		if !equal(s.values[key], applied[key]) {
			continue
		}
		payload := events.AttributeChanged{Store: s.name, Key: key, Old: old[key], New: s.get(key)}
		if err := event.Publish(ctx, s.bus, events.Attr(s.name, key), payload, cfg.source); err != nil {
			errs = append(errs, err)
		}
	}
	res.PublishErr = errors.Join(errs...)
	return res
}

func (s *Store) reject(ctx context.Context, res *Result, cfg setConfig, verr *schema.ValidationError) {
	if res.Rejected == nil {
		res.Rejected = &schema.ValidationErrors{}
	}
	res.Rejected.Add(verr)

	s.logger.WithField("key", verr.Path).Warn("rejected value %v: %s", verr.Value, verr.Message)
	if cfg.publish && s.bus != nil {
		_ = event.Publish(ctx, s.bus, events.TopicAttributeRejected, events.AttributeRejected{
			Store:  s.name,
			Key:    verr.Path,
			Value:  verr.Value,
			Reason: verr.Message,
		}, cfg.source)
	}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(key string) (any, bool) {
	v, ok := s.values[key]
	if !ok {
		return nil, false
	}
	return clone(v), true
}

func (s *Store) get(key string) any {
	return clone(s.values[key])
}

// Float returns a number key, or 0.
func (s *Store) Float(key string) float64 {
	f, _ := s.values[key].(float64)
	return f
}

// String returns a string key, or "".
func (s *Store) String(key string) string {
	str, _ := s.values[key].(string)
	return str
}

// Bool returns a boolean key, or false.
func (s *Store) Bool(key string) bool {
	b, _ := s.values[key].(bool)
	return b
}

// Floats returns a copy of a number array key.
func (s *Store) Floats(key string) []float64 {
	f, _ := s.values[key].([]float64)
	return append([]float64(nil), f...)
}

// Strings returns a copy of a string array key.
func (s *Store) Strings(key string) []string {
	str, _ := s.values[key].([]string)
	return append([]string(nil), str...)
}

// Domain returns a copy of a domain key.
func (s *Store) Domain(key string) []any {
	d, _ := s.values[key].([]any)
	return append([]any(nil), d...)
}

// Value returns a key without copying. Use it for handles.
func (s *Store) Value(key string) any {
	return s.values[key]
}

// Snapshot returns a copy of every stored key.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = clone(v)
	}
	return out
}

func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// clone deep-copies slices and maps. Scalars and handles are returned as is.
func clone(v any) any {
	switch x := v.(type) {
	case []float64:
		var out []float64
		if err := deepcopy.Copy(&out, x); err != nil {
			return append([]float64(nil), x...)
		}
		return out
	case []string:
		var out []string
		if err := deepcopy.Copy(&out, x); err != nil {
			return append([]string(nil), x...)
		}
		return out
	case []any:
		var out []any
		if err := deepcopy.Copy(&out, x); err != nil {
			return append([]any(nil), x...)
		}
		return out
	case map[string]any:
		var out map[string]any
		if err := deepcopy.Copy(&out, x); err != nil {
			return x
		}
		return out
	default:
		return v
	}
}

// order returns the keys of values in schema order followed by undeclared
// keys in lexical order.
func (s *Store) order(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for _, key := range s.schema.Keys() {
		if _, ok := values[key]; ok {
			keys = append(keys, key)
		}
	}
	var unknown []string
	for key := range values {
		if !s.schema.Has(key) {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return append(keys, unknown...)
}
