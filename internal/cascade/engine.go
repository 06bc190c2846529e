package cascade

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/event/topic"
	"github.com/dshills/tschart/internal/logging"
)

// Errors returned by Register.
var (
	ErrCycle         = errors.New("rule would close a cycle")
	ErrDuplicateRule = errors.New("duplicate rule")
	ErrInvalidRule   = errors.New("invalid rule")
	ErrUnknownRule   = errors.New("unknown rule")
)

// Trigger is the event that started a rule run.
type Trigger struct {
	Topic   topic.Topic
	Payload any
}

// Rule recomputes derived state when one of its trigger topics is published.
type Rule struct {
	// Name identifies the rule in logs and errors.
	Name string

	// Triggers are the topic patterns that run the rule.
	Triggers []topic.Topic

	// Writes are the topics the rule may publish while running.
	Writes []topic.Topic

	// Run performs the recomputation.
	Run func(ctx context.Context, t Trigger) error
}

// Stats counts rule activity.
type Stats struct {
	Runs      map[string]int
	Skipped   int
	Recovered int
}

type registered struct {
	rule Rule
	subs []*event.Subscription
}

// Engine owns the rules attached to one bus.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	bus    *event.Bus
	logger *logging.Logger

	rules   []*registered
	active  map[string]bool
	stats   Stats
	dropped uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine attached to bus.
func New(bus *event.Bus, opts ...Option) *Engine {
	e := &Engine{
		bus:    bus,
		logger: logging.Nop(),
		active: make(map[string]bool),
		stats:  Stats{Runs: make(map[string]int)},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("cascade")
	e.dropped = bus.Stats().Dropped
	bus.OnSettled(e.recompute)
	return e
}

// Register validates r and subscribes it to its trigger topics.
func (e *Engine) Register(r Rule) error {
	if r.Name == "" || r.Run == nil || len(r.Triggers) == 0 {
		return fmt.Errorf("%w: %q needs a name, triggers and a run function", ErrInvalidRule, r.Name)
	}
	for _, t := range slices.Concat(r.Triggers, r.Writes) {
		if !t.IsValid() {
			return fmt.Errorf("%w: %q has invalid topic %q", ErrInvalidRule, r.Name, t)
		}
	}
	if e.find(r.Name) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, r.Name)
	}
	if path := e.cycleThrough(r); path != nil {
		return fmt.Errorf("%w: %s", ErrCycle, strings.Join(path, " -> "))
	}

	reg := &registered{rule: r}
	for _, t := range r.Triggers {
		sub, err := e.bus.SubscribeFunc(t, e.handler(r), event.WithName("rule "+r.Name))
		if err != nil {
			e.unsubscribe(reg)
			return fmt.Errorf("register %q: %w", r.Name, err)
		}
		reg.subs = append(reg.subs, sub)
	}
	e.rules = append(e.rules, reg)
	e.logger.Debug("registered rule %s", r.Name)
	return nil
}

// MustRegister is like Register but panics on error. Use it for rule tables
// that are fixed at compile time.
func (e *Engine) MustRegister(rules ...Rule) {
	for _, r := range rules {
		if err := e.Register(r); err != nil {
			panic(err)
		}
	}
}

// Unregister removes a rule.
func (e *Engine) Unregister(name string) error {
	i := e.find(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	e.unsubscribe(e.rules[i])
	e.rules = slices.Delete(e.rules, i, i+1)
	return nil
}

// Run runs the named rule once outside any event, for example to compute the
// initial derived state.
func (e *Engine) Run(ctx context.Context, name string) error {
	i := e.find(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return e.run(ctx, e.rules[i].rule, Trigger{})
}

// RunAll runs every rule once, each after the rules that feed it.
func (e *Engine) RunAll(ctx context.Context) error {
	var errs []error
	for _, name := range e.Order() {
		if err := e.Run(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Rules returns the registered rule names in registration order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, reg := range e.rules {
		names[i] = reg.rule.Name
	}
	return names
}

// Stats returns a copy of the activity counters.
func (e *Engine) Stats() Stats {
	runs := make(map[string]int, len(e.stats.Runs))
	for k, v := range e.stats.Runs {
		runs[k] = v
	}
	return Stats{Runs: runs, Skipped: e.stats.Skipped, Recovered: e.stats.Recovered}
}

// recompute reruns every rule after a publish was dropped at the depth limit.
// The dropped event never reached its rules, so derived values would
// otherwise lag behind the inputs that were already stored.
func (e *Engine) recompute() {
	dropped := e.bus.Stats().Dropped
	if dropped == e.dropped {
		return
	}
	e.dropped = dropped
	e.stats.Recovered++
	e.logger.Warn("cascade truncated, recomputing %d rules", len(e.rules))
	if err := e.RunAll(context.Background()); err != nil {
		e.logger.Warn("recompute after truncation: %v", err)
	}
}

func (e *Engine) handler(r Rule) event.HandlerFunc {
	return func(ctx context.Context, ev any) error {
		t := Trigger{}
		if tp, ok := ev.(event.TopicProvider); ok {
			t.Topic = tp.EventTopic()
		}
		if pp, ok := ev.(event.PayloadProvider); ok {
			t.Payload = pp.EventPayload()
		}
		return e.run(ctx, r, t)
	}
}

func (e *Engine) run(ctx context.Context, r Rule, t Trigger) error {
	if e.active[r.Name] {
		e.stats.Skipped++
		e.logger.Debug("rule %s already running, skipping %s", r.Name, t.Topic)
		return nil
	}
	e.active[r.Name] = true
	defer delete(e.active, r.Name)

	e.stats.Runs[r.Name]++
	if err := r.Run(ctx, t); err != nil {
		e.logger.WithField("rule", r.Name).Warn("rule failed on %s: %v", t.Topic, err)
		return fmt.Errorf("rule %s: %w", r.Name, err)
	}
	return nil
}

func (e *Engine) find(name string) int {
	return slices.IndexFunc(e.rules, func(reg *registered) bool { return reg.rule.Name == name })
}

func (e *Engine) unsubscribe(reg *registered) {
	for _, sub := range reg.subs {
		_ = e.bus.Unsubscribe(sub)
	}
	reg.subs = nil
}
