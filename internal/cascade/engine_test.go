package cascade

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/event/topic"
)

func noop(context.Context, Trigger) error { return nil }

func rule(name string, triggers, writes []topic.Topic) Rule {
	return Rule{Name: name, Triggers: triggers, Writes: writes, Run: noop}
}

func ts(topics ...topic.Topic) []topic.Topic { return topics }

func TestRegister_Invalid(t *testing.T) {
	e := New(event.NewBus())

	tests := []struct {
		name string
		r    Rule
		want error
	}{
		{"no name", Rule{Triggers: ts("a"), Run: noop}, ErrInvalidRule},
		{"no triggers", Rule{Name: "r", Run: noop}, ErrInvalidRule},
		{"no run", Rule{Name: "r", Triggers: ts("a")}, ErrInvalidRule},
		{"bad topic", rule("r", ts("a..b"), nil), ErrInvalidRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.Register(tt.r); !errors.Is(err, tt.want) {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}

	if err := e.Register(rule("r", ts("a"), nil)); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if err := e.Register(rule("r", ts("b"), nil)); !errors.Is(err, ErrDuplicateRule) {
		t.Errorf("duplicate Register() error = %v, want ErrDuplicateRule", err)
	}
}

func TestRegister_Cycle(t *testing.T) {
	tests := []struct {
		name     string
		existing []Rule
		add      Rule
	}{
		{
			name: "self loop",
			add:  rule("self", ts("attr.canvas.width"), ts("attr.canvas.width")),
		},
		{
			name: "two rules",
			existing: []Rule{
				rule("graph", ts("attr.canvas.width"), ts("attr.canvas._graph")),
			},
			add: rule("back", ts("attr.canvas._graph"), ts("attr.canvas.width")),
		},
		{
			name: "three rules through wildcards",
			existing: []Rule{
				rule("a", ts("x.one"), ts("x.two")),
				rule("b", ts("x.*"), ts("y.three")),
			},
			add: rule("c", ts("y.**"), ts("x.one")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := event.NewBus()
			e := New(bus)
			for _, r := range tt.existing {
				if err := e.Register(r); err != nil {
					t.Fatalf("Register(%s) failed: %v", r.Name, err)
				}
			}
			before := bus.SubscriptionCount()

			err := e.Register(tt.add)
			if !errors.Is(err, ErrCycle) {
				t.Fatalf("Register(%s) error = %v, want ErrCycle", tt.add.Name, err)
			}
			if bus.SubscriptionCount() != before {
				t.Errorf("rejected rule left subscriptions behind")
			}
			if got := len(e.Rules()); got != len(tt.existing) {
				t.Errorf("len(Rules()) = %d, want %d", got, len(tt.existing))
			}
		})
	}
}

func TestEngine_Chain(t *testing.T) {
	bus := event.NewBus()
	e := New(bus)
	ctx := context.Background()
	var trace []string

	step := func(name string, next topic.Topic) func(context.Context, Trigger) error {
		return func(ctx context.Context, tr Trigger) error {
			trace = append(trace, name+"<"+string(tr.Topic))
			if next == "" {
				return nil
			}
			return event.Publish(ctx, bus, next, 0, name)
		}
	}

	e.MustRegister(
		Rule{Name: "scale", Triggers: ts("b"), Writes: ts("c"), Run: step("scale", "c")},
		Rule{Name: "graph", Triggers: ts("a"), Writes: ts("b"), Run: step("graph", "b")},
		Rule{Name: "axis", Triggers: ts("c"), Run: step("axis", "")},
	)

	if err := event.Publish(ctx, bus, "a", 0, "test"); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}
	want := []string{"graph<a", "scale<b", "axis<c"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}

	if got := e.Order(); !reflect.DeepEqual(got, []string{"graph", "scale", "axis"}) {
		t.Errorf("Order() = %v, want [graph scale axis]", got)
	}
	if got := e.Stats().Runs["scale"]; got != 1 {
		t.Errorf("scale runs = %d, want 1", got)
	}
}

func TestEngine_ReentryGuard(t *testing.T) {
	bus := event.NewBus()
	e := New(bus)
	ctx := context.Background()
	runs := 0

	// The rule publishes its own trigger without declaring it.
	e.MustRegister(Rule{
		Name:     "sneaky",
		Triggers: ts("ping"),
		Run: func(ctx context.Context, _ Trigger) error {
			runs++
			return event.Publish(ctx, bus, "ping", 0, "sneaky")
		},
	})

	if err := event.Publish(ctx, bus, "ping", 0, "test"); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if got := e.Stats().Skipped; got != 1 {
		t.Errorf("Skipped = %d, want 1", got)
	}
}

func TestEngine_RunAndUnregister(t *testing.T) {
	bus := event.NewBus()
	e := New(bus)
	ctx := context.Background()
	var got []any

	e.MustRegister(Rule{
		Name:     "payload",
		Triggers: ts("data.changed"),
		Run: func(_ context.Context, tr Trigger) error {
			got = append(got, tr.Payload)
			return nil
		},
	})

	_ = event.Publish(ctx, bus, "data.changed", 7, "test")
	if err := e.Run(ctx, "payload"); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !reflect.DeepEqual(got, []any{7, nil}) {
		t.Errorf("payloads = %v, want [7 <nil>]", got)
	}

	if err := e.Unregister("payload"); err != nil {
		t.Fatalf("Unregister() failed: %v", err)
	}
	_ = event.Publish(ctx, bus, "data.changed", 8, "test")
	if len(got) != 2 {
		t.Errorf("unregistered rule still ran: %v", got)
	}
	if err := e.Run(ctx, "payload"); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("Run(unknown) error = %v, want ErrUnknownRule", err)
	}
}

func TestEngine_RuleError(t *testing.T) {
	bus := event.NewBus()
	e := New(bus)
	boom := errors.New("boom")

	e.MustRegister(Rule{Name: "fails", Triggers: ts("x"), Run: func(context.Context, Trigger) error { return boom }})

	err := event.Publish(context.Background(), bus, "x", 0, "test")
	if !errors.Is(err, boom) {
		t.Errorf("Publish() error = %v, want it to wrap the rule error", err)
	}
}

func TestEngine_RunAll(t *testing.T) {
	bus := event.NewBus()
	e := New(bus)
	var order []string
	mk := func(name string) func(context.Context, Trigger) error {
		return func(context.Context, Trigger) error {
			order = append(order, name)
			return nil
		}
	}
	e.MustRegister(
		Rule{Name: "second", Triggers: ts("b"), Run: mk("second")},
		Rule{Name: "first", Triggers: ts("a"), Writes: ts("b"), Run: mk("first")},
	)

	if err := e.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll() failed: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"first", "second"}) {
		t.Errorf("order = %v, want [first second]", order)
	}
}

func TestEngine_RecomputesAfterTruncatedCascade(t *testing.T) {
	bus := event.NewBus(event.WithMaxDepth(8))
	e := New(bus)
	ctx := context.Background()

	input, derived := 0, 0
	e.MustRegister(Rule{Name: "derive", Triggers: ts("a"), Run: func(context.Context, Trigger) error {
		derived = input
		return nil
	}})
	// A writer that answers every change with another change.
	if _, err := bus.SubscribeFunc("a", func(ctx context.Context, _ any) error {
		input++
		return event.Publish(ctx, bus, "a", input, "host")
	}); err != nil {
		t.Fatalf("SubscribeFunc() failed: %v", err)
	}

	err := event.Publish(ctx, bus, "a", input, "test")
	if !errors.Is(err, event.ErrCascadeDepth) {
		t.Fatalf("Publish() error = %v, want ErrCascadeDepth", err)
	}
	if derived != input {
		t.Errorf("derived = %d, input = %d; want them equal after settling", derived, input)
	}
	if got := e.Stats().Recovered; got != 1 {
		t.Errorf("Recovered = %d, want 1", got)
	}

	if err := e.Run(ctx, "derive"); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got := e.Stats().Recovered; got != 1 {
		t.Errorf("Recovered after a clean run = %d, want 1", got)
	}
}
