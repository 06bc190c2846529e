package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/tschart/internal/event/dispatch"
	"github.com/dshills/tschart/internal/event/topic"
	"github.com/dshills/tschart/internal/logging"
)

// Bus is a synchronous, depth-first event bus. A Bus is not safe for
// concurrent use; a chart and everything attached to it run on one goroutine.
type Bus struct {
	id       string
	registry *Registry
	executor *dispatch.Executor
	logger   *logging.Logger
	maxDepth int

	depth    int
	holds    int
	seq      uint64
	closed   bool
	stats    Stats
	settled  []settledHook
	hookSeq  int
	settling bool
	resettle bool
}

type settledHook struct {
	id int
	fn func()
}

// NewBus creates a bus.
func NewBus(opts ...BusOption) *Bus {
	cfg := defaultBusConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}

	b := &Bus{
		id:       cfg.id,
		registry: NewRegistry(),
		logger:   cfg.logger.WithComponent("event.bus"),
		maxDepth: cfg.maxDepth,
	}
	b.executor = dispatch.NewExecutor(dispatch.WithPanicHandler(func(ev any, v any, _ []byte) {
		b.logger.Error("handler panic on %s: %v", extractTopic(ev), v)
	}))
	return b
}

// ID returns the bus identifier.
func (b *Bus) ID() string {
	return b.id
}

// Subscribe registers handler for every event whose topic matches pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if b.closed {
		return nil, ErrBusClosed
	}
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}

	cfg := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&cfg)
	}

	b.seq++
	sub := &Subscription{
		id:      fmt.Sprintf("%s-%d", b.id, b.seq),
		pattern: pattern,
		handler: handler,
		config:  cfg,
		seq:     b.seq,
	}
	b.registry.Add(sub)
	return sub, nil
}

// SubscribeFunc registers a function handler.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn, opts...)
}

// SubscribeTyped registers a handler for events carrying payload type T.
func SubscribeTyped[T any](b *Bus, pattern topic.Topic, fn TypedHandlerFunc[T], opts ...SubscriptionOption) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, AsHandler(fn), opts...)
}

// Unsubscribe removes a subscription. Pending deliveries in an ongoing
// publish are skipped.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()
	if !b.registry.Remove(sub.id) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Publish builds a typed event and publishes it synchronously.
func Publish[T any](ctx context.Context, b *Bus, t topic.Topic, payload T, source string) error {
	return b.PublishSync(ctx, NewEvent(t, payload, source))
}

// PublishSync delivers event to every matching subscriber before returning.
// Handler errors and panics are logged and returned joined; they never stop
// delivery to the remaining subscribers.
func (b *Bus) PublishSync(ctx context.Context, event any) error {
	if b.closed {
		return ErrBusClosed
	}

	t := extractTopic(event)
	if !t.IsValid() || t.IsWildcard() {
		return ErrInvalidEvent
	}

	if b.depth >= b.maxDepth {
		b.stats.Dropped++
		b.logger.Warn("dropping %s: cascade depth %d reached", t, b.maxDepth)
		return fmt.Errorf("%w: %s", ErrCascadeDepth, t)
	}

	b.depth++
	if b.depth > b.stats.MaxDepth {
		b.stats.MaxDepth = b.depth
	}
	b.stats.Published++

	var errs []error
	for _, sub := range b.registry.Match(t) {
		if !sub.shouldDeliver(event) {
			continue
		}
		if sub.config.Once {
			sub.Cancel()
			b.registry.Remove(sub.id)
		}

		res := b.executor.Execute(ctx, event, sub.handler)
		switch {
		case res.Panicked:
			b.stats.Panics++
			errs = append(errs, &PanicError{SubscriptionID: sub.id, Topic: t, Value: res.PanicValue})
		case res.Skipped:
			errs = append(errs, res.Error)
		case res.Error != nil:
			b.stats.HandlerErrors++
			if !errors.Is(res.Error, ErrCascadeDepth) {
				b.logger.Warn("handler %s failed on %s: %v", sub.label(), t, res.Error)
			}
			errs = append(errs, &HandlerError{SubscriptionID: sub.id, Topic: t, Err: res.Error})
		default:
			b.stats.Delivered++
		}
	}

	b.depth--
	if b.depth == 0 && b.holds == 0 {
		b.settle()
	}
	return errors.Join(errs...)
}

// Depth returns the nesting depth of the publish currently being delivered,
// or zero when the bus is idle.
func (b *Bus) Depth() int {
	return b.depth
}

// OnSettled registers fn to run each time the outermost publish returns.
// The returned function removes the hook.
func (b *Bus) OnSettled(fn func()) (remove func()) {
	b.hookSeq++
	id := b.hookSeq
	b.settled = append(b.settled, settledHook{id: id, fn: fn})
	return func() {
		for i, h := range b.settled {
			if h.id == id {
				b.settled = append(b.settled[:i], b.settled[i+1:]...)
				return
			}
		}
	}
}

// Settle runs the settled hooks immediately when the bus is idle. Writers
// that changed state without publishing use it to flush observers.
func (b *Bus) Settle() {
	if b.depth == 0 && b.holds == 0 {
		b.settle()
	}
}

// Hold defers the settled hooks until the returned release function has been
// called, so a batch of top-level publishes settles once. Holds nest.
func (b *Bus) Hold() (release func()) {
	b.holds++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		b.holds--
		if b.holds == 0 && b.depth == 0 {
			b.settle()
		}
	}
}

// settle runs the settled hooks. Publishes made by a hook settle again
// afterwards instead of recursing.
func (b *Bus) settle() {
	if b.settling {
		b.resettle = true
		return
	}
	b.settling = true
	defer func() { b.settling = false }()

	for round := 0; round < b.maxDepth; round++ {
		b.resettle = false
		hooks := append([]settledHook(nil), b.settled...)
		for _, h := range hooks {
			h.fn()
		}
		if !b.resettle {
			return
		}
	}
	b.logger.Warn("settled hooks kept publishing after %d rounds", b.maxDepth)
}

// Stats returns a snapshot of the activity counters.
func (b *Bus) Stats() Stats {
	return b.stats
}

// SubscriptionCount returns the number of live subscriptions.
func (b *Bus) SubscriptionCount() int {
	return b.registry.Count()
}

// Close rejects further publishes and subscriptions.
func (b *Bus) Close() {
	b.closed = true
	b.settled = nil
}

func extractTopic(event any) topic.Topic {
	if tp, ok := event.(TopicProvider); ok {
		return tp.EventTopic()
	}
	return ""
}
