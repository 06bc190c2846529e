package chart

import (
	"context"

	"github.com/dshills/tschart/internal/event"
	"github.com/dshills/tschart/internal/event/events"
	"github.com/dshills/tschart/internal/event/topic"
)

// subscribe attaches the chart observers: metrics and redraw hooks.
func (c *Chart) subscribe() error {
	sub, err := event.SubscribeTyped(c.bus, events.TopicLayerRedrawn,
		func(_ context.Context, e event.Event[events.LayerRedrawn]) error {
			c.metrics.RecordFlush(len(e.Payload.Layers), e.Payload.Full)
			for _, fn := range c.cfg.hooks {
				fn(e.Payload)
			}
			return nil
		},
		event.WithPriority(event.PriorityLow), event.WithName("chart redraw"))
	if err != nil {
		return err
	}
	c.subs = append(c.subs, sub)

	counters := []struct {
		pattern topic.Topic
		record  func()
	}{
		{events.TopicAttributeRejected, c.metrics.RecordRejected},
		{events.TopicUnknownAttribute, c.metrics.RecordUnknown},
		{events.TopicStructureMismatch, c.metrics.RecordMismatch},
	}
	for _, ctr := range counters {
		record := ctr.record
		sub, err := c.bus.SubscribeFunc(ctr.pattern, func(context.Context, any) error {
			record()
			return nil
		}, event.WithPriority(event.PriorityLow), event.WithName("chart metrics"))
		if err != nil {
			return err
		}
		c.subs = append(c.subs, sub)
	}
	return nil
}

// OnRedraw calls fn after every scene flush. The returned function removes
// the hook.
func (c *Chart) OnRedraw(fn func(events.LayerRedrawn)) (remove func(), err error) {
	sub, err := event.SubscribeTyped(c.bus, events.TopicLayerRedrawn,
		func(_ context.Context, e event.Event[events.LayerRedrawn]) error {
			fn(e.Payload)
			return nil
		},
		event.WithPriority(event.PriorityLow), event.WithName("redraw hook"))
	if err != nil {
		return nil, err
	}
	return func() { _ = c.bus.Unsubscribe(sub) }, nil
}
