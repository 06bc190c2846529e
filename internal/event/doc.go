// Package event implements the synchronous publish/subscribe bus that links a
// chart's attribute stores, recomputation rules, scene graph and widgets.
//
// Each chart owns exactly one Bus. Delivery is synchronous and depth-first:
// a handler that publishes while handling an event has its nested event fully
// delivered before the outer publish moves on to the next subscriber.
// Subscribers of one topic run in priority order and, within a priority, in
// registration order.
//
// A publish nested deeper than the configured maximum depth is dropped with
// ErrCascadeDepth, so two handlers that trigger each other forever terminate.
// When the outermost publish returns, the hooks registered with OnSettled run
// once, which lets the scene graph coalesce every invalidation produced by one
// write into a single redraw.
//
// Typed payloads are delivered as Event[T] values:
//
//	sub, err := event.SubscribeTyped(bus, "attr.canvas.*",
//	    func(ctx context.Context, ev event.Event[events.AttributeChanged]) error {
//	        // ...
//	        return nil
//	    })
//
//	err = event.Publish(ctx, bus, events.TopicDataChanged, payload, "data")
package event
