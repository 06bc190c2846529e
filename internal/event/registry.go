package event

import (
	"sort"

	"github.com/dshills/tschart/internal/event/topic"
)

// Registry indexes subscriptions by pattern.
type Registry struct {
	byID      map[string]*Subscription
	byPattern map[topic.Topic][]*Subscription
	matcher   *topic.Matcher
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:      make(map[string]*Subscription),
		byPattern: make(map[topic.Topic][]*Subscription),
		matcher:   topic.NewMatcher(),
	}
}

// Add registers a subscription.
func (r *Registry) Add(sub *Subscription) {
	r.byID[sub.id] = sub
	r.byPattern[sub.pattern] = append(r.byPattern[sub.pattern], sub)
	r.matcher.Add(sub.pattern)
}

// Remove unregisters a subscription by ID. It reports whether it was present.
func (r *Registry) Remove(id string) bool {
	sub, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)

	subs := r.byPattern[sub.pattern]
	for i, s := range subs {
		if s.id == id {
			subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		delete(r.byPattern, sub.pattern)
		r.matcher.Remove(sub.pattern)
	} else {
		r.byPattern[sub.pattern] = subs
	}
	return true
}

// Match returns the subscriptions whose pattern matches eventTopic, ordered by
// priority and then by registration order.
func (r *Registry) Match(eventTopic topic.Topic) []*Subscription {
	var subs []*Subscription
	for _, p := range r.matcher.Match(eventTopic) {
		subs = append(subs, r.byPattern[p]...)
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].config.Priority != subs[j].config.Priority {
			return subs[i].config.Priority < subs[j].config.Priority
		}
		return subs[i].seq < subs[j].seq
	})
	return subs
}

// Count returns the number of registered subscriptions.
func (r *Registry) Count() int {
	return len(r.byID)
}
