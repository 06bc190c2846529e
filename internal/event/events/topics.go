package events

import "github.com/dshills/tschart/internal/event/topic"

// Fixed topics.
const (
	// TopicAttrPrefix roots every attribute change topic.
	TopicAttrPrefix topic.Topic = "attr"

	// TopicAttrAll matches every attribute change.
	TopicAttrAll topic.Topic = "attr.**"

	// TopicAttributeRejected is published when a write fails validation.
	TopicAttributeRejected topic.Topic = "validation.rejected"

	// TopicUnknownAttribute is published when a write names an undeclared key.
	TopicUnknownAttribute topic.Topic = "validation.unknown"

	// TopicDataChanged is published after every data collection mutation.
	TopicDataChanged topic.Topic = "data.changed"

	// TopicBrushChanged is published on every brush state transition.
	TopicBrushChanged topic.Topic = "brush.changed"

	// TopicCursorMoved is published when the data cursor moves or hides.
	TopicCursorMoved topic.Topic = "cursor.moved"

	// TopicLayerRedrawn is published after the scene redraws dirty layers.
	TopicLayerRedrawn topic.Topic = "scene.redrawn"

	// TopicStructureMismatch is published when a structural check fails.
	TopicStructureMismatch topic.Topic = "structure.mismatch"
)

// Attr returns the change topic for a store key, for example
// Attr("canvas", "width") is "attr.canvas.width".
func Attr(store, key string) topic.Topic {
	return topic.Join(string(TopicAttrPrefix), store, key)
}

// AttrStore returns a pattern matching every key of a store.
func AttrStore(store string) topic.Topic {
	return topic.Join(string(TopicAttrPrefix), store, topic.WildcardSingle)
}

// Known reports whether t is one of the fixed topics or an attribute topic.
func Known(t topic.Topic) bool {
	switch t {
	case TopicAttributeRejected, TopicUnknownAttribute, TopicDataChanged,
		TopicBrushChanged, TopicCursorMoved, TopicLayerRedrawn, TopicStructureMismatch:
		return true
	}
	return len(t.Segments()) == 3 && t.HasPrefix(TopicAttrPrefix) && !t.IsWildcard()
}
