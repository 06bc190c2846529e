package topic

import "strings"

// Topic is a hierarchical event name using dot notation.
type Topic string

// Wildcard and separator constants.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments.
	WildcardMulti = "**"

	// Separator separates topic segments.
	Separator = "."
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Parent returns the topic without its last segment, or "" at the root.
//
// Example: "attr.canvas.width" -> "attr.canvas"
func (t Topic) Parent() Topic {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return ""
	}
	return Topic(s[:idx])
}

// Child returns a topic with segment appended.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return Topic(string(t) + Separator + segment)
}

// Base returns the last segment of the topic.
//
// Example: "attr.canvas.width" -> "width"
func (t Topic) Base() string {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// HasPrefix reports whether the topic starts with prefix on a segment boundary.
func (t Topic) HasPrefix(prefix Topic) bool {
	if prefix == "" {
		return true
	}
	s, p := string(t), string(prefix)
	if !strings.HasPrefix(s, p) {
		return false
	}
	return len(s) == len(p) || s[len(p)] == '.'
}

// IsWildcard reports whether the topic contains a wildcard segment.
func (t Topic) IsWildcard() bool {
	for _, seg := range t.Segments() {
		if seg == WildcardSingle || seg == WildcardMulti {
			return true
		}
	}
	return false
}

// IsValid reports whether the topic is non-empty and has no empty segments.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches reports whether this concrete topic matches pattern.
func (t Topic) Matches(pattern Topic) bool {
	return matchSegments(t.Segments(), pattern.Segments())
}

func matchSegments(topic, pattern []string) bool {
	ti, pi := 0, 0

	for pi < len(pattern) {
		if pattern[pi] == WildcardMulti {
			for ; ti <= len(topic); ti++ {
				if matchSegments(topic[ti:], pattern[pi+1:]) {
					return true
				}
			}
			return false
		}

		if ti >= len(topic) {
			return false
		}
		if pattern[pi] != WildcardSingle && pattern[pi] != topic[ti] {
			return false
		}
		ti++
		pi++
	}

	return ti == len(topic)
}

// Overlaps reports whether some concrete topic could match both patterns.
// Two concrete topics overlap only when they are equal.
func Overlaps(a, b Topic) bool {
	return overlapSegments(a.Segments(), b.Segments())
}

func overlapSegments(a, b []string) bool {
	switch {
	case len(a) == 0 && len(b) == 0:
		return true
	case len(a) > 0 && a[0] == WildcardMulti:
		if overlapSegments(a[1:], b) {
			return true
		}
		return len(b) > 0 && overlapSegments(a, b[1:])
	case len(b) > 0 && b[0] == WildcardMulti:
		return overlapSegments(b, a)
	case len(a) == 0 || len(b) == 0:
		return false
	case a[0] == WildcardSingle || b[0] == WildcardSingle || a[0] == b[0]:
		return overlapSegments(a[1:], b[1:])
	default:
		return false
	}
}

// Join joins segments into a topic.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, Separator))
}
