package topic

import (
	"sort"
	"testing"
)

func TestTopic_Matches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"attr.canvas.width", "attr.canvas.width", true},
		{"attr.canvas.width", "attr.canvas.*", true},
		{"attr.canvas.width", "attr.*", false},
		{"attr.canvas.width", "attr.**", true},
		{"attr.canvas.width", "**", true},
		{"attr.canvas.width", "*.canvas.width", true},
		{"attr.canvas.width", "attr.axes.*", false},
		{"data.changed", "data.changed.**", true},
		{"data.changed", "data", false},
	}

	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestTopic_Parts(t *testing.T) {
	tp := Join("attr", "axes", "xDomain")
	if tp != "attr.axes.xDomain" {
		t.Fatalf("Join() = %q", tp)
	}
	if tp.Base() != "xDomain" {
		t.Errorf("Base() = %q", tp.Base())
	}
	if tp.Parent() != "attr.axes" {
		t.Errorf("Parent() = %q", tp.Parent())
	}
	if tp.Parent().Child("yDomain") != "attr.axes.yDomain" {
		t.Errorf("Child() = %q", tp.Parent().Child("yDomain"))
	}
	if !tp.HasPrefix("attr.axes") || tp.HasPrefix("attr.ax") {
		t.Error("HasPrefix() should respect segment boundaries")
	}
}

func TestTopic_IsValid(t *testing.T) {
	valid := []Topic{"a", "a.b", "attr.*.width"}
	invalid := []Topic{"", ".a", "a.", "a..b"}

	for _, tp := range valid {
		if !tp.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", tp)
		}
	}
	for _, tp := range invalid {
		if tp.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", tp)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		a, b Topic
		want bool
	}{
		{"attr.canvas.width", "attr.canvas.width", true},
		{"attr.canvas.width", "attr.canvas.height", false},
		{"attr.canvas.*", "attr.canvas.height", true},
		{"attr.**", "attr.axes.xRange", true},
		{"attr.axes.*", "attr.canvas.*", false},
		{"**", "data.changed", true},
		{"attr.*.xScale", "attr.axes.*", true},
	}

	for _, tt := range tests {
		if got := Overlaps(tt.a, tt.b); got != tt.want {
			t.Errorf("Overlaps(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatcher(t *testing.T) {
	m := NewMatcher()
	m.Add("attr.canvas.width")
	m.Add("attr.canvas.*")
	m.Add("attr.**")
	m.Add("data.changed")
	m.Add("attr.canvas.*")

	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", m.Len())
	}

	got := m.Match("attr.canvas.width")
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []Topic{"attr.**", "attr.canvas.*", "attr.canvas.width"}
	if len(got) != len(want) {
		t.Fatalf("Match() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Match()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	m.Remove("attr.**")
	if m.Has("attr.**") {
		t.Error("Has() after Remove() = true")
	}
	if len(m.Match("attr.axes.xDomain")) != 0 {
		t.Error("expected no match after removing the catch-all pattern")
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}
