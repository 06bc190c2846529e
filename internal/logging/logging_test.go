package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_LineFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf, Prefix: "test", Clock: fixedClock})

	logger.WithComponent("attr.canvas").WithField("key", "margin").Warn("rejected %d value", 1)

	want := "2024-03-01T12:00:00.000 [WARN] test: rejected 1 value {component=attr.canvas, key=margin}\n"
	if got := buf.String(); got != want {
		t.Errorf("log line = %q, expected %q", got, want)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf, Clock: fixedClock})

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info to be filtered, got %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Level: LevelInfo, Output: &buf, Clock: fixedClock})
	child := root.WithComponent("scene")

	root.SetLevel(LevelError)
	child.Warn("filtered")
	if buf.Len() != 0 {
		t.Errorf("expected derived logger to follow parent level, got %q", buf.String())
	}

	root.Disable()
	child.Error("disabled")
	if buf.Len() != 0 {
		t.Errorf("expected derived logger to be disabled, got %q", buf.String())
	}

	root.Enable()
	child.Error("enabled")
	if !strings.Contains(buf.String(), "enabled") {
		t.Errorf("expected output after Enable, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("nothing %s", "here")
	logger.WithField("a", 1).Warn("still nothing")
}
