package loader

import (
	"reflect"
	"strings"
	"testing"
)

// getByPath reads a dot-separated path from a nested map.
func getByPath(data map[string]any, path string) (any, bool) {
	current := any(data)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func fakeEnv(vars ...string) func() []string {
	return func() []string { return vars }
}

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("TSCHART_WIDTH", "640")
	t.Setenv("TSCHART_TITLE", "Sales")
	t.Setenv("TSCHART_LOG_LEVEL", "debug")

	options, err := NewEnvLoader(DefaultEnvPrefix).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(options, "canvas.width"); !ok || val != int64(640) {
		t.Errorf("canvas.width = %v (%T), want 640", val, val)
	}
	if val, ok := getByPath(options, "annotations.title"); !ok || val != "Sales" {
		t.Errorf("annotations.title = %v, want Sales", val)
	}
	if _, ok := options["log"]; ok {
		t.Error("log level leaked into options")
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = fakeEnv(
		"TSCHART_AXES_X_LABEL=Time",
		"TSCHART_LISTENERS_CHART=off",
		"TSCHART_LONELY=1",
		"OTHER_WIDTH=10",
	)

	options, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(options, "axes.xLabel"); !ok || val != "Time" {
		t.Errorf("axes.xLabel = %v, want Time", val)
	}
	if val, ok := getByPath(options, "listeners.chart"); !ok || val != false {
		t.Errorf("listeners.chart = %v, want false", val)
	}
	if len(options) != 2 {
		t.Errorf("options = %v, want only axes and listeners", options)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)

	tests := []struct {
		env  string
		want string
	}{
		{"TSCHART_CANVAS_WIDTH", "canvas.width"},
		{"TSCHART_AXES_X_TICK_FORMAT", "axes.xTickFormat"},
		{"TSCHART_ANIMATIONS_INIT_DURATION", "animations.initDuration"},
		{"TSCHART_WIDTH", ""},
	}

	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestEnvLoader_parseValue(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)

	tests := []struct {
		input    string
		expected any
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"false", false},
		{"no", false},
		{"off", false},

		{"1", int64(1)},
		{"0", int64(0)},
		{"-10", int64(-10)},

		{"3.14", 3.14},
		{"1e3", 1000.0},

		{"[10,20,30,40]", []any{10.0, 20.0, 30.0, 40.0}},
		{`["min","max"]`, []any{"min", "max"}},
		{`{"key":"value"}`, map[string]any{"key": "value"}},

		{"[unterminated", "[unterminated"},
		{"stacked-area", "stacked-area"},
		{"", ""},
	}

	for _, tt := range tests {
		got := l.parseValue(tt.input)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)",
				tt.input, got, got, tt.expected, tt.expected)
		}
	}
}

func TestEnvLoader_AddRemoveMapping(t *testing.T) {
	l := NewEnvLoaderWithMapping(DefaultEnvPrefix, nil)
	l.environ = fakeEnv("TSCHART_W=300")

	l.AddMapping("TSCHART_W", "canvas.width")
	options, _ := l.Load()
	if val, ok := getByPath(options, "canvas.width"); !ok || val != int64(300) {
		t.Errorf("mapped canvas.width = %v, want 300", val)
	}

	l.RemoveMapping("TSCHART_W")
	options, _ = l.Load()
	if _, ok := getByPath(options, "canvas.width"); ok {
		t.Error("canvas.width still set after RemoveMapping")
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TSCHART_TEST_VALUE", "set")

	if got := GetEnvOrDefault("TSCHART_TEST_VALUE", "default"); got != "set" {
		t.Errorf("GetEnvOrDefault = %q, want set", got)
	}
	if got := GetEnvOrDefault("TSCHART_TEST_MISSING", "default"); got != "default" {
		t.Errorf("GetEnvOrDefault = %q, want default", got)
	}
}

func TestExpandEnvInString(t *testing.T) {
	t.Setenv("TSCHART_TEST_DIR", "/opts")

	if got := ExpandEnvInString("${TSCHART_TEST_DIR}/base.toml"); got != "/opts/base.toml" {
		t.Errorf("ExpandEnvInString = %q", got)
	}
}
