package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/chart.yaml", `
canvas:
  height: 320
annotations:
  legend: [high, low]
  editable: true
`)

	options, err := NewYAMLLoaderWithFS(memfs, "/chart.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := getByPath(options, "canvas.height"); v != 320 {
		t.Errorf("canvas.height = %v (%T), want 320", v, v)
	}
	if v, _ := getByPath(options, "annotations.editable"); v != true {
		t.Errorf("annotations.editable = %v, want true", v)
	}
	legend, _ := getByPath(options, "annotations.legend")
	if l, ok := legend.([]any); !ok || len(l) != 2 || l[0] != "high" {
		t.Errorf("annotations.legend = %v, want [high low]", legend)
	}
}

func TestYAMLLoader_LoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
		message string
	}{
		{"first line", "canvas: width: 10\n", 1, "mapping values are not allowed"},
		{"later line", "canvas:\n  width: 10\ntitle: a: b\n", 3, "mapping values are not allowed"},
		{"not a mapping", "- high\n- low\n", 1, "cannot unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memfs := NewMemFS()
			memfs.AddFile("/bad.yaml", tt.content)

			_, err := NewYAMLLoaderWithFS(memfs, "/bad.yaml").Load()
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if parseErr.Path != "/bad.yaml" {
				t.Errorf("Path = %q, want /bad.yaml", parseErr.Path)
			}
			if parseErr.Line != tt.line {
				t.Errorf("Line = %d, want %d (%v)", parseErr.Line, tt.line, parseErr)
			}
			if !strings.Contains(parseErr.Message, tt.message) || strings.HasPrefix(parseErr.Message, "yaml:") {
				t.Errorf("Message = %q, want it to contain %q without the yaml prefix", parseErr.Message, tt.message)
			}
		})
	}
}

func TestYAMLLoader_LoadFromReader_Empty(t *testing.T) {
	options, err := NewYAMLLoader("").LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if options == nil || len(options) != 0 {
		t.Errorf("options = %v, want empty map", options)
	}
}
