package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestForPath(t *testing.T) {
	memfs := NewMemFS()

	tests := []struct {
		path string
		want any
	}{
		{"/chart.toml", &TOMLLoader{}},
		{"/chart.yaml", &YAMLLoader{}},
		{"/chart.YML", &YAMLLoader{}},
		{"/chart.json", &JSONLoader{}},
	}
	for _, tt := range tests {
		l, err := ForPath(memfs, tt.path)
		if err != nil {
			t.Errorf("ForPath(%q): %v", tt.path, err)
			continue
		}
		if reflect.TypeOf(l) != reflect.TypeOf(tt.want) {
			t.Errorf("ForPath(%q) = %T, want %T", tt.path, l, tt.want)
		}
	}

	if _, err := ForPath(memfs, "/chart.ini"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ForPath(.ini) err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadFS_NotFound(t *testing.T) {
	_, err := LoadFS(NewMemFS(), "/missing.toml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadFS_EmptyFile(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.toml", "")

	options, err := LoadFS(memfs, "/empty.toml")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if options == nil || len(options) != 0 {
		t.Errorf("options = %v, want empty map", options)
	}
}

func TestLoadWithIncludes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/opts/chart.toml", `
"@include" = ["base.yaml"]

[canvas]
width = 640
`)
	memfs.AddFile("/opts/base.yaml", `
canvas:
  width: 960
  height: 300
marks:
  type: area
`)

	options, err := LoadFS(memfs, "/opts/chart.toml")
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}
	if _, ok := options["@include"]; ok {
		t.Error("@include key kept")
	}

	canvas, ok := options["canvas"].(map[string]any)
	if !ok {
		t.Fatal("expected canvas to be a map")
	}
	if canvas["width"] != int64(640) {
		t.Errorf("width = %v (%T), want 640 from the main file", canvas["width"], canvas["width"])
	}
	if canvas["height"] != 300 {
		t.Errorf("height = %v (%T), want 300 from the include", canvas["height"], canvas["height"])
	}
	if v, _ := getByPath(options, "marks.type"); v != "area" {
		t.Errorf("marks.type = %v, want area", v)
	}
}

func TestLoadWithIncludes_EnvPath(t *testing.T) {
	t.Setenv("TSCHART_TEST_BASE", "/shared")
	memfs := NewMemFS()
	memfs.AddFile("/chart.json", `{"@include": "${TSCHART_TEST_BASE}/base.toml"}`)
	memfs.AddFile("/shared/base.toml", "[annotations]\ntitle = \"Shared\"\n")

	options, err := LoadFS(memfs, "/chart.json")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if v, _ := getByPath(options, "annotations.title"); v != "Shared" {
		t.Errorf("annotations.title = %v, want Shared", v)
	}
}

func TestLoadWithIncludes_DepthExceeded(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = ["b.toml"]`)
	memfs.AddFile("/b.toml", `"@include" = ["c.toml"]`)
	memfs.AddFile("/c.toml", `"@include" = ["d.toml"]`)
	memfs.AddFile("/d.toml", `value = 1`)

	_, err := LoadWithIncludes(memfs, "/a.toml", 2)
	if err == nil {
		t.Fatal("expected depth exceeded error")
	}
	if !strings.Contains(err.Error(), "depth exceeded") {
		t.Errorf("expected 'depth exceeded' error, got: %v", err)
	}

	options, err := LoadWithIncludes(memfs, "/a.toml", 5)
	if err != nil {
		t.Fatalf("expected success with depth 5, got: %v", err)
	}
	if options["value"] != int64(1) {
		t.Errorf("value = %v, want 1", options["value"])
	}
}

func TestLoadWithIncludes_BadInclude(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = 3`)

	if _, err := LoadWithIncludes(memfs, "/a.toml", 3); err == nil {
		t.Fatal("expected error for numeric @include")
	}
}

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name     string
		dst      map[string]any
		src      map[string]any
		expected map[string]any
	}{
		{
			name:     "nil dst",
			dst:      nil,
			src:      map[string]any{"a": 1},
			expected: map[string]any{"a": 1},
		},
		{
			name:     "nil src",
			dst:      map[string]any{"a": 1},
			src:      nil,
			expected: map[string]any{"a": 1},
		},
		{
			name:     "src overrides dst",
			dst:      map[string]any{"a": 1},
			src:      map[string]any{"a": 2},
			expected: map[string]any{"a": 2},
		},
		{
			name:     "nested merge",
			dst:      map[string]any{"canvas": map[string]any{"width": 960}},
			src:      map[string]any{"canvas": map[string]any{"height": 300}},
			expected: map[string]any{"canvas": map[string]any{"width": 960, "height": 300}},
		},
		{
			name:     "arrays are replaced",
			dst:      map[string]any{"canvas": map[string]any{"margin": []any{1, 2, 3, 4}}},
			src:      map[string]any{"canvas": map[string]any{"margin": []any{5, 6, 7, 8}}},
			expected: map[string]any{"canvas": map[string]any{"margin": []any{5, 6, 7, 8}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeepMerge(tt.dst, tt.src)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("DeepMerge() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a.toml", Line: 2, Column: 5, Message: "bad"}, "parse error in a.toml at line 2, column 5: bad"},
		{&ParseError{Path: "a.yaml", Line: 3, Message: "bad"}, "parse error in a.yaml at line 3: bad"},
		{&ParseError{Path: "a.json", Message: "bad"}, "parse error in a.json: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
