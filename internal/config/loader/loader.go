// Package loader reads chart options from TOML, YAML and JSON files and from
// environment variables.
//
// Every loader returns the same shape: a map of store sections ("canvas",
// "axes", ...) to attribute maps, ready for chart.OptionsFromMap. Files may
// pull in other option files with an "@include" key; included values are
// overridden by the including file.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for a file extension no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported options format")

// ErrNotFound is returned by Load when the options file does not exist.
var ErrNotFound = errors.New("options file not found")

// DefaultIncludeDepth bounds nested @include chains.
const DefaultIncludeDepth = 8

// Loader is the interface for option loaders.
type Loader interface {
	// Load reads options from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileLoader is the interface for loaders that read from files.
type FileLoader interface {
	Loader
	// LoadFrom reads options from a specific path.
	LoadFrom(path string) (map[string]any, error)
}

// ReaderLoader is the interface for loaders that read from io.Reader.
type ReaderLoader interface {
	// LoadFromReader reads options from a reader.
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// decodeFunc turns raw file contents into an options map. source names the
// input in errors.
type decodeFunc func(source string, data []byte) (map[string]any, error)

// fileLoader is the format-independent part of every file loader.
type fileLoader struct {
	fs     FileSystem
	path   string
	decode decodeFunc
}

// Load reads options from the configured path.
func (l *fileLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads options from a specific path.
func (l *fileLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading options file %s: %w", path, err)
	}
	return l.decode(path, data)
}

// LoadFromReader reads options from an io.Reader.
func (l *fileLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}
	return l.decode("<reader>", data)
}

// ForPath returns the loader matching path's extension.
func ForPath(fsys FileSystem, path string) (FileLoader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	case ".json":
		return NewJSONLoaderWithFS(fsys, path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the options file at path from the OS file system, following
// includes.
func Load(path string) (map[string]any, error) {
	return LoadFS(DefaultFS(), path)
}

// LoadFS reads the options file at path from fsys, following includes. A
// missing top-level file is ErrNotFound.
func LoadFS(fsys FileSystem, path string) (map[string]any, error) {
	if _, err := fsys.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	options, err := LoadWithIncludes(fsys, path, DefaultIncludeDepth)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = make(map[string]any)
	}
	return options, nil
}

// LoadWithIncludes loads an options file and processes its @include key,
// which holds a path or a list of paths relative to the file. Includes may
// use any supported format. The maxDepth parameter limits nested includes to
// prevent infinite loops.
func LoadWithIncludes(fsys FileSystem, path string, maxDepth int) (map[string]any, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("include depth exceeded for %s", path)
	}

	l, err := ForPath(fsys, path)
	if err != nil {
		return nil, err
	}
	options, err := l.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	if options == nil {
		return nil, nil
	}

	includes, hasIncludes := options["@include"]
	if !hasIncludes {
		return options, nil
	}
	delete(options, "@include")

	var includeList []string
	switch v := includes.(type) {
	case string:
		includeList = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("@include must be string or array of strings")
			}
			includeList = append(includeList, s)
		}
	case []string:
		includeList = v
	default:
		return nil, fmt.Errorf("@include must be string or array of strings, got %T", includes)
	}

	baseDir := filepath.Dir(path)
	for _, inc := range includeList {
		incPath := ExpandEnvInString(inc)
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(baseDir, incPath)
		}

		incOptions, err := LoadWithIncludes(fsys, incPath, maxDepth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", incPath, err)
		}

		// Main file values override include values.
		options = DeepMerge(incOptions, options)
	}

	return options, nil
}

// ParseError represents an error while parsing an options file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	if src == nil {
		return dst
	}

	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = srcVal
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}

	return dst
}
