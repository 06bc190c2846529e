package loader

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads options from YAML files.
type YAMLLoader struct {
	fileLoader
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fileLoader{fs: fs, path: path, decode: parseYAML}}
}

func parseYAML(source string, data []byte) (map[string]any, error) {
	var options map[string]any
	if err := yaml.Unmarshal(data, &options); err != nil {
		return nil, yamlParseError(source, err)
	}
	if options == nil {
		options = make(map[string]any)
	}
	return options, nil
}

// yamlParseError locates err in source. yaml.v3 prefixes syntax errors with
// "yaml: line N: " but leaves the line out for errors on the first line.
func yamlParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Line: 1, Err: err}
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		msg = te.Errors[0]
	}
	var line int
	if _, scanErr := fmt.Sscanf(msg, "line %d:", &line); scanErr == nil {
		pe.Line = line
		_, msg, _ = strings.Cut(msg, ": ")
	}
	pe.Message = msg
	return pe
}
