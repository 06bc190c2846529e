package loader

import (
	"errors"

	"github.com/tidwall/gjson"
)

// JSONLoader loads options from JSON files.
type JSONLoader struct {
	fileLoader
}

// NewJSONLoader creates a new JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return NewJSONLoaderWithFS(DefaultFS(), path)
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) *JSONLoader {
	return &JSONLoader{fileLoader{fs: fs, path: path, decode: parseJSON}}
}

var errJSONObject = errors.New("top-level value must be an object")

func parseJSON(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return nil, &ParseError{Path: source, Message: errJSONObject.Error(), Err: errJSONObject}
	}
	options, _ := r.Value().(map[string]any)
	if options == nil {
		options = make(map[string]any)
	}
	return options, nil
}
