package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader loads options from TOML files.
type TOMLLoader struct {
	fileLoader
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{fileLoader{fs: fs, path: path, decode: parseTOML}}
}

func parseTOML(source string, data []byte) (map[string]any, error) {
	var options map[string]any
	if err := toml.Unmarshal(data, &options); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	if options == nil {
		options = make(map[string]any)
	}
	return options, nil
}
