package format

import "errors"

// Errors returned by Parse.
var (
	// ErrUnknownFormat is returned for an unrecognized spec prefix.
	ErrUnknownFormat = errors.New("unknown tick format")

	// ErrInvalidFormat is returned when a spec's argument does not parse.
	ErrInvalidFormat = errors.New("invalid tick format")

	// ErrLua is returned when a Lua body fails to compile.
	ErrLua = errors.New("lua tick format")

	// ErrClosed is returned by a formatter used after Close.
	ErrClosed = errors.New("formatter closed")
)
