package scene

import "errors"

// Scene errors.
var (
	// ErrUnknownLayer is returned for a layer name or value outside the layer set.
	ErrUnknownLayer = errors.New("unknown layer")

	// ErrClosed is returned when rendering a closed scene.
	ErrClosed = errors.New("scene closed")

	// ErrNoFrame is returned when the scene has no frame source.
	ErrNoFrame = errors.New("scene has no frame source")
)
