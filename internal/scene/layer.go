package scene

import "fmt"

// Layer is one independently redrawn part of the document. Layers are
// written in declaration order, so later layers paint over earlier ones.
type Layer uint8

const (
	// LayerBase is the background.
	LayerBase Layer = iota

	// LayerChart holds the plot frame and clip path.
	LayerChart

	// LayerAxes holds both axes with their labels.
	LayerAxes

	// LayerMarks holds the series geometry.
	LayerMarks

	// LayerLegend holds the series legend.
	LayerLegend

	// LayerAnnotations holds the title and caption.
	LayerAnnotations

	// LayerCursor holds the data cursor.
	LayerCursor

	// LayerBrush holds the brush widget.
	LayerBrush

	layerCount
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerBase:
		return "base"
	case LayerChart:
		return "chart"
	case LayerAxes:
		return "axes"
	case LayerMarks:
		return "marks"
	case LayerLegend:
		return "legend"
	case LayerAnnotations:
		return "annotations"
	case LayerCursor:
		return "cursor"
	case LayerBrush:
		return "brush"
	default:
		return "unknown"
	}
}

// Valid reports whether l names a layer.
func (l Layer) Valid() bool {
	return l < layerCount
}

// Layers returns every layer in paint order.
func Layers() []Layer {
	out := make([]Layer, 0, layerCount)
	for l := LayerBase; l < layerCount; l++ {
		out = append(out, l)
	}
	return out
}

// ParseLayer returns the layer with the given name.
func ParseLayer(name string) (Layer, error) {
	for _, l := range Layers() {
		if l.String() == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}
