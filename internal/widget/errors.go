package widget

import "errors"

// Widget errors.
var (
	// ErrLegendMismatch is returned when the legend label count differs from
	// the series count. The legend is not drawn.
	ErrLegendMismatch = errors.New("legend labels do not match series")

	// ErrNotDragging is returned by brush moves outside a drag.
	ErrNotDragging = errors.New("brush is not dragging")

	// ErrNoScale is returned when a widget needs a scale that has not been
	// built yet.
	ErrNoScale = errors.New("scale not built")

	// ErrCursorDisabled is returned when moving the cursor while the
	// dataCursor annotation is off.
	ErrCursorDisabled = errors.New("data cursor disabled")
)
