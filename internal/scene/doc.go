// Package scene renders a chart as an SVG document built from independently
// cached layers.
//
// A Scene owns one fragment per Layer. Invalidate marks layers dirty and
// Flush repaints only those, then reports the redraw on the chart's event bus
// with a LayerRedrawn event. Render writes the document from the cached
// fragments, painting everything on the first call.
//
// When attached to a bus the scene flushes itself each time the outermost
// publish returns, so every invalidation caused by one attribute write
// produces exactly one redraw:
//
//	sc := scene.New(frameFn, scene.WithBus(bus), scene.WithID("sales"))
//	defer sc.Close()
//	if err := sc.Render(ctx, w); err != nil {
//	    return err
//	}
//
// Painters read everything they draw from a Frame, a snapshot of the chart
// state built on demand by the owner of the scene.
package scene
