// Package topic provides hierarchical topic names and wildcard pattern
// matching for the chart event bus.
//
// Topics use dot-notation:
//
//	attr.canvas.width
//	attr.axes.xDomain
//	data.changed
//	scene.layer.redrawn
//
// Two wildcards are supported in subscription patterns:
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// For example "attr.canvas.*" matches every canvas attribute change and
// "attr.**" matches every attribute change of every store.
package topic
