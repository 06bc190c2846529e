// Package widget implements the interactive chart controllers: the brush
// that zooms an axis, the legend, and the data cursor.
//
// Controllers receive input as method calls in pixel coordinates and turn it
// into attribute writes and bus events. They never draw; the scene reads
// their state when it repaints.
package widget
