// Package data holds the chart's series collection.
//
// The only accepted shape is an ordered list of named series, each an x-sorted
// list of points:
//
//	[{"name": "cpu", "points": [{"x": 1, "y": 0.4, "z": 0}, ...]}, ...]
//
// Every mutation of a Collection validates its input, keeps points sorted by
// x and publishes a data.changed event describing what changed.
package data
