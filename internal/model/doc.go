// Package model declares the chart's configuration stores.
//
// Each model is a validated attr.Store with a fixed schema plus typed
// accessors. Keys starting with an underscore are derived: the chart's
// recomputation rules write them and users cannot.
package model
