// Package scale maps data values to pixel positions and generates axis ticks.
//
// Continuous scales (linear, pow, sqrt, log and time) are built on the
// quantitative scales of github.com/aclements/go-moremath/scale, which map a
// domain onto [0, 1]; this package stretches that unit interval over a pixel
// range. Discrete scales (quantize, quantile, threshold and ordinal) bucket
// the domain and place each bucket at the center of its band.
//
// Scales are immutable: rebuilding a chart's scale after a domain or range
// change produces a new value, which is what lets the recomputation rules
// detect the change and regenerate the axis.
package scale
