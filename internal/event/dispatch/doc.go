// Package dispatch runs event handlers on behalf of the bus, isolating the
// publisher from handler errors and panics.
package dispatch
