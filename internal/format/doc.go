// Package format builds tick label formatters from short textual specs.
//
// A spec is one of:
//
//	""                  use the scale's own formatting
//	number[:<digits>]   locale grouped decimal, e.g. "number:2" -> 1,234.50
//	percent[:<digits>]  v*100 with a percent sign
//	si[:<digits>]       SI prefixed, e.g. 12000 -> 12k
//	time:<layout>       Unix seconds in UTC using a Go time layout
//	lua:<body>          a Lua function body over the tick value v
//
// Lua formatters run in a state with only the base, string, math and table
// libraries opened and each call bounded by a timeout.
package format
