// Package chart is the time-series chart widget.
//
// New builds an isolated chart: its own event bus, one validated attribute
// store per configuration model, a data collection, the recomputation rules
// linking them, the layered scene and the interactive widgets. Nothing is
// shared between charts.
//
//	c, err := chart.New("sales", chart.Options{
//	    Axes:  map[string]any{"yDomain": []any{0, "max"}},
//	    Marks: map[string]any{"type": "area"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	if err := c.SetData(series); err != nil {
//	    return err
//	}
//	if err := c.Render(w); err != nil {
//	    return err
//	}
//
// Every setter validates its value, applies it, and runs the recomputation
// rules synchronously before returning: derived sizes, domains, scales and
// axes are current when the setter returns, and the scene has repainted the
// affected layers once. A rejected value leaves the attribute unchanged and
// is reported in the returned attr.Result.
//
// A Chart is not safe for concurrent use.
package chart
