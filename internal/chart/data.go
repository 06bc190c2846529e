package chart

import (
	"context"

	"github.com/dshills/tschart/internal/data"
)

// Data returns a copy of the series.
func (c *Chart) Data() []data.Series {
	return c.data.Series()
}

// SeriesNames returns the series names in draw order.
func (c *Chart) SeriesNames() []string {
	return c.data.Names()
}

// SetData replaces every series. Invalid input leaves the data unchanged.
func (c *Chart) SetData(series []data.Series) error {
	return c.SetDataContext(context.Background(), series)
}

// SetDataContext is SetData with a context passed to the change handlers.
func (c *Chart) SetDataContext(ctx context.Context, series []data.Series) error {
	if c.closed {
		return ErrClosed
	}
	return c.data.Replace(ctx, series)
}

// AddSeries appends a series. Adding a series redraws the whole chart.
func (c *Chart) AddSeries(s data.Series) error {
	if c.closed {
		return ErrClosed
	}
	return c.data.Add(context.Background(), s)
}

// RemoveSeries deletes the named series.
func (c *Chart) RemoveSeries(name string) error {
	if c.closed {
		return ErrClosed
	}
	return c.data.Remove(context.Background(), name)
}

// AppendPoints adds points to the named series.
func (c *Chart) AppendPoints(name string, points ...data.Point) error {
	if c.closed {
		return ErrClosed
	}
	return c.data.Append(context.Background(), name, points...)
}

// SlidePoint appends p to the named series and drops its oldest point.
func (c *Chart) SlidePoint(name string, p data.Point) error {
	if c.closed {
		return ErrClosed
	}
	return c.data.Slide(context.Background(), name, p)
}

// LoadJSON replaces the series with a JSON series document:
// [{"name": "a", "points": [{"x": 1, "y": 2}]}].
func (c *Chart) LoadJSON(b []byte) error {
	series, err := data.ParseJSON(b)
	if err != nil {
		return err
	}
	return c.SetData(series)
}

// DataJSON returns the series as a JSON series document.
func (c *Chart) DataJSON() ([]byte, error) {
	return data.MarshalJSON(c.data.View())
}
