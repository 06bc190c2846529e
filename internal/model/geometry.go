package model

import "fmt"

// Size is a width and height in pixels.
type Size struct {
	Width, Height float64
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Margin is the space around a plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// MarginOf reads a [top, right, bottom, left] array. Missing elements are 0.
func MarginOf(m []float64) Margin {
	var out Margin
	for i, dst := range []*float64{&out.Top, &out.Right, &out.Bottom, &out.Left} {
		if i < len(m) {
			*dst = m[i]
		}
	}
	return out
}

// Slice returns the margin as [top, right, bottom, left].
func (m Margin) Slice() []float64 {
	return []float64{m.Top, m.Right, m.Bottom, m.Left}
}

// Inner returns the size left inside outer after removing the margin.
func (m Margin) Inner(outer Size) Size {
	return Size{
		Width:  outer.Width - m.Left - m.Right,
		Height: outer.Height - m.Top - m.Bottom,
	}
}
