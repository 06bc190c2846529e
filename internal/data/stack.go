package data

import (
	"math"
	"sort"
)

// StackOffset selects the baseline of a stack.
type StackOffset int

const (
	// OffsetZero stacks on y = 0.
	OffsetZero StackOffset = iota
	// OffsetWiggle shifts the baseline to minimize the weighted change in
	// slope of every layer, producing a streamgraph.
	OffsetWiggle
)

// Band is one stacked point: the layer spans [Y0, Y1] at X.
type Band struct {
	X, Y0, Y1 float64
}

// Stack lays series on top of each other in order. Series are aligned on the
// union of their x values; a series without a point at some x contributes 0
// there.
func Stack(series []Series, offset StackOffset) [][]Band {
	xs := unionX(series)
	values := make([][]float64, len(series))
	for i, s := range series {
		values[i] = make([]float64, len(xs))
		j := 0
		for _, p := range s.Points {
			for j < len(xs) && xs[j] < p.X {
				j++
			}
			if j < len(xs) && xs[j] == p.X {
				values[i][j] += p.Y
			}
		}
	}

	base := make([]float64, len(xs))
	if offset == OffsetWiggle {
		base = wiggle(values)
	}

	out := make([][]Band, len(series))
	for i := range series {
		out[i] = make([]Band, len(xs))
		for j, x := range xs {
			y0 := base[j]
			if i > 0 {
				y0 = out[i-1][j].Y1
			}
			out[i][j] = Band{X: x, Y0: y0, Y1: y0 + values[i][j]}
		}
	}
	return out
}

// wiggle computes the streamgraph baseline of Byron and Wattenberg.
func wiggle(values [][]float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	m := len(values[0])
	base := make([]float64, m)
	y := 0.0
	for j := 1; j < m; j++ {
		var s1, s2 float64
		for i := range values {
			cur, prev := values[i][j], values[i][j-1]
			s3 := (cur - prev) / 2
			for k := 0; k < i; k++ {
				s3 += values[k][j] - values[k][j-1]
			}
			s1 += cur
			s2 += s3 * cur
		}
		if s1 != 0 {
			y -= s2 / s1
		}
		base[j] = y
	}
	return base
}

func unionX(series []Series) []float64 {
	seen := make(map[float64]bool)
	var xs []float64
	for _, s := range series {
		for _, p := range s.Points {
			if !seen[p.X] {
				seen[p.X] = true
				xs = append(xs, p.X)
			}
		}
	}
	sort.Float64s(xs)
	return xs
}

// StackExtent returns the y bounds covered by the stacked layers. ok is false
// when there are no bands.
func StackExtent(layers [][]Band) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, layer := range layers {
		for _, b := range layer {
			lo = math.Min(lo, math.Min(b.Y0, b.Y1))
			hi = math.Max(hi, math.Max(b.Y0, b.Y1))
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}
