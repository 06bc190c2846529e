package data

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Errors returned by series validation and collection mutations.
var (
	ErrNonFinite       = errors.New("non-finite coordinate")
	ErrUnknownSeries   = errors.New("unknown series")
	ErrDuplicateSeries = errors.New("duplicate series")
	ErrInvalidSeries   = errors.New("invalid series")
	ErrShape           = errors.New("column shape mismatch")
)

// Point is one observation. Z is an optional third value, used as the
// symbol size weight by scatter marks.
type Point struct {
	X, Y, Z float64
}

// Series is a named, x-sorted list of points.
type Series struct {
	Name   string
	Points []Point
}

// Clone returns a deep copy of s.
func (s Series) Clone() Series {
	return Series{Name: s.Name, Points: append([]Point(nil), s.Points...)}
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Points)
}

// Bisect returns the index of the point whose x is closest to x, or -1 for an
// empty series. Ties go to the earlier point.
func (s Series) Bisect(x float64) int {
	n := len(s.Points)
	if n == 0 {
		return -1
	}
	i := sort.Search(n, func(i int) bool { return s.Points[i].X >= x })
	switch {
	case i == 0:
		return 0
	case i == n:
		return n - 1
	case x-s.Points[i-1].X <= s.Points[i].X-x:
		return i - 1
	default:
		return i
	}
}

// Validate checks that every point is finite.
func (s Series) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidSeries)
	}
	for i, p := range s.Points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return fmt.Errorf("%w: series %q point %d (%v, %v)", ErrNonFinite, s.Name, i, p.X, p.Y)
		}
	}
	return nil
}

// normalize validates s and returns a copy sorted by x. Points with equal x
// keep their input order.
func normalize(s Series) (Series, error) {
	if err := s.Validate(); err != nil {
		return Series{}, err
	}
	out := s.Clone()
	sort.SliceStable(out.Points, func(i, j int) bool { return out.Points[i].X < out.Points[j].X })
	return out, nil
}

func normalizeAll(series []Series) ([]Series, error) {
	seen := make(map[string]bool, len(series))
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSeries, s.Name)
		}
		seen[s.Name] = true
		n, err := normalize(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Extent is the bounding box of a set of series.
type Extent struct {
	X, Y [2]float64
}

// ExtentOf returns the x and y bounds over every point of every series. ok is
// false when there are no points.
func ExtentOf(series []Series) (e Extent, ok bool) {
	for _, s := range series {
		for _, p := range s.Points {
			if !ok {
				e = Extent{X: [2]float64{p.X, p.X}, Y: [2]float64{p.Y, p.Y}}
				ok = true
				continue
			}
			e.X[0] = math.Min(e.X[0], p.X)
			e.X[1] = math.Max(e.X[1], p.X)
			e.Y[0] = math.Min(e.Y[0], p.Y)
			e.Y[1] = math.Max(e.Y[1], p.Y)
		}
	}
	return e, ok
}

// FromColumns builds series from a wide table: one shared x column and one y
// column per name.
func FromColumns(x []float64, ys [][]float64, names []string) ([]Series, error) {
	if len(ys) != len(names) {
		return nil, fmt.Errorf("%w: %d columns, %d names", ErrShape, len(ys), len(names))
	}
	out := make([]Series, 0, len(ys))
	for i, col := range ys {
		if len(col) != len(x) {
			return nil, fmt.Errorf("%w: column %q has %d rows, x has %d", ErrShape, names[i], len(col), len(x))
		}
		s := Series{Name: names[i], Points: make([]Point, len(x))}
		for j := range x {
			s.Points[j] = Point{X: x[j], Y: col[j]}
		}
		out = append(out, s)
	}
	return normalizeAll(out)
}
