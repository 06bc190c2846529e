package scene

import (
	"math"
	"strconv"
	"strings"
)

// Vec is a point in pixel coordinates.
type Vec struct {
	X, Y float64
}

// Curve writes the segments of a polyline through pts into b. The first
// point is reached with a move when move is true and with a line otherwise,
// so areas can join an upper and a lower curve into one path.
type Curve func(b *pathBuilder, pts []Vec, move bool)

// curves maps interpolation names to curves. The open, closed and bundle
// B-spline variants draw as the plain B-spline; the open and closed cardinal
// variants draw as the plain cardinal spline.
var curves = map[string]Curve{
	"linear":          linearCurve,
	"linear-closed":   linearCurve,
	"step":            stepCurve(0.5),
	"step-before":     stepCurve(0),
	"step-after":      stepCurve(1),
	"basis":           basisCurve,
	"basis-open":      basisCurve,
	"basis-closed":    basisCurve,
	"bundle":          basisCurve,
	"cardinal":        cardinalCurve,
	"cardinal-open":   cardinalCurve,
	"cardinal-closed": cardinalCurve,
	"monotone":        monotoneCurve,
}

// CurveFor returns the curve of an interpolation name, falling back to
// linear.
func CurveFor(interpolation string) Curve {
	if c, ok := curves[interpolation]; ok {
		return c
	}
	return linearCurve
}

// LinePath returns the path data of a line through pts.
func LinePath(pts []Vec, interpolation string) string {
	if len(pts) == 0 {
		return ""
	}
	var b pathBuilder
	CurveFor(interpolation)(&b, pts, true)
	if interpolation == "linear-closed" && len(pts) > 2 {
		b.close()
	}
	return b.String()
}

// AreaPath returns the path data of the region between upper and lower,
// which must have the same length and x order.
func AreaPath(upper, lower []Vec, interpolation string) string {
	if len(upper) == 0 || len(upper) != len(lower) {
		return ""
	}
	curve := CurveFor(interpolation)
	rev := make([]Vec, len(lower))
	for i, p := range lower {
		rev[len(lower)-1-i] = p
	}
	var b pathBuilder
	curve(&b, upper, true)
	curve(&b, rev, false)
	b.close()
	return b.String()
}

type pathBuilder struct {
	strings.Builder
}

func (b *pathBuilder) cmd(c byte, coords ...float64) {
	b.WriteByte(c)
	for i, v := range coords {
		if i > 0 {
			if i%2 == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte(',')
			}
		}
		b.WriteString(num(v))
	}
}

func (b *pathBuilder) start(p Vec, move bool) {
	if move {
		b.cmd('M', p.X, p.Y)
		return
	}
	b.cmd('L', p.X, p.Y)
}

func (b *pathBuilder) line(x, y float64) { b.cmd('L', x, y) }

func (b *pathBuilder) bezier(x1, y1, x2, y2, x, y float64) { b.cmd('C', x1, y1, x2, y2, x, y) }

func (b *pathBuilder) close() { b.WriteByte('Z') }

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Round(v*100) / 100
	if v == 0 {
		// negative zero
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func linearCurve(b *pathBuilder, pts []Vec, move bool) {
	for i, p := range pts {
		if i == 0 {
			b.start(p, move)
			continue
		}
		b.line(p.X, p.Y)
	}
}

// stepCurve changes y at fraction t of each x interval: 0 before the
// interval, 1 after it, 0.5 in the middle.
func stepCurve(t float64) Curve {
	return func(b *pathBuilder, pts []Vec, move bool) {
		for i, p := range pts {
			if i == 0 {
				b.start(p, move)
				continue
			}
			prev := pts[i-1]
			x := prev.X*(1-t) + p.X*t
			b.line(x, prev.Y)
			b.line(x, p.Y)
			b.line(p.X, p.Y)
		}
	}
}

// basisCurve draws a cubic B-spline that starts and ends at the first and
// last points.
func basisCurve(b *pathBuilder, pts []Vec, move bool) {
	var x0, y0, x1, y1 float64
	seg := func(x, y float64) {
		b.bezier(
			(2*x0+x1)/3, (2*y0+y1)/3,
			(x0+2*x1)/3, (y0+2*y1)/3,
			(x0+4*x1+x)/6, (y0+4*y1+y)/6,
		)
	}

	for i, p := range pts {
		switch i {
		case 0:
			b.start(p, move)
		case 1:
		case 2:
			b.line((5*x0+x1)/6, (5*y0+y1)/6)
			seg(p.X, p.Y)
		default:
			seg(p.X, p.Y)
		}
		x0, x1 = x1, p.X
		y0, y1 = y1, p.Y
	}

	switch {
	case len(pts) >= 3:
		seg(x1, y1)
		b.line(x1, y1)
	case len(pts) == 2:
		b.line(x1, y1)
	}
}

// cardinalCurve draws a Catmull-Rom style spline through every point with
// zero tension.
func cardinalCurve(b *pathBuilder, pts []Vec, move bool) {
	if len(pts) < 3 {
		linearCurve(b, pts, move)
		return
	}
	b.start(pts[0], move)
	at := func(i int) Vec {
		return pts[max(0, min(i, len(pts)-1))]
	}
	for i := 0; i < len(pts)-1; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		b.bezier(
			p1.X+(p2.X-p0.X)/6, p1.Y+(p2.Y-p0.Y)/6,
			p2.X-(p3.X-p1.X)/6, p2.Y-(p3.Y-p1.Y)/6,
			p2.X, p2.Y,
		)
	}
}

// monotoneCurve draws a cubic Hermite spline that preserves monotonicity in
// y between points (Fritsch-Carlson).
func monotoneCurve(b *pathBuilder, pts []Vec, move bool) {
	n := len(pts)
	if n < 3 {
		linearCurve(b, pts, move)
		return
	}

	secants := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h := pts[i+1].X - pts[i].X
		if h == 0 {
			secants[i] = 0
			continue
		}
		secants[i] = (pts[i+1].Y - pts[i].Y) / h
	}

	tangents := make([]float64, n)
	tangents[0] = secants[0]
	tangents[n-1] = secants[n-2]
	for i := 1; i < n-1; i++ {
		if secants[i-1]*secants[i] <= 0 {
			tangents[i] = 0
			continue
		}
		tangents[i] = (secants[i-1] + secants[i]) / 2
	}

	for i := 0; i < n-1; i++ {
		if secants[i] == 0 {
			tangents[i], tangents[i+1] = 0, 0
			continue
		}
		a := tangents[i] / secants[i]
		c := tangents[i+1] / secants[i]
		if s := a*a + c*c; s > 9 {
			t := 3 / math.Sqrt(s)
			tangents[i] = t * a * secants[i]
			tangents[i+1] = t * c * secants[i]
		}
	}

	b.start(pts[0], move)
	for i := 0; i < n-1; i++ {
		p, q := pts[i], pts[i+1]
		h := (q.X - p.X) / 3
		if h == 0 {
			b.line(q.X, q.Y)
			continue
		}
		b.bezier(p.X+h, p.Y+tangents[i]*h, q.X-h, q.Y-tangents[i+1]*h, q.X, q.Y)
	}
}
