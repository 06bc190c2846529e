package scene

import "math"

// SymbolPath returns the path data of a scatter symbol of radius r centered
// on (cx, cy). Unknown names draw a circle.
func SymbolPath(name string, cx, cy, r float64) string {
	var b pathBuilder
	switch name {
	case "square":
		b.cmd('M', cx-r, cy-r)
		b.line(cx+r, cy-r)
		b.line(cx+r, cy+r)
		b.line(cx-r, cy+r)
		b.close()
	case "cross":
		t := r / 3
		for i, p := range []Vec{
			{-r, -t}, {-t, -t}, {-t, -r}, {t, -r}, {t, -t}, {r, -t},
			{r, t}, {t, t}, {t, r}, {-t, r}, {-t, t}, {-r, t},
		} {
			b.start(Vec{cx + p.X, cy + p.Y}, i == 0)
		}
		b.close()
	case "diamond":
		w := r * math.Tan(math.Pi/6) * 1.5
		b.cmd('M', cx, cy-r)
		b.line(cx+w, cy)
		b.line(cx, cy+r)
		b.line(cx-w, cy)
		b.close()
	case "triangle-up", "triangle-down":
		dir := 1.0
		if name == "triangle-down" {
			dir = -1
		}
		h := r * math.Sqrt(3) / 2
		b.cmd('M', cx, cy-dir*r)
		b.line(cx+h, cy+dir*r/2)
		b.line(cx-h, cy+dir*r/2)
		b.close()
	default:
		b.cmd('M', cx-r, cy)
		b.WriteString(" a" + num(r) + "," + num(r) + " 0 1,0 " + num(2*r) + ",0")
		b.WriteString(" a" + num(r) + "," + num(r) + " 0 1,0 " + num(-2*r) + ",0")
	}
	return b.String()
}
