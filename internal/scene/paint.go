package scene

import (
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/dshills/tschart/internal/data"
	"github.com/dshills/tschart/internal/model"
	"github.com/dshills/tschart/internal/scale"
)

// Shared styles.
const (
	styleAxisLine = "stroke:#333;fill:none"
	styleTickText = "font-size:11px;font-family:sans-serif;fill:#333"
	styleTitle    = "font-size:14px;font-family:sans-serif;font-weight:bold;fill:#222"
	styleExtent   = "fill:#4682b4;fill-opacity:0.25;stroke:#4682b4"
)

func defaultPainters() [layerCount]Painter {
	return [layerCount]Painter{
		LayerBase:        PainterFunc(paintBase),
		LayerChart:       PainterFunc(paintChart),
		LayerAxes:        PainterFunc(paintAxes),
		LayerMarks:       PainterFunc(paintMarks),
		LayerLegend:      PainterFunc(paintLegend),
		LayerAnnotations: PainterFunc(paintAnnotations),
		LayerCursor:      PainterFunc(paintCursor),
		LayerBrush:       PainterFunc(paintBrush),
	}
}

func translate(x, y float64) string {
	return fmt.Sprintf(`transform="translate(%s,%s)"`, num(x), num(y))
}

func paintBase(c *svg.SVG, f *Frame) error {
	c.Rect(0, 0, px(f.Size.Width), px(f.Size.Height), `class="background"`, "fill:#ffffff")
	return nil
}

// paintChart defines the plot clip path and draws the plot frame.
func paintChart(c *svg.SVG, f *Frame) error {
	c.Def()
	c.ClipPath(fmt.Sprintf(`id="%s-clip"`, f.ID))
	c.Rect(0, 0, px(f.Graph.Width), px(f.Graph.Height))
	c.ClipEnd()
	c.DefEnd()
	c.Rect(px(f.Margin.Left), px(f.Margin.Top), px(f.Graph.Width), px(f.Graph.Height),
		`class="plot"`, "fill:none;stroke:#e5e5e5")
	return nil
}

func paintAxes(c *svg.SVG, f *Frame) error {
	if f.XAxis != nil {
		drawAxis(c, f.XAxis, f.Margin.Left, f.Margin.Top, f.Graph)
	}
	if f.YAxis != nil {
		drawAxis(c, f.YAxis, f.Margin.Left, f.Margin.Top, f.Graph)
	}
	return nil
}

// drawAxis draws ax along the edge of the plot area of size g whose top-left
// corner is (ox, oy).
func drawAxis(c *svg.SVG, ax *scale.Axis, ox, oy float64, g model.Size) {
	r := ax.Scale.Range()
	sign := ax.Orient.Sign()
	off := ax.LabelOffset()
	titleOff := math.Abs(off) + 2.5*fontSize

	class := fmt.Sprintf(`class="axis %s"`, ax.Orient)
	c.Group(class)
	defer c.Gend()

	if ax.Horizontal() {
		y := oy
		if ax.Orient == scale.OrientBottom {
			y += g.Height
		}
		baseline := -3.0
		if off > 0 {
			baseline = fontSize
		}
		c.Line(px(ox+r[0]), px(y), px(ox+r[1]), px(y), `class="domain"`, styleAxisLine)
		for _, t := range ax.Ticks() {
			x := ox + t.Pos
			c.Line(px(x), px(y), px(x), px(y+sign*ax.TickSize), `class="tick"`, styleAxisLine)
			c.Text(px(x), px(y+off+baseline), t.Label, `text-anchor="middle"`, styleTickText)
		}
		if ax.Label != "" {
			ty := y + sign*titleOff
			if sign > 0 {
				ty += fontSize
			}
			c.Text(px(ox+(r[0]+r[1])/2), px(ty), ax.Label, `class="label"`, `text-anchor="middle"`, styleTickText)
		}
		return
	}

	x := ox
	anchor := `text-anchor="end"`
	if ax.Orient == scale.OrientRight {
		x += g.Width
		anchor = `text-anchor="start"`
	}
	c.Line(px(x), px(oy+r[0]), px(x), px(oy+r[1]), `class="domain"`, styleAxisLine)
	for _, t := range ax.Ticks() {
		y := oy + t.Pos
		c.Line(px(x), px(y), px(x+sign*ax.TickSize), px(y), `class="tick"`, styleAxisLine)
		c.Text(px(x+off), px(y), t.Label, anchor, `dy=".32em"`, styleTickText)
	}
	if ax.Label != "" {
		tx, ty := px(x+sign*(titleOff+fontSize)), px(oy+(r[0]+r[1])/2)
		c.Text(tx, ty, ax.Label, `class="label"`, `text-anchor="middle"`,
			fmt.Sprintf(`transform="rotate(-90 %d,%d)"`, tx, ty), styleTickText)
	}
}

func paintMarks(c *svg.SVG, f *Frame) error {
	if f.X == nil || f.Y == nil {
		return nil
	}
	body := f.ID + "-marks-body"

	c.Group(translate(f.Margin.Left, f.Margin.Top), fmt.Sprintf(`clip-path="url(#%s-clip)"`, f.ID))
	c.Gid(body)
	if err := drawSeries(c, f.Series, f.X, f.Y, f.Marks); err != nil {
		return err
	}
	c.Gend()
	if f.Enter != nil {
		animateEnter(c, "#"+body, f.Enter, f.Graph)
	}
	c.Gend()
	return nil
}

// project maps the points of s to pixels.
func project(s data.Series, x, y scale.Scale) []Vec {
	pts := make([]Vec, len(s.Points))
	for i, p := range s.Points {
		pts[i] = Vec{X: x.Map(p.X), Y: y.Map(p.Y)}
	}
	return pts
}

// baseline is the pixel row of the bottom of a y range.
func baseline(y scale.Scale) float64 {
	r := y.Range()
	return math.Max(r[0], r[1])
}

func drawSeries(c *svg.SVG, series []data.Series, x, y scale.Scale, style MarkStyle) error {
	palette := NewPalette(style.Colors)

	switch style.Type {
	case model.MarkStackedArea, model.MarkSteamgraph:
		offset := data.OffsetZero
		if style.Type == model.MarkSteamgraph {
			offset = data.OffsetWiggle
		}
		for i, layer := range data.Stack(series, offset) {
			upper := make([]Vec, len(layer))
			lower := make([]Vec, len(layer))
			for j, b := range layer {
				xp := x.Map(b.X)
				upper[j] = Vec{X: xp, Y: y.Map(b.Y1)}
				lower[j] = Vec{X: xp, Y: y.Map(b.Y0)}
			}
			attrs := palette.At(i).Attrs(seriesClass("area", i), "fill", "fill-opacity:0.85")
			c.Path(AreaPath(upper, lower, style.Interpolation), attrs...)
		}

	case model.MarkArea:
		base := baseline(y)
		for i, s := range series {
			upper := project(s, x, y)
			lower := make([]Vec, len(upper))
			for j, p := range upper {
				lower[j] = Vec{X: p.X, Y: base}
			}
			paint := palette.At(i)
			c.Path(AreaPath(upper, lower, style.Interpolation),
				paint.Attrs(seriesClass("area", i), "fill", "fill-opacity:0.3")...)
			c.Path(LinePath(upper, style.Interpolation),
				paint.Attrs(seriesClass("line", i), "stroke", "fill:none", "stroke-width:1.5")...)
		}

	case model.MarkScatter:
		symbols := style.Symbols
		if len(symbols) == 0 {
			symbols = []string{"circle"}
		}
		for i, s := range series {
			attrs := palette.At(i).Attrs(seriesClass("dot", i), "fill")
			symbol := symbols[i%len(symbols)]
			for _, p := range s.Points {
				r := style.Size
				if p.Z > 0 {
					r *= math.Sqrt(p.Z)
				}
				c.Path(SymbolPath(symbol, x.Map(p.X), y.Map(p.Y), r), attrs...)
			}
		}

	case model.MarkLine, "":
		for i, s := range series {
			if len(s.Points) == 0 {
				continue
			}
			c.Path(LinePath(project(s, x, y), style.Interpolation),
				palette.At(i).Attrs(seriesClass("line", i), "stroke", "fill:none", "stroke-width:1.5")...)
		}

	default:
		return fmt.Errorf("unknown mark type %q", style.Type)
	}
	return nil
}

func seriesClass(kind string, i int) string {
	return fmt.Sprintf("%s series-%d", kind, i)
}

// easingSplines approximates each easing with one cubic Bezier. SMIL
// keySplines must stay inside the unit square, so the overshooting easings
// fall back to an ease-out curve.
var easingSplines = map[string]string{
	"cubic":   "0.65 0 0.35 1",
	"sin":     "0.37 0 0.63 1",
	"exp":     "0.87 0 0.13 1",
	"circle":  "0.85 0 0.15 1",
	"elastic": "0 0 0.58 1",
	"bounce":  "0 0 0.58 1",
	"back":    "0 0 0.58 1",
}

// animateEnter slides the marks body in from the bottom (arise) or the left
// (enterLeft) and fades it in.
func animateEnter(c *svg.SVG, link string, e *Enter, g model.Size) {
	secs := e.Duration.Seconds()
	if secs <= 0 {
		return
	}
	attrs := []string{`fill="freeze"`}
	if spline, ok := easingSplines[e.Easing]; ok {
		attrs = append(attrs, `calcMode="spline"`, `keyTimes="0;1"`, fmt.Sprintf(`keySplines="%s"`, spline))
	}

	fx, fy := 0, px(g.Height)
	if e.Type == model.AnimEnterLeft {
		fx, fy = -px(g.Width), 0
	}
	c.AnimateTranslate(link, fx, fy, 0, 0, secs, 1, attrs...)
	c.Animate(link, "opacity", 0, 1, secs, 1, attrs...)
}

func paintLegend(c *svg.SVG, f *Frame) error {
	if len(f.Legend) == 0 {
		return nil
	}
	const (
		swatch = 10
		row    = 16
		pad    = 6
	)
	palette := NewPalette(f.Marks.Colors)

	maxLabel := f.Graph.Width / 3
	labels := make([]string, len(f.Legend))
	width := 0.0
	for i, l := range f.Legend {
		labels[i] = Truncate(l, maxLabel)
		width = math.Max(width, TextWidth(labels[i]))
	}
	boxW := width + swatch + 3*pad
	boxH := float64(len(labels))*row + pad
	x0 := f.Margin.Left + f.Graph.Width - boxW - pad
	y0 := f.Margin.Top + pad

	c.Group(translate(x0, y0), `class="legend"`)
	c.Rect(0, 0, px(boxW), px(boxH), `class="legend-box"`, "fill:#ffffff;fill-opacity:0.8;stroke:#ccc")
	for i, l := range labels {
		y := float64(i)*row + pad
		c.Rect(pad, px(y), swatch, swatch, palette.At(i).Attrs(seriesClass("swatch", i), "fill")...)
		c.Text(px(2*pad+swatch), px(y+swatch-1), l, styleTickText)
	}
	c.Gend()
	return nil
}

func paintAnnotations(c *svg.SVG, f *Frame) error {
	if f.Title != "" {
		y := math.Max(fontSize+3, f.Margin.Top/2+fontSize/2)
		c.Text(px(f.Margin.Left+f.Graph.Width/2), px(y), Truncate(f.Title, f.Size.Width),
			`class="title"`, `text-anchor="middle"`, styleTitle)
	}
	if f.Caption != "" {
		c.Text(px(f.Margin.Left), px(f.Size.Height-6), Truncate(f.Caption, f.Size.Width-f.Margin.Left),
			`class="caption"`, styleTickText)
	}
	return nil
}

func paintCursor(c *svg.SVG, f *Frame) error {
	cur := f.Cursor
	if cur == nil {
		return nil
	}
	paint := NewPalette(f.Marks.Colors).At(cur.Series)

	c.Group(translate(f.Margin.Left, f.Margin.Top), `class="cursor"`)
	c.Line(px(cur.X), 0, px(cur.X), px(f.Graph.Height), "stroke:#999;stroke-dasharray:3,3")
	c.Circle(px(cur.X), px(cur.Y), 4, paint.Attrs("cursor-point", "fill", "stroke:#fff")...)
	if cur.Label != "" {
		x, anchor := cur.X+6, `text-anchor="start"`
		if x+TextWidth(cur.Label) > f.Graph.Width {
			x, anchor = cur.X-6, `text-anchor="end"`
		}
		c.Text(px(x), px(cur.Y-6), cur.Label, anchor, styleTickText)
	}
	c.Gend()
	return nil
}

func paintBrush(c *svg.SVG, f *Frame) error {
	b := f.Brush
	if b == nil {
		return nil
	}
	palette := NewPalette(f.Marks.Colors)

	c.Group(translate(b.Origin[0], b.Origin[1]), `class="brush"`)
	c.Rect(0, 0, px(b.Graph.Width), px(b.Graph.Height), `class="brush-background"`, "fill:#f7f7f7")

	if b.Scale != nil && b.Cross != nil {
		for i, s := range b.Series {
			pts := make([]Vec, len(s.Points))
			for j, p := range s.Points {
				if b.Horizontal {
					pts[j] = Vec{X: b.Scale.Map(p.X), Y: b.Cross.Map(p.Y)}
				} else {
					pts[j] = Vec{X: b.Cross.Map(p.X), Y: b.Scale.Map(p.Y)}
				}
			}
			c.Path(LinePath(pts, "linear"),
				palette.At(i).Attrs(seriesClass("brush-line", i), "stroke", "fill:none", "stroke-width:1")...)
		}
	}
	if b.Axis != nil {
		drawAxis(c, b.Axis, 0, 0, b.Graph)
	}

	if !b.Empty {
		lo, hi := math.Min(b.Extent[0], b.Extent[1]), math.Max(b.Extent[0], b.Extent[1])
		if b.Horizontal {
			c.Rect(px(lo), 0, px(hi-lo), px(b.Graph.Height), `class="extent"`, styleExtent)
		} else {
			c.Rect(0, px(lo), px(b.Graph.Width), px(hi-lo), `class="extent"`, styleExtent)
		}
	}
	c.Gend()
	return nil
}
