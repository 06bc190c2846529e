package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// category10 is the automatic palette for the first ten series.
var category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// goldenAngle spaces generated hues so neighbours stay distinct.
const goldenAngle = 137.508

// Paint is the color of one series: either a color or a CSS class.
type Paint struct {
	Color string
	Class string
}

// Attrs returns svgo attributes painting prop ("stroke" or "fill") with p.
// base is the element class; a class paint is appended to it.
func (p Paint) Attrs(base, prop string, extra ...string) []string {
	class := base
	if p.Class != "" {
		class = strings.TrimSpace(base + " " + p.Class)
	}
	var out []string
	if class != "" {
		out = append(out, fmt.Sprintf(`class="%s"`, class))
	}
	style := strings.Join(extra, ";")
	if p.Color != "" {
		style = strings.Trim(prop+":"+p.Color+";"+style, ";")
	}
	if style != "" {
		out = append(out, style)
	}
	return out
}

// Palette assigns paints to series by index.
type Palette struct {
	colors []string
}

// NewPalette creates a palette from explicit colors and class names. An
// empty list selects the automatic palette.
func NewPalette(colors []string) Palette {
	return Palette{colors: append([]string(nil), colors...)}
}

// Auto reports whether the palette generates colors.
func (p Palette) Auto() bool {
	return len(p.colors) == 0
}

// At returns the paint of series i. Explicit lists repeat cyclically.
func (p Palette) At(i int) Paint {
	if i < 0 {
		i = 0
	}
	if p.Auto() {
		return Paint{Color: AutoColor(i)}
	}
	c := p.colors[i%len(p.colors)]
	if strings.HasPrefix(c, "#") {
		if col, err := colorful.Hex(c); err == nil {
			return Paint{Color: col.Hex()}
		}
	}
	return Paint{Class: c}
}

// AutoColor returns the automatic color of series i: the ten categorical
// colors first, then hues spaced by the golden angle at constant chroma and
// lightness.
func AutoColor(i int) string {
	if i < len(category10) {
		return category10[i]
	}
	h := math.Mod(float64(i-len(category10))*goldenAngle, 360)
	return colorful.Hcl(h, 0.55, 0.6).Clamped().Hex()
}

// Lighten blends color toward white by t in [0, 1] in Lab space. Invalid
// colors are returned unchanged.
func Lighten(color string, t float64) string {
	c, err := colorful.Hex(color)
	if err != nil {
		return color
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendLab(white, math.Max(0, math.Min(1, t))).Clamped().Hex()
}
