package scene

import "github.com/rivo/uniseg"

// Label metrics for the default 11px sans-serif font.
const (
	fontSize  = 11
	charWidth = 6.5
)

// TextWidth estimates the rendered width of s in pixels from its display
// width in terminal cells, which counts wide East Asian characters twice
// and combining marks not at all.
func TextWidth(s string) float64 {
	return float64(uniseg.StringWidth(s)) * charWidth
}

// Truncate shortens s to at most width pixels, ending it with an ellipsis
// when anything was cut. Grapheme clusters are never split.
func Truncate(s string, width float64) string {
	if TextWidth(s) <= width {
		return s
	}
	limit := int((width - charWidth) / charWidth)
	if limit <= 0 {
		return ""
	}

	out := make([]byte, 0, len(s))
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if used+w > limit {
			break
		}
		used += w
		out = append(out, g.Str()...)
	}
	return string(out) + "…"
}
