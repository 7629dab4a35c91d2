// Package svg renders layout results as standalone SVG documents.
//
//	data := svg.Render(res, svg.WithStyle(svg.Outline{}), svg.WithLineGuides())
package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/wraplayout/pkg/fonts"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	style      Style
	labels     bool
	guides     bool
	margin     float64
	background string
	embedFont  bool
}

// WithStyle sets the visual style. The default is [Simple].
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithLabels controls whether text labels are drawn. On by default.
func WithLabels(on bool) Option { return func(r *renderer) { r.labels = on } }

// WithLineGuides draws the extent of every line.
func WithLineGuides() Option { return func(r *renderer) { r.guides = true } }

// WithMargin sets the space around the content. The default is 8.
func WithMargin(m float64) Option { return func(r *renderer) { r.margin = m } }

// WithBackground fills the canvas with a CSS colour.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// WithEmbeddedFont embeds the fonts used by text items as @font-face rules,
// so the output renders identically without the Go fonts installed.
func WithEmbeddedFont() Option { return func(r *renderer) { r.embedFont = true } }

// DefaultMargin is the space around the content, in layout units.
const DefaultMargin = 8.0

// Render draws res. Items keep their layout coordinates, shifted by the
// margin.
func Render(res scene.Result, opts ...Option) []byte {
	r := renderer{style: Simple{}, labels: true, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}

	w := res.Size.Width + 2*r.margin
	h := res.Size.Height + 2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)

	r.style.RenderDefs(&buf)
	if r.embedFont {
		renderFontFaces(&buf, res)
	}
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(r.background))
	}

	items := buildItems(res, r.margin)
	if r.guides {
		for _, g := range buildGuides(res, r.margin) {
			r.style.RenderGuide(&buf, g)
		}
	}
	for _, it := range items {
		r.style.RenderItem(&buf, it)
	}
	if r.labels {
		for _, it := range items {
			if it.Text {
				r.style.RenderText(&buf, it)
			}
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildItems(res scene.Result, margin float64) []Item {
	items := make([]Item, len(res.Items))
	for i, p := range res.Items {
		it := Item{
			ID:       p.ID,
			Label:    p.Label,
			Text:     p.Kind == scene.KindText,
			X:        p.X + margin,
			Y:        p.Y + margin,
			W:        p.Width,
			H:        p.Height,
			Baseline: p.Baseline,
			FontSize: p.FontSize,
			Family:   fonts.FontFamily[p.Font],
			Weight:   "normal",
		}
		if p.Font == fonts.Bold {
			it.Weight = "bold"
		}
		if it.Family == "" {
			it.Family = fonts.FontFamily[fonts.DefaultName]
		}
		items[i] = it
	}
	return items
}

// buildGuides derives each line's extent from its items, which all share
// the line's y.
func buildGuides(res scene.Result, margin float64) []Guide {
	tops := make(map[int]float64, len(res.Lines))
	for _, p := range res.Items {
		if y, ok := tops[p.Line]; !ok || p.Y < y {
			tops[p.Line] = p.Y
		}
	}
	guides := make([]Guide, 0, len(res.Lines))
	for i, l := range res.Lines {
		y, ok := tops[i]
		if !ok {
			continue
		}
		guides = append(guides, Guide{Index: i, X: margin, Y: y + margin, W: l.Width, H: l.Height})
	}
	return guides
}

func renderFontFaces(buf *bytes.Buffer, res scene.Result) {
	seen := map[string]bool{}
	buf.WriteString("  <style>\n")
	for _, p := range res.Items {
		if p.Kind != scene.KindText || seen[p.Font] {
			continue
		}
		seen[p.Font] = true
		family := "Go"
		if p.Font == fonts.Mono {
			family = "Go Mono"
		}
		weight := "normal"
		if p.Font == fonts.Bold {
			weight = "bold"
		}
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			family, weight, fonts.TTFBase64(p.Font))
	}
	buf.WriteString("  </style>\n")
}
