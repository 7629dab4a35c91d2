package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Style defines the visual appearance of a rendered layout.
type Style interface {
	// RenderDefs writes <defs> and <style> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderItem writes the shape of one item.
	RenderItem(buf *bytes.Buffer, it Item)
	// RenderText writes the label of one text item.
	RenderText(buf *bytes.Buffer, it Item)
	// RenderGuide writes the outline of one line.
	RenderGuide(buf *bytes.Buffer, g Guide)
}

// Item contains all data needed to render one placed item.
type Item struct {
	ID         string
	Label      string
	Text       bool
	X, Y, W, H float64
	Baseline   float64 // from the top of the item
	Family     string  // CSS font-family
	Weight     string  // CSS font-weight
	FontSize   float64
}

// Guide is the extent of one line.
type Guide struct {
	Index      int
	X, Y, W, H float64
}

// Simple draws filled rounded rectangles with centred labels.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    .item { fill: #e8eef7; stroke: #4a6fa5; stroke-width: 1; }
    .item.box { fill: #f3f3f3; stroke: #888; }
    .label { fill: #1b1f24; }
    .guide { fill: none; stroke: #d33; stroke-width: 0.5; stroke-dasharray: 3 2; }
  </style>
`)
}

func (Simple) RenderItem(buf *bytes.Buffer, it Item) {
	class := "item"
	if !it.Text {
		class = "item box"
	}
	fmt.Fprintf(buf, `  <rect id="item-%s" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" ry="6"/>`+"\n",
		EscapeXML(it.ID), class, it.X, it.Y, it.W, it.H)
}

func (Simple) RenderText(buf *bytes.Buffer, it Item) {
	renderLabel(buf, it)
}

func (Simple) RenderGuide(buf *bytes.Buffer, g Guide) {
	renderGuide(buf, g)
}

// Outline draws unfilled rectangles with a dot at each origin, useful for
// checking the geometry of a layout.
type Outline struct{}

func (Outline) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    .item { fill: none; stroke: #000; stroke-width: 1; }
    .origin { fill: #d33; }
    .label { fill: #000; }
    .guide { fill: none; stroke: #3a3; stroke-width: 0.5; stroke-dasharray: 2 2; }
  </style>
`)
}

func (Outline) RenderItem(buf *bytes.Buffer, it Item) {
	fmt.Fprintf(buf, `  <rect id="item-%s" class="item" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		EscapeXML(it.ID), it.X, it.Y, it.W, it.H)
	fmt.Fprintf(buf, `  <circle class="origin" cx="%.2f" cy="%.2f" r="1.5"/>`+"\n", it.X, it.Y)
}

func (Outline) RenderText(buf *bytes.Buffer, it Item) {
	renderLabel(buf, it)
}

func (Outline) RenderGuide(buf *bytes.Buffer, g Guide) {
	renderGuide(buf, g)
}

func renderLabel(buf *bytes.Buffer, it Item) {
	fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f" text-anchor="middle" font-family="%s" font-size="%.1f" font-weight="%s" data-item="%s">%s</text>`+"\n",
		it.X+it.W/2, it.Y+it.Baseline, EscapeXML(it.Family), it.FontSize, it.Weight, EscapeXML(it.ID), EscapeXML(it.Label))
}

func renderGuide(buf *bytes.Buffer, g Guide) {
	fmt.Fprintf(buf, `  <rect class="guide" data-line="%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		g.Index, g.X, g.Y, g.W, g.H)
}

// EscapeXML escapes s for use in text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
