package element

import (
	"github.com/matzehuels/wraplayout/pkg/core/wrap"
	"github.com/matzehuels/wraplayout/pkg/fonts"
)

// DefaultPadding is the inset added on every side of a text label.
const DefaultPadding = 4.0

// TextStyle selects the font and inset of a [Text].
type TextStyle struct {
	Font     string  // font name, see [fonts.Names]; empty means default
	FontSize float64 // points; zero means [fonts.DefaultSize]
	Padding  float64 // inset on each side
}

// Text is a single-line label. Its size is the advance width of the label
// plus padding, by the font's line height plus padding. Labels are never
// broken across lines; a label wider than the proposal still reports its
// full width.
type Text struct {
	placement
	id    string
	label string
	style TextStyle
	size  wrap.Size
	base  float64 // baseline offset from the top of the frame
}

// NewText measures label in the given style. It fails only for an unknown
// font.
func NewText(id, label string, style TextStyle) (*Text, error) {
	if style.FontSize <= 0 {
		style.FontSize = fonts.DefaultSize
	}
	if style.Font == "" {
		style.Font = fonts.DefaultName
	}
	w, err := fonts.Measure(style.Font, style.FontSize, label)
	if err != nil {
		return nil, err
	}
	m, err := fonts.LineMetrics(style.Font, style.FontSize)
	if err != nil {
		return nil, err
	}
	return &Text{
		id:    id,
		label: label,
		style: style,
		size: wrap.Size{
			Width:  w + 2*style.Padding,
			Height: m.Height + 2*style.Padding,
		},
		base: style.Padding + m.Ascent,
	}, nil
}

func (t *Text) ID() string { return t.id }

// Label returns the text of the label.
func (t *Text) Label() string { return t.label }

// Style returns the resolved style, with defaults filled in.
func (t *Text) Style() TextStyle { return t.style }

// Baseline returns the distance from the top of the frame to the text
// baseline.
func (t *Text) Baseline() float64 { return t.base }

func (t *Text) Measure(wrap.Proposal) wrap.Size { return t.size }
