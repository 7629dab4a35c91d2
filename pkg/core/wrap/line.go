package wrap

// Line is one row of the flow. Width is the content extent (element widths
// plus the spacing between them, no trailing spacing); Height is the
// tallest element's height, or 0 for an empty line.
type Line struct {
	Elements []CalculatedElement
	Width    float64
	Height   float64
}

// Len returns the number of elements on the line.
func (l Line) Len() int { return len(l.Elements) }

// accumulated is the horizontal offset the next element would start at.
func (l Line) accumulated(spacing float64) float64 {
	if len(l.Elements) == 0 {
		return 0
	}
	return l.Width + spacing
}

// breaksBefore reports whether an element of width w must start a new line.
// An empty line never breaks.
func (l Line) breaksBefore(w, available, spacing float64) bool {
	return len(l.Elements) > 0 && l.accumulated(spacing)+w >= available
}

func (l *Line) append(e CalculatedElement, spacing float64) {
	l.Width = l.accumulated(spacing) + e.Size.Width
	l.Height = max(l.Height, e.Size.Height)
	l.Elements = append(l.Elements, e)
}
