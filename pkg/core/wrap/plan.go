package wrap

import (
	"reflect"

	"github.com/matzehuels/wraplayout/pkg/errors"
)

// Plan is the line structure produced by one measurement pass. It is read
// only once built; a new measurement pass builds a new Plan.
type Plan struct {
	Lines             []Line
	AvailableWidth    float64
	HorizontalSpacing float64

	elements []Element
	built    bool
}

// Built reports whether the plan came from [Build] (the zero Plan did not).
func (p Plan) Built() bool { return p.built }

// LineCount returns the number of lines.
func (p Plan) LineCount() int { return len(p.Lines) }

// ElementCount returns the number of elements across all lines.
func (p Plan) ElementCount() int {
	n := 0
	for _, l := range p.Lines {
		n += len(l.Elements)
	}
	return n
}

// Elements returns the calculated elements of all lines in input order.
func (p Plan) Elements() []CalculatedElement {
	out := make([]CalculatedElement, 0, p.ElementCount())
	for _, l := range p.Lines {
		out = append(out, l.Elements...)
	}
	return out
}

// Size returns the bounding size of the content: the widest line by the
// sum of line heights plus verticalSpacing between (never after) lines.
// An empty plan has size zero. A negative or non-finite verticalSpacing is
// an INVALID_CONFIGURATION error.
func (p Plan) Size(verticalSpacing float64) (Size, error) {
	if err := errors.ValidateSpacing("vertical spacing", verticalSpacing); err != nil {
		return Size{}, err
	}
	var s Size
	for i, l := range p.Lines {
		s.Width = max(s.Width, l.Width)
		s.Height += l.Height
		if i > 0 {
			s.Height += verticalSpacing
		}
	}
	return s, nil
}

// Matches checks that the plan was built for exactly this element sequence.
// It returns a PRECONDITION_FAILED error when the plan was never built, the
// counts differ, or an element at some position is not the one measured.
func (p Plan) Matches(elements []Element) error {
	if !p.built {
		return errors.New(errors.ErrCodePrecondition, "no layout plan: measure before placing")
	}
	if len(elements) != len(p.elements) {
		return errors.New(errors.ErrCodePrecondition,
			"layout plan was built for %d elements, got %d", len(p.elements), len(elements))
	}
	for i := range elements {
		if !sameElement(elements[i], p.elements[i]) {
			return errors.New(errors.ErrCodePrecondition,
				"element %d differs from the one measured for this plan", i)
		}
	}
	return nil
}

// sameElement compares by identity where the values allow it. Values that
// cannot be compared, including structs whose interface fields hold slices
// or maps, are only checked for matching type.
func sameElement(a, b Element) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.Comparable() || !vb.Comparable() {
		return true
	}
	return va.Equal(vb)
}
