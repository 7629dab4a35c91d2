package wrap

import "testing"

// box is a fixed-size test element that records how it was used.
type box struct {
	id        string
	size      Size
	proposals []Proposal
	placed    []Frame
}

func newBox(id string, w, h float64) *box {
	return &box{id: id, size: Size{Width: w, Height: h}}
}

func (b *box) Measure(p Proposal) Size {
	b.proposals = append(b.proposals, p)
	return b.size
}

func (b *box) Place(origin Point, size Size) {
	b.placed = append(b.placed, Frame{Origin: origin, Size: size})
}

// boxes builds elements of the given widths, all with height h.
func boxes(h float64, widths ...float64) ([]Element, []*box) {
	els := make([]Element, len(widths))
	bs := make([]*box, len(widths))
	for i, w := range widths {
		bs[i] = newBox(string(rune('a'+i%26)), w, h)
		els[i] = bs[i]
	}
	return els, bs
}

// lineWidths returns the measured widths on each line of the plan.
func lineWidths(p Plan) [][]float64 {
	out := make([][]float64, len(p.Lines))
	for i, l := range p.Lines {
		for _, e := range l.Elements {
			out[i] = append(out[i], e.Size.Width)
		}
	}
	return out
}

// sizeOf returns plan.Size for a spacing the test knows to be valid.
func sizeOf(t *testing.T, p Plan, verticalSpacing float64) Size {
	t.Helper()
	s, err := p.Size(verticalSpacing)
	if err != nil {
		t.Fatalf("Size(%v) error = %v", verticalSpacing, err)
	}
	return s
}

// place runs Apply for a spacing the test knows to be valid.
func place(t *testing.T, p Plan, origin Point, verticalSpacing float64) []Placement {
	t.Helper()
	placements, err := Apply(p, origin, verticalSpacing)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	return placements
}
