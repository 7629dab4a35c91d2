// Package element provides concrete [wrap.Element] implementations: fixed
// boxes and text labels measured with the embedded fonts.
//
// Both kinds remember the frame they were placed at, so callers can read
// the result of a placement pass back from the elements themselves.
package element

import (
	"github.com/matzehuels/wraplayout/pkg/core/wrap"
)

// Recorder is an element with an identity that records its placement.
type Recorder interface {
	wrap.Element

	// ID returns the element's identifier, unique within a scene.
	ID() string

	// Frame returns the frame of the last placement, and false if the
	// element has not been placed.
	Frame() (wrap.Frame, bool)
}

// Elements converts recorders to the element slice the layout consumes.
func Elements(rs []Recorder) []wrap.Element {
	out := make([]wrap.Element, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}

// placement is embedded by every element kind.
type placement struct {
	frame  wrap.Frame
	placed bool
}

func (p *placement) Place(origin wrap.Point, size wrap.Size) {
	p.frame = wrap.Frame{Origin: origin, Size: size}
	p.placed = true
}

func (p *placement) Frame() (wrap.Frame, bool) {
	return p.frame, p.placed
}

// Box is an element with a fixed intrinsic size. It ignores the proposal.
type Box struct {
	placement
	id   string
	size wrap.Size
}

// NewBox returns a box of the given size.
func NewBox(id string, width, height float64) *Box {
	return &Box{id: id, size: wrap.Size{Width: width, Height: height}}
}

func (b *Box) ID() string { return b.id }

func (b *Box) Measure(wrap.Proposal) wrap.Size { return b.size }
