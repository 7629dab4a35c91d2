package wrap

import (
	"fmt"
	"math"
)

// Unconstrained marks a proposal dimension with no limit.
var Unconstrained = math.Inf(1)

// Size is a width/height pair. Measured sizes are finite and non-negative.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a position in the container's coordinate space (Y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Proposal is the box an element is asked to fit into. A dimension equal to
// [Unconstrained] has no limit.
type Proposal struct {
	Width  float64
	Height float64
}

// UnconstrainedProposal proposes no limit in either dimension.
func UnconstrainedProposal() Proposal {
	return Proposal{Width: Unconstrained, Height: Unconstrained}
}

// ProposeWidth proposes a finite width and an unconstrained height.
func ProposeWidth(w float64) Proposal {
	return Proposal{Width: w, Height: Unconstrained}
}

// WidthConstrained reports whether the proposal limits the width.
func (p Proposal) WidthConstrained() bool { return !math.IsInf(p.Width, 1) }

// HeightConstrained reports whether the proposal limits the height.
func (p Proposal) HeightConstrained() bool { return !math.IsInf(p.Height, 1) }

func (p Proposal) String() string {
	return fmt.Sprintf("%s×%s", fmtDim(p.Width), fmtDim(p.Height))
}

func fmtDim(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("%g", v)
}

// Frame is the final rectangle assigned to an element, anchored at its
// top-leading corner.
type Frame struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// MinX returns the left edge.
func (f Frame) MinX() float64 { return f.Origin.X }

// MinY returns the top edge.
func (f Frame) MinY() float64 { return f.Origin.Y }

// MaxX returns the right edge.
func (f Frame) MaxX() float64 { return f.Origin.X + f.Size.Width }

// MaxY returns the bottom edge.
func (f Frame) MaxY() float64 { return f.Origin.Y + f.Size.Height }

// Center returns the midpoint of the frame.
func (f Frame) Center() Point {
	return Point{X: f.Origin.X + f.Size.Width/2, Y: f.Origin.Y + f.Size.Height/2}
}
