package wrap

import "github.com/matzehuels/wraplayout/pkg/errors"

// Placement records the frame assigned to one element.
type Placement struct {
	Element Element
	Index   int
	Frame   Frame
}

// Apply replays plan, placing every element relative to origin. Elements
// are given the size measured during the plan's measurement pass; nothing
// is measured here. Horizontal spacing comes from the plan, so geometry
// always matches the line breaks.
//
// Apply calls Place on each element in input order and returns the same
// placements. A negative or non-finite verticalSpacing is rejected with an
// INVALID_CONFIGURATION error before anything is placed.
func Apply(plan Plan, origin Point, verticalSpacing float64) ([]Placement, error) {
	if err := errors.ValidateSpacing("vertical spacing", verticalSpacing); err != nil {
		return nil, err
	}
	placements := make([]Placement, 0, plan.ElementCount())

	var cx, cy float64
	for _, line := range plan.Lines {
		for _, e := range line.Elements {
			frame := Frame{
				Origin: Point{X: origin.X + cx, Y: origin.Y + cy},
				Size:   e.Size,
			}
			e.Element.Place(frame.Origin, frame.Size)
			placements = append(placements, Placement{Element: e.Element, Index: e.Index, Frame: frame})

			cx += e.Size.Width + plan.HorizontalSpacing
		}
		cx = 0
		cy += line.Height + verticalSpacing
	}
	return placements, nil
}
