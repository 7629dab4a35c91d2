package wrap

import (
	"slices"

	"github.com/matzehuels/wraplayout/pkg/errors"
)

// Build measures elements and packs them greedily into lines that fit
// within availableWidth.
//
// Each element is measured once against (availableWidth, unconstrained).
// It joins the current line unless line width + spacing + element width
// reaches availableWidth; in that case, provided the current line is not
// empty, the line is closed and the element starts a new one. The final
// line is always closed. No element is dropped, duplicated or reordered.
//
// Build fails with INVALID_CONFIGURATION for a negative or NaN width or an
// invalid spacing, and with INVALID_MEASUREMENT when an element reports a
// negative or non-finite size.
func Build(elements []Element, availableWidth, horizontalSpacing float64) (Plan, error) {
	if err := errors.ValidateWidth(availableWidth); err != nil {
		return Plan{}, err
	}
	if err := errors.ValidateSpacing("horizontal spacing", horizontalSpacing); err != nil {
		return Plan{}, err
	}

	plan := Plan{
		AvailableWidth:    availableWidth,
		HorizontalSpacing: horizontalSpacing,
		elements:          slices.Clone(elements),
		built:             true,
	}
	if len(elements) == 0 {
		return plan, nil
	}

	proposal := ProposeWidth(availableWidth)
	var current Line

	for i, el := range elements {
		size := el.Measure(proposal)
		if err := errors.ValidateSize(size.Width, size.Height); err != nil {
			return Plan{}, errors.New(errors.ErrCodeInvalidMeasurement,
				"element %d: %s", i, errors.UserMessage(err))
		}

		if current.breaksBefore(size.Width, availableWidth, horizontalSpacing) {
			plan.Lines = append(plan.Lines, current)
			current = Line{}
		}
		current.append(CalculatedElement{Element: el, Size: size, Index: i}, horizontalSpacing)
	}

	plan.Lines = append(plan.Lines, current)
	return plan, nil
}
