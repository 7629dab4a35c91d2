// Package wrap implements a greedy flow ("wrap") layout.
//
// # Overview
//
// Given an ordered sequence of [Element] values and an available width, the
// package packs elements left to right into [Line] values, starting a new
// line whenever the next element would not fit. The result is a [Plan]: the
// frozen line structure of one measurement pass. A later placement pass
// replays the plan and assigns every element its final frame without
// measuring anything again.
//
//	plan, err := wrap.Build(elements, 200, 4)
//	if err != nil {
//	    return err
//	}
//	size, err := plan.Size(16)
//	...
//	placements, err := wrap.Apply(plan, wrap.Point{}, 16)
//
// # Accounting
//
// Horizontal spacing is accounted eagerly: once a line holds at least one
// element, the next element is tested against line width + spacing. An
// element that would end exactly at the available width wraps (the test is
// >=, not >). A line's [Line.Width] never includes trailing spacing.
//
// An empty line always accepts the next element, so an element wider than
// the available width gets a line of its own and the build always
// terminates. An available width of zero therefore puts every element on
// its own line; [Unconstrained] puts everything on one line.
//
// An empty element sequence produces a plan with no lines and a size of
// zero.
//
// # Two-pass container
//
// Host frameworks that separate measurement from placement use [Layout],
// which owns exactly one plan. [Layout.SizeThatFits] rebuilds it from
// scratch and [Layout.PlaceSubviews] replays it. Placing with an element
// sequence or a proposed width other than the ones last measured is a
// contract violation and fails with an [errors.ErrCodePrecondition] error.
//
// # Errors
//
// Configuration (negative or non-finite spacing, negative or NaN width) and
// measurement problems (negative or non-finite sizes) are rejected rather
// than clamped. Every entry point that takes a spacing validates it,
// including [Plan.Size] and [Apply].
//
// [errors.ErrCodePrecondition]: github.com/matzehuels/wraplayout/pkg/errors
package wrap
