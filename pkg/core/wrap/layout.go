package wrap

import "github.com/matzehuels/wraplayout/pkg/errors"

// ComputeLayout is the measurement pass as a pure function: it validates
// cfg and builds a fresh plan for elements at the given width.
func ComputeLayout(elements []Element, width float64, cfg Config) (Plan, error) {
	if err := cfg.Validate(); err != nil {
		return Plan{}, err
	}
	return Build(elements, width, cfg.HorizontalSpacing)
}

// ApplyLayout is the placement pass as a pure function over an explicit
// plan. It validates cfg like [ComputeLayout] does.
func ApplyLayout(plan Plan, origin Point, cfg Config) ([]Placement, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return Apply(plan, origin, cfg.VerticalSpacing)
}

// Layout is a wrap container for hosts that call measurement and placement
// separately. It owns a single plan, rebuilt on every [Layout.SizeThatFits]
// and read by the following [Layout.PlaceSubviews].
//
// A Layout is not safe for concurrent use. Independent Layout values share
// no state.
type Layout struct {
	cfg  Config
	plan Plan
}

// New creates a container with the given spacing.
// It returns an INVALID_CONFIGURATION error for negative or non-finite spacing.
func New(cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Layout{cfg: cfg}, nil
}

// Config returns the container's spacing.
func (l *Layout) Config() Config { return l.cfg }

// Plan returns the plan from the last measurement pass.
func (l *Layout) Plan() Plan { return l.plan }

// SizeThatFits discards the previous plan, builds a new one for elements at
// the proposed width and returns the content size. An unconstrained width
// packs everything on one line. On error the container is left without a
// plan.
func (l *Layout) SizeThatFits(p Proposal, elements []Element) (Size, error) {
	l.plan = Plan{}

	plan, err := Build(elements, p.Width, l.cfg.HorizontalSpacing)
	if err != nil {
		return Size{}, err
	}
	l.plan = plan
	return plan.Size(l.cfg.VerticalSpacing)
}

// PlaceSubviews places elements starting at origin using the plan built by
// the last SizeThatFits. The proposal and element sequence must be the ones
// that were measured; otherwise a PRECONDITION_FAILED error is returned and
// nothing is placed.
func (l *Layout) PlaceSubviews(origin Point, p Proposal, elements []Element) ([]Placement, error) {
	if err := l.plan.Matches(elements); err != nil {
		return nil, err
	}
	if p.Width != l.plan.AvailableWidth {
		return nil, errors.New(errors.ErrCodePrecondition,
			"layout plan was built for width %s, placing at %s",
			fmtDim(l.plan.AvailableWidth), fmtDim(p.Width))
	}
	return Apply(l.plan, origin, l.cfg.VerticalSpacing)
}
