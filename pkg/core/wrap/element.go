package wrap

// Element is anything the layout can measure and place. The layout never
// creates or destroys elements; it only reads their size and positions them.
type Element interface {
	// Measure returns the element's intrinsic size for the proposed box.
	// The result must be finite and non-negative.
	Measure(p Proposal) Size

	// Place assigns the element its final frame, anchored at origin.
	Place(origin Point, size Size)
}

// MeasureFunc adapts a measure function and a place function into an Element.
// Either function may be nil.
type MeasureFunc struct {
	MeasureFn func(Proposal) Size
	PlaceFn   func(Point, Size)
}

// Measure calls MeasureFn, returning a zero size when it is nil.
func (f *MeasureFunc) Measure(p Proposal) Size {
	if f.MeasureFn == nil {
		return Size{}
	}
	return f.MeasureFn(p)
}

// Place calls PlaceFn when it is set.
func (f *MeasureFunc) Place(origin Point, size Size) {
	if f.PlaceFn != nil {
		f.PlaceFn(origin, size)
	}
}

// CalculatedElement is an element together with the size measured for it
// during a measurement pass. Index is its position in the input sequence.
type CalculatedElement struct {
	Element Element
	Size    Size
	Index   int
}
