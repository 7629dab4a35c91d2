package wrap

import (
	"math"
	"testing"

	"github.com/matzehuels/wraplayout/pkg/errors"
)

func TestPlanSize(t *testing.T) {
	tests := []struct {
		name  string
		lines []Line
		vs    float64
		want  Size
	}{
		{
			name: "no lines",
			vs:   16,
			want: Size{},
		},
		{
			name:  "one line has no vertical spacing",
			lines: []Line{{Width: 120, Height: 30}},
			vs:    16,
			want:  Size{Width: 120, Height: 30},
		},
		{
			name:  "spacing only between lines",
			lines: []Line{{Width: 120, Height: 30}, {Width: 180, Height: 10}, {Width: 20, Height: 5}},
			vs:    10,
			want:  Size{Width: 180, Height: 65},
		},
		{
			name:  "empty line contributes zero",
			lines: []Line{{}},
			vs:    10,
			want:  Size{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Plan{Lines: tt.lines}
			if got := sizeOf(t, p, tt.vs); got != tt.want {
				t.Errorf("Size() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlanMatches(t *testing.T) {
	els, _ := boxes(10, 10, 20, 30)
	plan, err := Build(els, 100, 4)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := plan.Matches(els); err != nil {
		t.Errorf("Matches(same) error = %v", err)
	}

	copied := append([]Element(nil), els...)
	if err := plan.Matches(copied); err != nil {
		t.Errorf("Matches(copy of same elements) error = %v", err)
	}

	others, _ := boxes(10, 10, 20, 30)
	tests := []struct {
		name     string
		plan     Plan
		elements []Element
	}{
		{"never built", Plan{}, els},
		{"fewer elements", plan, els[:2]},
		{"more elements", plan, append(append([]Element(nil), els...), newBox("x", 1, 1))},
		{"foreign elements", plan, others},
		{"reordered", plan, []Element{els[1], els[0], els[2]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Matches(tt.elements)
			if !errors.Is(err, errors.ErrCodePrecondition) {
				t.Errorf("Matches() error = %v, want %s", err, errors.ErrCodePrecondition)
			}
		})
	}
}

// valueElement is not comparable; identity cannot be checked for it.
type valueElement struct {
	tags []string
}

func (valueElement) Measure(Proposal) Size { return Size{Width: 1, Height: 1} }
func (valueElement) Place(Point, Size)     {}

func TestPlanMatchesNonComparable(t *testing.T) {
	els := []Element{valueElement{tags: []string{"a"}}}
	plan, err := Build(els, 10, 0)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := plan.Matches([]Element{valueElement{}}); err != nil {
		t.Errorf("Matches() error = %v, want nil for same non-comparable type", err)
	}
	if err := plan.Matches([]Element{newBox("a", 1, 1)}); err == nil {
		t.Error("Matches() should fail for a different element type")
	}
}

func TestPlanSizeInvalidSpacing(t *testing.T) {
	p := Plan{Lines: []Line{{Width: 200, Height: 20}, {Width: 150, Height: 20}}}
	for _, vs := range []float64{math.NaN(), -1, -50, math.Inf(1), math.Inf(-1)} {
		t.Run(fmtDim(vs), func(t *testing.T) {
			got, err := p.Size(vs)
			if !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
				t.Fatalf("Size(%v) error = %v, want %s", vs, err, errors.ErrCodeInvalidConfiguration)
			}
			if got != (Size{}) {
				t.Errorf("Size(%v) = %+v, want zero on error", vs, got)
			}
		})
	}
}

// boxedElement is comparable by type but holds an interface field whose
// dynamic value is a slice, so == on two of them would panic.
type boxedElement struct {
	payload any
	b       *box
}

func (e boxedElement) Measure(p Proposal) Size { return e.b.Measure(p) }
func (e boxedElement) Place(o Point, s Size)   { e.b.Place(o, s) }

func TestPlanMatchesUncomparableField(t *testing.T) {
	b := newBox("a", 10, 10)
	els := []Element{boxedElement{payload: []int{1}, b: b}}
	plan, err := Build(els, 100, 4)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := plan.Matches(els); err != nil {
		t.Errorf("Matches(same) error = %v", err)
	}
	if err := plan.Matches([]Element{boxedElement{payload: "x", b: b}}); err != nil {
		t.Errorf("Matches() error = %v, want nil for an element that cannot be compared", err)
	}

	l, _ := New(DefaultConfig())
	if _, err := l.SizeThatFits(ProposeWidth(100), els); err != nil {
		t.Fatal(err)
	}
	if _, err := l.PlaceSubviews(Point{}, ProposeWidth(100), els); err != nil {
		t.Errorf("PlaceSubviews() error = %v", err)
	}

	valued := []Element{boxedElement{payload: 1, b: b}}
	plan, err = Build(valued, 100, 4)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := plan.Matches([]Element{boxedElement{payload: 2, b: b}}); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("Matches() error = %v, want %s for a different comparable value", err, errors.ErrCodePrecondition)
	}
}
