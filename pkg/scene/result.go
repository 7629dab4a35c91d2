package scene

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"time"

	"github.com/matzehuels/wraplayout/pkg/core/wrap"
	"github.com/matzehuels/wraplayout/pkg/element"
	"github.com/matzehuels/wraplayout/pkg/errors"
)

// Item kinds in a [Result].
const (
	KindText = "text"
	KindBox  = "box"
)

// Result is a computed layout. Widths are in layout units; an unconstrained
// layout has AvailableWidth 0 and Unconstrained set, since JSON cannot
// carry an infinite number.
type Result struct {
	ID                string       `json:"id,omitempty" bson:"_id,omitempty"`
	AvailableWidth    float64      `json:"available_width" bson:"available_width"`
	Unconstrained     bool         `json:"unconstrained,omitempty" bson:"unconstrained,omitempty"`
	HorizontalSpacing float64      `json:"horizontal_spacing" bson:"horizontal_spacing"`
	VerticalSpacing   float64      `json:"vertical_spacing" bson:"vertical_spacing"`
	Size              wrap.Size    `json:"size" bson:"size"`
	Lines             []ResultLine `json:"lines" bson:"lines"`
	Items             []Placed     `json:"items" bson:"items"`
	CreatedAt         time.Time    `json:"created_at,omitzero" bson:"created_at,omitempty"`
}

// ResultLine is one line of a result, listing its item ids in order.
type ResultLine struct {
	Width  float64  `json:"width" bson:"width"`
	Height float64  `json:"height" bson:"height"`
	Items  []string `json:"items" bson:"items"`
}

// Placed is the final frame of one item.
type Placed struct {
	ID       string  `json:"id" bson:"id"`
	Kind     string  `json:"kind" bson:"kind"`
	Label    string  `json:"label,omitempty" bson:"label,omitempty"`
	Line     int     `json:"line" bson:"line"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Width    float64 `json:"width" bson:"width"`
	Height   float64 `json:"height" bson:"height"`
	Baseline float64 `json:"baseline,omitempty" bson:"baseline,omitempty"`
	Font     string  `json:"font,omitempty" bson:"font,omitempty"`
	FontSize float64 `json:"font_size,omitempty" bson:"font_size,omitempty"`
}

// Frame returns the item's frame.
func (p Placed) Frame() wrap.Frame {
	return wrap.Frame{
		Origin: wrap.Point{X: p.X, Y: p.Y},
		Size:   wrap.Size{Width: p.Width, Height: p.Height},
	}
}

// NewResult collects a placed layout into a Result. The recorders must be
// the elements plan was built from, already placed.
func NewResult(plan wrap.Plan, cfg wrap.Config, rs []element.Recorder) (Result, error) {
	if err := plan.Matches(element.Elements(rs)); err != nil {
		return Result{}, err
	}

	size, err := plan.Size(cfg.VerticalSpacing)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		AvailableWidth:    plan.AvailableWidth,
		HorizontalSpacing: plan.HorizontalSpacing,
		VerticalSpacing:   cfg.VerticalSpacing,
		Size:              size,
		Lines:             make([]ResultLine, len(plan.Lines)),
		Items:             make([]Placed, 0, len(rs)),
	}
	if math.IsInf(plan.AvailableWidth, 1) {
		res.AvailableWidth = 0
		res.Unconstrained = true
	}

	for li, line := range plan.Lines {
		rl := ResultLine{Width: line.Width, Height: line.Height, Items: make([]string, 0, line.Len())}
		for _, ce := range line.Elements {
			r := rs[ce.Index]
			f, ok := r.Frame()
			if !ok {
				return Result{}, errors.New(errors.ErrCodePrecondition, "item %q was measured but not placed", r.ID())
			}
			rl.Items = append(rl.Items, r.ID())
			res.Items = append(res.Items, placedFor(r, li, f))
		}
		res.Lines[li] = rl
	}
	return res, nil
}

func placedFor(r element.Recorder, line int, f wrap.Frame) Placed {
	p := Placed{
		ID:     r.ID(),
		Kind:   KindBox,
		Line:   line,
		X:      f.Origin.X,
		Y:      f.Origin.Y,
		Width:  f.Size.Width,
		Height: f.Size.Height,
	}
	if t, ok := r.(*element.Text); ok {
		st := t.Style()
		p.Kind = KindText
		p.Label = t.Label()
		p.Baseline = t.Baseline()
		p.Font = st.Font
		p.FontSize = st.FontSize
	}
	return p
}

// Item returns the placed item with the given id.
func (r *Result) Item(id string) (Placed, bool) {
	for _, p := range r.Items {
		if p.ID == id {
			return p, true
		}
	}
	return Placed{}, false
}

// ReadResult decodes a JSON result from r.
func ReadResult(r io.Reader) (Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	ids := make(map[string]bool, len(res.Items))
	for _, p := range res.Items {
		ids[p.ID] = true
	}
	for i, l := range res.Lines {
		for _, id := range l.Items {
			if !ids[id] {
				return Result{}, errors.New(errors.ErrCodeInvalidInput, "line %d references unknown item %q", i, id)
			}
		}
	}
	return res, nil
}

// ReadResultFile reads a JSON result from path.
func ReadResultFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadResult(f)
}

// WriteResult encodes res as indented JSON.
func WriteResult(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return nil
}
