package scene

import (
	"math"

	"github.com/matzehuels/wraplayout/pkg/core/wrap"
	"github.com/matzehuels/wraplayout/pkg/element"
	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/fonts"
)

// Scene is a layout request.
type Scene struct {
	Width             *float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	HorizontalSpacing *float64 `json:"horizontal_spacing,omitempty" yaml:"horizontal_spacing,omitempty" toml:"horizontal_spacing,omitempty"`
	VerticalSpacing   *float64 `json:"vertical_spacing,omitempty" yaml:"vertical_spacing,omitempty" toml:"vertical_spacing,omitempty"`
	Font              string   `json:"font,omitempty" yaml:"font,omitempty" toml:"font,omitempty"`
	FontSize          float64  `json:"font_size,omitempty" yaml:"font_size,omitempty" toml:"font_size,omitempty"`
	Padding           *float64 `json:"padding,omitempty" yaml:"padding,omitempty" toml:"padding,omitempty"`
	Items             []Item   `json:"items" yaml:"items" toml:"items"`
}

// Item is one element of a scene.
type Item struct {
	ID     string  `json:"id" yaml:"id" toml:"id"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
}

// IsText reports whether the item is a text label.
func (it Item) IsText() bool { return it.Label != "" }

// AvailableWidth returns the scene width, or [wrap.Unconstrained] when it
// is omitted.
func (s *Scene) AvailableWidth() float64 {
	if s.Width == nil {
		return wrap.Unconstrained
	}
	return *s.Width
}

// Config returns the spacing of the scene with defaults applied.
func (s *Scene) Config() wrap.Config {
	cfg := wrap.DefaultConfig()
	if s.HorizontalSpacing != nil {
		cfg.HorizontalSpacing = *s.HorizontalSpacing
	}
	if s.VerticalSpacing != nil {
		cfg.VerticalSpacing = *s.VerticalSpacing
	}
	return cfg
}

// TextStyle returns the style used for the scene's text items.
func (s *Scene) TextStyle() element.TextStyle {
	st := element.TextStyle{
		Font:     s.Font,
		FontSize: s.FontSize,
		Padding:  element.DefaultPadding,
	}
	if s.Padding != nil {
		st.Padding = *s.Padding
	}
	return st
}

// Validate checks the scene without measuring anything. It returns an
// INVALID_SCENE error for malformed items and an INVALID_CONFIGURATION
// error for bad width or spacing.
func (s *Scene) Validate() error {
	if s.Width != nil {
		if err := errors.ValidateWidth(*s.Width); err != nil {
			return err
		}
	}
	if err := s.Config().Validate(); err != nil {
		return err
	}
	if s.Padding != nil {
		if err := errors.ValidateSpacing("padding", *s.Padding); err != nil {
			return err
		}
	}
	if !fonts.Valid(s.Font) {
		return errors.New(errors.ErrCodeInvalidScene, "unknown font %q (available: %v)", s.Font, fonts.Names())
	}
	if s.FontSize < 0 || math.IsNaN(s.FontSize) || math.IsInf(s.FontSize, 0) {
		return errors.New(errors.ErrCodeInvalidScene, "font size must be a non-negative number, got %v", s.FontSize)
	}

	seen := make(map[string]bool, len(s.Items))
	for i, it := range s.Items {
		if err := errors.ValidateID(it.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "item %d", i)
		}
		if seen[it.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate item id %q", it.ID)
		}
		seen[it.ID] = true

		if it.IsText() {
			if it.Width != 0 || it.Height != 0 {
				return errors.New(errors.ErrCodeInvalidScene, "item %q: set either label or width/height, not both", it.ID)
			}
			continue
		}
		if err := errors.ValidateSize(it.Width, it.Height); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "item %q", it.ID)
		}
	}
	return nil
}

// Elements validates the scene and builds one element per item, in order.
func (s *Scene) Elements() ([]element.Recorder, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	style := s.TextStyle()
	out := make([]element.Recorder, 0, len(s.Items))
	for _, it := range s.Items {
		if !it.IsText() {
			out = append(out, element.NewBox(it.ID, it.Width, it.Height))
			continue
		}
		t, err := element.NewText(it.ID, it.Label, style)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "item %q", it.ID)
		}
		out = append(out, t)
	}
	return out, nil
}

// Float returns a pointer to v, for the optional scene fields.
func Float(v float64) *float64 { return &v }
