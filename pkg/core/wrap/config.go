package wrap

import (
	"github.com/matzehuels/wraplayout/pkg/errors"
)

// Default spacings, in layout units.
const (
	DefaultHorizontalSpacing = 4.0
	DefaultVerticalSpacing   = 4.0
)

// Config holds the spacing of a wrap container. It is fixed at construction.
type Config struct {
	// HorizontalSpacing is the gap between neighbouring elements on a line.
	HorizontalSpacing float64 `json:"horizontal_spacing" toml:"horizontal_spacing" yaml:"horizontal_spacing"`
	// VerticalSpacing is the gap between consecutive lines.
	VerticalSpacing float64 `json:"vertical_spacing" toml:"vertical_spacing" yaml:"vertical_spacing"`
}

// DefaultConfig returns the default spacing of 4 in both directions.
func DefaultConfig() Config {
	return Config{
		HorizontalSpacing: DefaultHorizontalSpacing,
		VerticalSpacing:   DefaultVerticalSpacing,
	}
}

// Validate rejects negative and non-finite spacings with an
// INVALID_CONFIGURATION error.
func (c Config) Validate() error {
	if err := errors.ValidateSpacing("horizontal spacing", c.HorizontalSpacing); err != nil {
		return err
	}
	return errors.ValidateSpacing("vertical spacing", c.VerticalSpacing)
}
