package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateSpacing checks that a spacing value is finite and non-negative.
// name is used in the message (e.g. "horizontal spacing").
func ValidateSpacing(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfiguration, "%s must be finite, got %v", name, v)
	}
	if v < 0 {
		return New(ErrCodeInvalidConfiguration, "%s must be non-negative, got %v", name, v)
	}
	return nil
}

// ValidateWidth checks an available width. Zero is valid (every element
// gets its own line) and +Inf means unconstrained. NaN, -Inf and negative
// values are rejected.
func ValidateWidth(v float64) error {
	if math.IsNaN(v) {
		return New(ErrCodeInvalidConfiguration, "available width must not be NaN")
	}
	if v < 0 {
		return New(ErrCodeInvalidConfiguration, "available width must be non-negative, got %v", v)
	}
	return nil
}

// ValidateSize checks that both components of a measured size are finite
// and non-negative.
func ValidateSize(width, height float64) error {
	for _, c := range [...]struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return New(ErrCodeInvalidMeasurement, "measured %s must be finite, got %v", c.name, c.v)
		}
		if c.v < 0 {
			return New(ErrCodeInvalidMeasurement, "measured %s must be non-negative, got %v", c.name, c.v)
		}
	}
	return nil
}

// ValidateID validates an element identifier from a scene file.
//
// The rules are intentionally conservative since IDs end up in SVG element
// ids, DOT node names and cache keys:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - No control characters or whitespace
//   - No quotes or angle brackets
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScene, "item id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidScene, "item id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidScene, "item id %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, `"'<>&`) {
		return New(ErrCodeInvalidScene, "item id %q contains invalid characters", id)
	}
	return nil
}
