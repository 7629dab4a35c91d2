// Package pipeline provides the layout pipeline shared by the CLI and the
// API server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: measure the scene's items, build the line plan, place every
//     item (see [ComputeLayout])
//  2. Render: produce artifacts from the layout result (see [Render])
//
// Each stage can run on its own. A [Runner] adds caching around both.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, sc, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wraplayout/pkg/cache"
	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPlan = "plan"
	FormatTXT  = "txt"
)

// Style constants.
const (
	StyleSimple  = "simple"
	StyleOutline = "outline"
)

// DefaultStyle is the default visual style.
const DefaultStyle = StyleSimple

// DefaultScale is the default PNG scale.
const DefaultScale = 2.0

// DefaultColumns is the default width of text output.
const DefaultColumns = 80

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatPlan: true,
	FormatTXT:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleSimple:  true,
	StyleOutline: true,
}

// Extension returns the file extension used for an artifact format.
func Extension(format string) string {
	if format == FormatPlan {
		return ".plan.svg"
	}
	return "." + format
}

// ContentType returns the MIME type of an artifact format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatPlan:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "text/plain; charset=utf-8"
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. Layout overrides
// are pointers so that zero can be told apart from unset.
type Options struct {
	// Layout overrides, applied on top of the scene
	Width             *float64 `json:"width,omitempty"`
	HorizontalSpacing *float64 `json:"horizontal_spacing,omitempty"`
	VerticalSpacing   *float64 `json:"vertical_spacing,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	NoLabels   bool     `json:"no_labels,omitempty"`
	LineGuides bool     `json:"line_guides,omitempty"`
	EmbedFont  bool     `json:"embed_font,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Columns    int      `json:"columns,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SceneHash is the content hash of the scene's items and text style.
	SceneHash string

	// Layout is the computed layout.
	Layout scene.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ElementCount int
	LineCount    int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(sortedKeys(ValidFormats), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: %s)", style, strings.Join(sortedKeys(ValidStyles), ", "))
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates the layout overrides and sets defaults.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width != nil {
		if err := errors.ValidateWidth(*o.Width); err != nil {
			return err
		}
	}
	if o.HorizontalSpacing != nil {
		if err := errors.ValidateSpacing("horizontal spacing", *o.HorizontalSpacing); err != nil {
			return err
		}
	}
	if o.VerticalSpacing != nil {
		if err := errors.ValidateSpacing("vertical spacing", *o.VerticalSpacing); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "columns must be positive, got %d", o.Columns)
	}
	return ValidateStyle(o.Style)
}

// Validate runs both layout and render validation.
func (o *Options) Validate() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutKeyOpts returns cache key options for a prepared scene.
func LayoutKeyOpts(s *scene.Scene) cache.LayoutKeyOpts {
	cfg := s.Config()
	return cache.LayoutKeyOpts{
		Width:             s.AvailableWidth(),
		HorizontalSpacing: cfg.HorizontalSpacing,
		VerticalSpacing:   cfg.VerticalSpacing,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Labels: !o.NoLabels,
	}
	switch format {
	case FormatSVG:
		k.LineGuides = o.LineGuides
		k.EmbedFont = o.EmbedFont
	case FormatPNG:
		k.Scale = o.Scale
	case FormatTXT:
		k.Columns = o.Columns
	}
	return k
}
