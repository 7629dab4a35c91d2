package cache

import "math"

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout of a scene.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of one rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs that are not part of the scene.
type LayoutKeyOpts struct {
	Width             float64 `json:"width"`
	HorizontalSpacing float64 `json:"hs"`
	VerticalSpacing   float64 `json:"vs"`
}

// ArtifactKeyOpts are the render inputs that are not part of the layout.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Style      string  `json:"style"`
	Scale      float64 `json:"scale,omitempty"`
	Labels     bool    `json:"labels"`
	LineGuides bool    `json:"guides"`
	EmbedFont  bool    `json:"embed_font,omitempty"`
	Columns    int     `json:"cols,omitempty"`
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes the scene hash together with the layout options.
// An unconstrained width is keyed as -1, since JSON has no infinity.
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	if math.IsInf(opts.Width, 1) {
		opts.Width = -1
	}
	return derivedKey("layout", sceneHash, opts)
}

// ArtifactKey hashes the layout hash together with the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return derivedKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
