package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/wraplayout/pkg/cache"
	"github.com/matzehuels/wraplayout/pkg/core/wrap"
	"github.com/matzehuels/wraplayout/pkg/element"
	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/observability"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// =============================================================================
// Layout
// =============================================================================

// Prepare returns a copy of s with the layout overrides of opts applied.
// The input scene is not modified.
func Prepare(s *scene.Scene, opts Options) *scene.Scene {
	c := *s
	c.Items = append([]scene.Item(nil), s.Items...)
	if opts.Width != nil {
		c.Width = scene.Float(*opts.Width)
	}
	if opts.HorizontalSpacing != nil {
		c.HorizontalSpacing = scene.Float(*opts.HorizontalSpacing)
	}
	if opts.VerticalSpacing != nil {
		c.VerticalSpacing = scene.Float(*opts.VerticalSpacing)
	}
	return &c
}

// HashScene hashes the parts of a scene that are not cache key options:
// the items and the text style. Width and spacing are keyed separately.
func HashScene(s *scene.Scene) string {
	c := *s
	c.Width, c.HorizontalSpacing, c.VerticalSpacing = nil, nil, nil
	data, _ := json.Marshal(c)
	return cache.Hash(data)
}

// HashLayout hashes a layout result, ignoring its storage identity.
func HashLayout(res scene.Result) (string, error) {
	res.ID = ""
	res.CreatedAt = time.Time{}
	data, err := json.Marshal(res)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	return cache.Hash(data), nil
}

// ComputeLayout runs both layout passes over the scene's items: it
// measures them into a line plan at the scene's width, places them from
// the origin and collects the frames into a result.
func ComputeLayout(ctx context.Context, s *scene.Scene, opts Options) (scene.Result, error) {
	if err := ctx.Err(); err != nil {
		return scene.Result{}, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return scene.Result{}, err
	}
	s = Prepare(s, opts)

	rs, err := s.Elements()
	if err != nil {
		return scene.Result{}, err
	}
	els := element.Elements(rs)

	l, err := wrap.New(s.Config())
	if err != nil {
		return scene.Result{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnMeasureStart(ctx, len(els))
	start := time.Now()
	proposal := wrap.ProposeWidth(s.AvailableWidth())
	size, err := l.SizeThatFits(proposal, els)
	hooks.OnMeasureComplete(ctx, l.Plan().LineCount(), time.Since(start), err)
	if err != nil {
		return scene.Result{}, err
	}
	opts.Logger.Debug("measured scene",
		"items", len(els),
		"lines", l.Plan().LineCount(),
		"width", size.Width,
		"height", size.Height)

	start = time.Now()
	placements, err := l.PlaceSubviews(wrap.Point{}, proposal, els)
	if err != nil {
		return scene.Result{}, err
	}
	hooks.OnPlaceComplete(ctx, len(placements), time.Since(start))

	return scene.NewResult(l.Plan(), l.Config(), rs)
}
