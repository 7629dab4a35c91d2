package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/observability"
	"github.com/matzehuels/wraplayout/pkg/render/plandot"
	"github.com/matzehuels/wraplayout/pkg/render/raster"
	"github.com/matzehuels/wraplayout/pkg/render/svg"
	"github.com/matzehuels/wraplayout/pkg/render/term"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, res scene.Result, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(ctx, res, format, opts)
		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, res scene.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg.Render(res, svgOptions(opts)...), nil
	case FormatPNG:
		return raster.Render(res, raster.Options{
			Scale:   opts.Scale,
			Margin:  svg.DefaultMargin,
			Labels:  !opts.NoLabels,
			Outline: opts.Style == StyleOutline,
		})
	case FormatJSON:
		var buf bytes.Buffer
		if err := scene.WriteResult(&buf, res); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(plandot.ToDOT(res, plandot.Options{Detailed: true})), nil
	case FormatPlan:
		return plandot.RenderSVG(ctx, plandot.ToDOT(res, plandot.Options{}))
	case FormatTXT:
		return []byte(term.Render(res, term.Options{Columns: opts.Columns, Summary: true})), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// svgOptions builds SVG rendering options.
func svgOptions(opts Options) []svg.Option {
	out := []svg.Option{svg.WithLabels(!opts.NoLabels)}
	switch opts.Style {
	case StyleOutline:
		out = append(out, svg.WithStyle(svg.Outline{}))
	default:
		out = append(out, svg.WithStyle(svg.Simple{}))
	}
	if opts.LineGuides {
		out = append(out, svg.WithLineGuides())
	}
	if opts.EmbedFont {
		out = append(out, svg.WithEmbeddedFont())
	}
	return out
}
