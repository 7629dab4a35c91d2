// Package raster renders layout results as PNG images.
//
// Items are drawn as filled rectangles with a one-pixel border; text items
// get their label drawn with the same Go font that measured them.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/fonts"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// Options configures PNG rendering.
type Options struct {
	// Scale multiplies every coordinate; 2 gives a high-DPI image.
	Scale float64
	// Margin is the space around the content in layout units.
	Margin float64
	// Labels draws text labels.
	Labels bool
	// Outline draws items unfilled.
	Outline bool
}

// DefaultOptions returns scale 2, margin 8, with labels.
func DefaultOptions() Options {
	return Options{Scale: 2, Margin: 8, Labels: true}
}

// MaxPixels bounds the image size to keep a huge layout from exhausting
// memory.
const MaxPixels = 64 << 20

var (
	background = color.RGBA{0xff, 0xff, 0xff, 0xff}
	textFill   = color.RGBA{0xe8, 0xee, 0xf7, 0xff}
	boxFill    = color.RGBA{0xf3, 0xf3, 0xf3, 0xff}
	textBorder = color.RGBA{0x4a, 0x6f, 0xa5, 0xff}
	boxBorder  = color.RGBA{0x88, 0x88, 0x88, 0xff}
	ink        = color.RGBA{0x1b, 0x1f, 0x24, 0xff}
)

// Render draws res as a PNG.
func Render(res scene.Result, opts Options) ([]byte, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	s := opts.Scale
	w := int(math.Ceil((res.Size.Width + 2*opts.Margin) * s))
	h := int(math.Ceil((res.Size.Height + 2*opts.Margin) * s))
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	if w*h > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image of %dx%d pixels exceeds the %d pixel limit", w, h, MaxPixels)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	faces := map[faceKey]font.Face{}
	defer func() {
		for _, f := range faces {
			_ = f.Close()
		}
	}()

	for _, p := range res.Items {
		r := image.Rect(
			px(p.X+opts.Margin, s), px(p.Y+opts.Margin, s),
			px(p.X+p.Width+opts.Margin, s), px(p.Y+p.Height+opts.Margin, s),
		)
		fill, border := boxFill, boxBorder
		if p.Kind == scene.KindText {
			fill, border = textFill, textBorder
		}
		if !opts.Outline {
			draw.Draw(img, r, image.NewUniform(fill), image.Point{}, draw.Src)
		}
		strokeRect(img, r, border)

		if !opts.Labels || p.Kind != scene.KindText || p.Label == "" {
			continue
		}
		key := faceKey{p.Font, p.FontSize * s}
		face, ok := faces[key]
		if !ok {
			var err error
			if face, err = fonts.NewFace(p.Font, key.size); err != nil {
				return nil, err
			}
			faces[key] = face
		}
		d := &font.Drawer{Dst: img, Src: image.NewUniform(ink), Face: face}
		tw := float64(d.MeasureString(p.Label)) / 64
		x := (p.X+opts.Margin)*s + (p.Width*s-tw)/2
		y := (p.Y + opts.Margin + p.Baseline) * s
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
		d.DrawString(p.Label)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type faceKey struct {
	name string
	size float64
}

func px(v, scale float64) int {
	return int(math.Round(v * scale))
}

func strokeRect(img draw.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	u := image.NewUniform(c)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
