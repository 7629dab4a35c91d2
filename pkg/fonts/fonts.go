// Package fonts provides the embedded Go fonts used to measure and draw
// text elements.
//
// The font files ship with golang.org/x/image, so text measurement works
// the same everywhere without system fonts. Parsed fonts and faces are
// cached. Faces are not safe for concurrent use; [Measure] and
// [LineMetrics] serialize access to them.
package fonts

import (
	"encoding/base64"
	"sort"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wraplayout/pkg/errors"
)

// Font names accepted by [Face].
const (
	Regular = "regular"
	Bold    = "bold"
	Mono    = "mono"
)

// DefaultName is the font used when a scene does not name one.
const DefaultName = Regular

// DefaultSize is the default font size in points (at 72 DPI, pixels).
const DefaultSize = 14.0

// FontFamily maps font names to CSS font-family values for SVG output.
var FontFamily = map[string]string{
	Regular: "'Go', sans-serif",
	Bold:    "'Go', sans-serif",
	Mono:    "'Go Mono', monospace",
}

var ttf = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
	Mono:    gomono.TTF,
}

// NewFace returns an uncached face owned by the caller, for code that draws
// with it outside this package's lock.
func NewFace(name string, size float64) (font.Face, error) {
	mu.Lock()
	defer mu.Unlock()
	if name == "" {
		name = DefaultName
	}
	if size <= 0 {
		size = DefaultSize
	}
	f, err := parsedLocked(name)
	if err != nil {
		return nil, err
	}
	return newFace(f, name, size)
}

type faceKey struct {
	name string
	size float64
}

var (
	mu     sync.Mutex
	parsed = map[string]*opentype.Font{}
	faces  = map[faceKey]font.Face{}

	b64Mu sync.Mutex
	b64   = map[string]string{}
)

// Names returns the available font names, sorted.
func Names() []string {
	names := make([]string, 0, len(ttf))
	for n := range ttf {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Valid reports whether name is a known font. The empty name is valid and
// means [DefaultName].
func Valid(name string) bool {
	if name == "" {
		return true
	}
	_, ok := ttf[name]
	return ok
}

// Face returns a cached face for the named font at size points.
// An empty name selects [DefaultName]; a non-positive size selects [DefaultSize].
func Face(name string, size float64) (font.Face, error) {
	mu.Lock()
	defer mu.Unlock()
	return faceLocked(name, size)
}

func faceLocked(name string, size float64) (font.Face, error) {
	if name == "" {
		name = DefaultName
	}
	if size <= 0 {
		size = DefaultSize
	}
	key := faceKey{name, size}
	if f, ok := faces[key]; ok {
		return f, nil
	}

	f, err := parsedLocked(name)
	if err != nil {
		return nil, err
	}
	face, err := newFace(f, name, size)
	if err != nil {
		return nil, err
	}
	faces[key] = face
	return face, nil
}

func parsedLocked(name string) (*opentype.Font, error) {
	if f, ok := parsed[name]; ok {
		return f, nil
	}
	data, ok := ttf[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown font %q (available: %v)", name, Names())
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse font %s", name)
	}
	parsed[name] = f
	return f, nil
}

func newFace(f *opentype.Font, name string, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create face %s@%g", name, size)
	}
	return face, nil
}

// Metrics describes the vertical extent of a face, in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64
	Height  float64
}

// Measure returns the advance width of s in the named font.
func Measure(name string, size float64, s string) (float64, error) {
	mu.Lock()
	defer mu.Unlock()
	face, err := faceLocked(name, size)
	if err != nil {
		return 0, err
	}
	return toFloat(font.MeasureString(face, s)), nil
}

// LineMetrics returns the ascent, descent and line height of the named font.
func LineMetrics(name string, size float64) (Metrics, error) {
	mu.Lock()
	defer mu.Unlock()
	face, err := faceLocked(name, size)
	if err != nil {
		return Metrics{}, err
	}
	m := face.Metrics()
	return Metrics{
		Ascent:  toFloat(m.Ascent),
		Descent: toFloat(m.Descent),
		Height:  toFloat(m.Ascent + m.Descent),
	}, nil
}

// TTF returns the raw font file for name, or nil if it is unknown.
func TTF(name string) []byte {
	if name == "" {
		name = DefaultName
	}
	return ttf[name]
}

// TTFBase64 returns the font file as base64, for embedding in SVG
// @font-face rules. The result is cached after the first call.
func TTFBase64(name string) string {
	if name == "" {
		name = DefaultName
	}
	b64Mu.Lock()
	defer b64Mu.Unlock()
	if s, ok := b64[name]; ok {
		return s
	}
	data := ttf[name]
	if data == nil {
		return ""
	}
	s := base64.StdEncoding.EncodeToString(data)
	b64[name] = s
	return s
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
