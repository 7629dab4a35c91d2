package pipeline

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wraplayout/pkg/cache"
	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// boxScene is the eight-box scene used across the layout tests.
func boxScene() *scene.Scene {
	widths := []float64{40, 50, 30, 60, 20, 70, 10, 35}
	s := &scene.Scene{
		Width:             scene.Float(200),
		HorizontalSpacing: scene.Float(4),
		VerticalSpacing:   scene.Float(16),
	}
	for i, w := range widths {
		s.Items = append(s.Items, scene.Item{ID: string(rune('a' + i)), Width: w, Height: 20})
	}
	return s
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"dot", false},
		{"plan", false},
		{"txt", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"outline", false},
		{"handdrawn", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestSetRenderDefaults(t *testing.T) {
	var o Options
	o.SetRenderDefaults()
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", o.Style, DefaultStyle)
	}
	if o.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", o.Scale, DefaultScale)
	}
	if o.Columns != DefaultColumns {
		t.Errorf("Columns = %d, want %d", o.Columns, DefaultColumns)
	}
	if o.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"empty", Options{}, ""},
		{"zero width", Options{Width: scene.Float(0)}, ""},
		{"unconstrained", Options{Width: scene.Float(math.Inf(1))}, ""},
		{"negative width", Options{Width: scene.Float(-1)}, errors.ErrCodeInvalidConfiguration},
		{"nan width", Options{Width: scene.Float(math.NaN())}, errors.ErrCodeInvalidConfiguration},
		{"negative hspacing", Options{HorizontalSpacing: scene.Float(-4)}, errors.ErrCodeInvalidConfiguration},
		{"infinite vspacing", Options{VerticalSpacing: scene.Float(math.Inf(1))}, errors.ErrCodeInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("ValidateForLayout() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestValidateForRender(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"bad format", Options{Formats: []string{"gif"}}, true},
		{"bad style", Options{Style: "fancy"}, true},
		{"negative scale", Options{Scale: -1}, true},
		{"negative columns", Options{Columns: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForRender() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		FormatSVG:  ".svg",
		FormatPNG:  ".png",
		FormatPlan: ".plan.svg",
		FormatTXT:  ".txt",
	}
	for format, want := range tests {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestPrepareDoesNotModifyScene(t *testing.T) {
	s := boxScene()
	p := Prepare(s, Options{Width: scene.Float(100)})
	if *s.Width != 200 {
		t.Errorf("original width changed to %v", *s.Width)
	}
	if *p.Width != 100 {
		t.Errorf("prepared width = %v, want 100", *p.Width)
	}
	p.Items[0].Width = 999
	if s.Items[0].Width == 999 {
		t.Error("prepared scene shares items with original")
	}
}

func TestHashSceneIgnoresLayoutOptions(t *testing.T) {
	a := boxScene()
	b := boxScene()
	b.Width = scene.Float(80)
	b.HorizontalSpacing = nil
	if HashScene(a) != HashScene(b) {
		t.Error("hash should not depend on width or spacing")
	}
	b.Items[0].Width++
	if HashScene(a) == HashScene(b) {
		t.Error("hash should depend on items")
	}
}

func TestComputeLayout(t *testing.T) {
	res, err := ComputeLayout(context.Background(), boxScene(), Options{})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if res.Size.Width != 192 || res.Size.Height != 56 {
		t.Errorf("size = %+v, want {192 56}", res.Size)
	}
	if len(res.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(res.Lines))
	}
	if got := strings.Join(res.Lines[1].Items, ","); got != "e,f,g,h" {
		t.Errorf("second line = %s, want e,f,g,h", got)
	}

	wantX := []float64{0, 44, 98, 132, 0, 24, 98, 112}
	for i, p := range res.Items {
		if p.X != wantX[i] {
			t.Errorf("item %s x = %v, want %v", p.ID, p.X, wantX[i])
		}
	}
	if p, _ := res.Item("e"); p.Y != 36 {
		t.Errorf("item e y = %v, want 36", p.Y)
	}
}

func TestComputeLayoutOverrides(t *testing.T) {
	res, err := ComputeLayout(context.Background(), boxScene(), Options{Width: scene.Float(0)})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if len(res.Lines) != 8 {
		t.Errorf("zero width: lines = %d, want one per item", len(res.Lines))
	}

	res, err = ComputeLayout(context.Background(), boxScene(), Options{Width: scene.Float(math.Inf(1))})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if len(res.Lines) != 1 || !res.Unconstrained {
		t.Errorf("unconstrained: lines = %d, unconstrained = %v", len(res.Lines), res.Unconstrained)
	}
}

func TestComputeLayoutEmpty(t *testing.T) {
	res, err := ComputeLayout(context.Background(), &scene.Scene{}, Options{})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	if len(res.Lines) != 0 || res.Size.Width != 0 || res.Size.Height != 0 {
		t.Errorf("empty scene: %+v", res)
	}
}

func TestComputeLayoutErrors(t *testing.T) {
	bad := boxScene()
	bad.Items[2].Height = math.NaN()

	tests := []struct {
		name string
		s    *scene.Scene
		opts Options
		code errors.Code
	}{
		{"negative spacing", boxScene(), Options{HorizontalSpacing: scene.Float(-1)}, errors.ErrCodeInvalidConfiguration},
		{"bad measurement", bad, Options{}, errors.ErrCodeInvalidScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLayout(context.Background(), tt.s, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestComputeLayoutCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ComputeLayout(ctx, boxScene(), Options{}); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestRenderFormats(t *testing.T) {
	res, err := ComputeLayout(context.Background(), boxScene(), Options{})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}

	artifacts, err := Render(context.Background(), res, Options{
		Formats: []string{FormatSVG, FormatPNG, FormatJSON, FormatDOT, FormatTXT},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact missing <svg")
	}
	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact missing PNG signature")
	}
	if !bytes.Contains(artifacts[FormatDOT], []byte("digraph")) {
		t.Error("dot artifact missing digraph")
	}
	if len(artifacts[FormatTXT]) == 0 {
		t.Error("txt artifact is empty")
	}

	back, err := scene.ReadResult(bytes.NewReader(artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("ReadResult: %v", err)
	}
	if back.Size != res.Size {
		t.Errorf("json round trip size = %+v, want %+v", back.Size, res.Size)
	}
}

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, boxScene(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}
	if first.Stats.ElementCount != 8 || first.Stats.LineCount != 2 {
		t.Errorf("stats = %+v", first.Stats)
	}

	second, err := r.Execute(ctx, boxScene(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
	if second.Layout.Size != first.Layout.Size {
		t.Errorf("cached size = %+v, want %+v", second.Layout.Size, first.Layout.Size)
	}

	// A different width is a different layout.
	opts.Width = scene.Float(100)
	third, err := r.Execute(ctx, boxScene(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("changed width should miss the layout cache")
	}

	opts.Width = nil
	opts.Refresh = true
	fourth, err := r.Execute(ctx, boxScene(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Error("refresh should bypass cache reads")
	}
}

func TestRunnerNilScene(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Execute(nil) error = %v, want INVALID_INPUT", err)
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), boxScene(), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute() error = %v, want INVALID_FORMAT", err)
	}
}
