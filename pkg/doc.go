// Package pkg provides the libraries behind wraplayout, a greedy flow
// layout engine.
//
// # Overview
//
// wraplayout arranges an ordered sequence of measured elements left to
// right and breaks onto a new line whenever the next element would not fit
// the available width, like words in a paragraph. Layout runs in two
// passes: a measuring pass builds a line plan and reports the total size,
// and a placement pass turns the plan into frames without measuring again.
//
// # Architecture
//
// The typical data flow:
//
//	Scene file (JSON / YAML / TOML)
//	         ↓
//	    [scene] package (decode, validate, build elements)
//	         ↓
//	    [core/wrap] package (measure into a line plan, then place)
//	         ↓
//	    [scene] Result (frames, lines, size)
//	         ↓
//	    [render] packages (SVG, PNG, text, Graphviz)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/wraplayout/pkg/core/wrap"
//	    "github.com/matzehuels/wraplayout/pkg/element"
//	)
//
//	boxes := []wrap.Element{element.NewBox("a", 40, 20), element.NewBox("b", 50, 20)}
//	l, _ := wrap.New(wrap.Config{HorizontalSpacing: 4, VerticalSpacing: 16})
//	p := wrap.ProposeWidth(60)
//	size, _ := l.SizeThatFits(p, boxes)
//	placements, _ := l.PlaceSubviews(wrap.Point{}, p, boxes)
//
// # Main Packages
//
// [core/wrap] - The layout engine: configuration, line breaking, plan
// caching and placement. It has no dependencies beyond [errors].
//
// [element] - Concrete elements: fixed-size boxes and text labels measured
// with a font face. Both record the frame they are placed at.
//
// [fonts] - Embedded Go fonts and text measurement.
//
// [scene] - The scene file format, the serialized layout result and sample
// scene generators.
//
// [pipeline] - Layout → render orchestration with caching, shared by the
// CLI and the HTTP API.
//
// [render/svg], [render/raster], [render/term], [render/plandot] - Output
// formats.
//
// ## Infrastructure
//
// [cache] - Content-addressed caching of layouts and artifacts, backed by
// files for the CLI or redis for the API.
//
// [store] - Persistence of computed layouts by ID (memory or MongoDB).
//
// [api] - HTTP API built on chi.
//
// [observability] - Hooks for metrics and tracing.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include redis and mongo tests
//
// [core/wrap]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/core/wrap
// [element]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/element
// [fonts]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/fonts
// [scene]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/render/svg
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/render/raster
// [render/term]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/render/term
// [render/plandot]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/render/plandot
// [cache]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/store
// [api]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/api
// [observability]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/wraplayout/pkg/errors
package pkg
