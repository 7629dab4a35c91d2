// Package plandot renders the line structure of a layout as a Graphviz
// diagram: one cluster per line, one node per item, chained in reading
// order.
//
//	dot := plandot.ToDOT(res, plandot.Options{})
//	svg, err := plandot.RenderSVG(ctx, dot)
package plandot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wraplayout/pkg/errors"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// Options configures the diagram.
type Options struct {
	// Detailed adds the frame of each item to its node label.
	Detailed bool
}

// ToDOT converts a layout result to Graphviz DOT.
func ToDOT(res scene.Result, opts Options) string {
	byID := make(map[string]scene.Placed, len(res.Items))
	for _, p := range res.Items {
		byID[p.ID] = p
	}

	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")

	prev := ""
	for i, line := range res.Lines {
		fmt.Fprintf(&buf, "\n  subgraph cluster_line%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("line %d  w=%g h=%g", i, line.Width, line.Height))
		buf.WriteString("    style=dashed;\n")
		for _, id := range line.Items {
			p := byID[id]
			fmt.Fprintf(&buf, "    %q [%s];\n", id, strings.Join(fmtAttrs(p, opts.Detailed), ", "))
		}
		buf.WriteString("  }\n")

		for _, id := range line.Items {
			if prev != "" {
				style := ""
				if id == line.Items[0] {
					style = " [style=dashed, constraint=false]"
				}
				fmt.Fprintf(&buf, "  %q -> %q%s;\n", prev, id, style)
			}
			prev = id
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(p scene.Placed, detailed bool) []string {
	label := p.ID
	if p.Label != "" {
		label = p.Label
	}
	if detailed {
		label += fmt.Sprintf("\n(%g, %g) %gx%g", p.X, p.Y, p.Width, p.Height)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if p.Kind == scene.KindBox {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// viewBox starts at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
