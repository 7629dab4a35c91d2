// Package term renders layout results as text for terminals: one row per
// line, items drawn as bracketed labels at their scaled horizontal position.
//
//	[Hello] [A long label]  ░░░░░
//	[Dog] [B]
package term

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wraplayout/pkg/scene"
)

// Options configures text rendering.
type Options struct {
	// Columns is the width of the output; 0 means 80.
	Columns int
	// Color styles the output with ANSI colours.
	Color bool
	// Summary appends a line with the line count, item count and size.
	Summary bool
}

var (
	styleText    = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	styleBox     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleSummary = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const boxRune = '░'

// Render draws res scaled to fit opts.Columns. Layout widths narrower than
// the terminal are drawn at one column per layout unit or wider, never
// stretched.
func Render(res scene.Result, opts Options) string {
	cols := opts.Columns
	if cols <= 0 {
		cols = 80
	}
	upc := 1.0 // layout units per column
	if res.Size.Width > float64(cols) {
		upc = res.Size.Width / float64(cols)
	}

	byID := make(map[string]scene.Placed, len(res.Items))
	for _, p := range res.Items {
		byID[p.ID] = p
	}

	var rows []string
	for _, line := range res.Lines {
		var b strings.Builder
		col := 0
		for _, id := range line.Items {
			p := byID[id]
			start := int(math.Round(p.X / upc))
			end := max(start+1, int(math.Round((p.X+p.Width)/upc)))
			end = min(end, cols)
			if start < col {
				start = col
			}
			if start >= end {
				continue
			}
			b.WriteString(strings.Repeat(" ", start-col))
			seg := cell(p, end-start)
			if opts.Color {
				if p.Kind == scene.KindText {
					seg = styleText.Render(seg)
				} else {
					seg = styleBox.Render(seg)
				}
			}
			b.WriteString(seg)
			col = end
		}
		rows = append(rows, strings.TrimRight(b.String(), " "))
	}

	if opts.Summary {
		s := fmt.Sprintf("%d lines · %d items · %g×%g", len(res.Lines), len(res.Items), res.Size.Width, res.Size.Height)
		if opts.Color {
			s = styleSummary.Render(s)
		}
		rows = append(rows, s)
	}
	if len(rows) == 0 {
		return ""
	}
	return strings.Join(rows, "\n") + "\n"
}

// cell draws one item n columns wide.
func cell(p scene.Placed, n int) string {
	if p.Kind != scene.KindText {
		return strings.Repeat(string(boxRune), n)
	}
	if n < 3 {
		return strings.Repeat("#", n)
	}
	label := truncate(p.Label, n-2)
	pad := n - 2 - utf8.RuneCountInString(label)
	return "[" + label + strings.Repeat(" ", pad) + "]"
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 1 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-1]) + "…"
}
