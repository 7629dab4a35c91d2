package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wraplayout/pkg/core/wrap"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared with the preview.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailed  = lipgloss.NewStyle().Foreground(colorRed)
	styleWarn    = lipgloss.NewStyle().Foreground(colorYellow)
	stylePath    = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

// Where a layout or its artifacts came from.
const (
	sourceCache    = "cached"
	sourceComputed = "computed"
)

// report writes the human-readable summary of a command. Machine output
// (artifacts on stdout) never goes through it.
type report struct {
	w io.Writer
}

func (r report) println(s string) { fmt.Fprintln(r.w, s) }

// done reports a finished step.
func (r report) done(msg string) { r.println(styleOK.Render("✓") + " " + msg) }

// failed reports a failed step.
func (r report) failed(msg string) { r.println(styleFailed.Render("✗") + " " + msg) }

// warn reports something the user should know but that did not fail.
func (r report) warn(format string, args ...any) {
	r.println(styleWarn.Render("!") + " " + styleWarn.Render(fmt.Sprintf(format, args...)))
}

// wrote lists a file the command produced.
func (r report) wrote(path string) {
	r.println("  " + StyleDim.Render("→") + " " + stylePath.Render(path))
}

// field prints an aligned key/value pair.
func (r report) field(key, value string) {
	r.println(styleKey.Render(key) + " " + stylePath.Render(value))
}

// layoutSummary describes a computed layout.
type layoutSummary struct {
	items  int
	lines  int
	size   wrap.Size
	cached bool
}

// summary prints "8 items · 2 lines · 192×56 · cached". Items and lines
// are always shown so an empty scene reads as "0 items · 0 lines".
func (r report) summary(s layoutSummary) {
	source := styleComputed.Render(sourceComputed)
	if s.cached {
		source = styleCached.Render(sourceCache)
	}
	parts := []string{
		StyleDim.Render(plural(s.items, "item")),
		StyleDim.Render(plural(s.lines, "line")),
		StyleNumber.Render(formatUnits(s.size.Width) + "×" + formatUnits(s.size.Height)),
		source,
	}
	r.println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// next suggests the command to run after this one.
func (r report) next(what, cmd string) {
	r.println("")
	r.println(StyleDim.Render(what+":") + " " + styleCommand.Render(cmd))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
