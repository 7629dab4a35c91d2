package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wraplayout/pkg/pipeline"
	"github.com/matzehuels/wraplayout/pkg/render/term"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

var (
	previewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	previewFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		lf   layoutFlags
		step float64
	)

	cmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "Interactively resize a layout in the terminal",
		Long: `Interactively resize a layout in the terminal.

Keys:
  ←/→ or h/l   shrink or grow the available width
  < / >        halve or double the width step
  [ / ]        decrease or increase horizontal spacing
  - / +        decrease or increase vertical spacing
  q            quit

The layout is recomputed on every change and drawn as text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readScene(args[0])
			if err != nil {
				return fmt.Errorf("load scene %s: %w", args[0], err)
			}
			opts := c.config.Options()
			lf.apply(cmd, &opts)

			m, err := newPreviewModel(cmd.Context(), s, opts, step)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	lf.register(cmd)
	cmd.Flags().Float64Var(&step, "step", 0, "width change per key press (default: 10% of the initial width)")

	return cmd
}

// previewModel is the bubbletea model of the preview command.
type previewModel struct {
	ctx   context.Context
	scene *scene.Scene

	width    float64
	hspacing float64
	vspacing float64
	step     float64
	columns  int

	res scene.Result
	err error
}

// newPreviewModel lays the scene out once to pick a finite starting
// width. An unconstrained scene starts at its natural single-line width.
func newPreviewModel(ctx context.Context, s *scene.Scene, opts pipeline.Options, step float64) (previewModel, error) {
	s = pipeline.Prepare(s, opts)
	res, err := pipeline.ComputeLayout(ctx, s, pipeline.Options{})
	if err != nil {
		return previewModel{}, err
	}
	cfg := s.Config()
	m := previewModel{
		ctx:      ctx,
		scene:    s,
		width:    s.AvailableWidth(),
		hspacing: cfg.HorizontalSpacing,
		vspacing: cfg.VerticalSpacing,
		step:     step,
		columns:  pipeline.DefaultColumns,
		res:      res,
	}
	if math.IsInf(m.width, 1) {
		m.width = res.Size.Width
	}
	if m.step <= 0 {
		m.step = math.Max(1, math.Round(m.width/10))
	}
	return m, nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.width = math.Max(0, m.width-m.step)
		case "right", "l":
			m.width += m.step
		case "<", ",":
			m.step = math.Max(1, math.Round(m.step/2))
			return m, nil
		case ">", ".":
			m.step *= 2
			return m, nil
		case "[":
			m.hspacing = math.Max(0, m.hspacing-1)
		case "]":
			m.hspacing++
		case "-":
			m.vspacing = math.Max(0, m.vspacing-1)
		case "+", "=":
			m.vspacing++
		default:
			return m, nil
		}
		m.relayout()
	case tea.WindowSizeMsg:
		// Leave room for the border and padding.
		m.columns = max(10, msg.Width-4)
	}
	return m, nil
}

// relayout recomputes the layout at the current settings. A failed
// layout keeps the previous result on screen next to the error.
func (m *previewModel) relayout() {
	res, err := pipeline.ComputeLayout(m.ctx, m.scene, pipeline.Options{
		Width:             scene.Float(m.width),
		HorizontalSpacing: scene.Float(m.hspacing),
		VerticalSpacing:   scene.Float(m.vspacing),
	})
	m.err = err
	if err == nil {
		m.res = res
	}
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("wraplayout preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ width  </> step  [/] hspacing  -/+ vspacing  q quit"))
	b.WriteString("\n\n")

	b.WriteString(previewFrameStyle.Render(term.Render(m.res, term.Options{
		Columns: m.columns,
		Color:   true,
	})))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s %s\n",
		StyleDim.Render("width"), StyleNumber.Render(formatUnits(m.width)),
		StyleDim.Render("step"), StyleNumber.Render(formatUnits(m.step)),
		StyleDim.Render("hspacing"), StyleNumber.Render(formatUnits(m.hspacing)),
		StyleDim.Render("vspacing"), StyleNumber.Render(formatUnits(m.vspacing)),
		StyleDim.Render("size"), StyleHighlight.Render(fmt.Sprintf("%s×%s · %d lines",
			formatUnits(m.res.Size.Width), formatUnits(m.res.Size.Height), len(m.res.Lines)))))

	if m.err != nil {
		b.WriteString(previewErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

// formatUnits prints a layout length without trailing zeros.
func formatUnits(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*100)/100)
}
