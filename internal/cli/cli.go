// Package cli implements the wraplayout command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wraplayout/internal/config"
	"github.com/matzehuels/wraplayout/pkg/buildinfo"
	"github.com/matzehuels/wraplayout/pkg/pipeline"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	configPath string
	config     config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		config: config.Default(),
	}
}

// report returns the summary writer of the running command.
func (c *CLI) report() report {
	return report{w: c.out}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "wraplayout flows elements into lines",
		Long: `wraplayout arranges measured elements left to right and wraps them onto new
lines when the available width runs out, like words in a paragraph.

Scenes are JSON, YAML or TOML files listing text labels or fixed-size boxes.
Layouts can be rendered to SVG, PNG, text or a Graphviz diagram of the lines.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			c.out = cmd.OutOrStdout()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/wraplayout/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.config.NewCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the width and spacing overrides shared by the layout,
// render and preview commands. Unset flags fall back to the config file,
// then to the scene.
type layoutFlags struct {
	width    float64
	hspacing float64
	vspacing float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "available width (inf for unconstrained)")
	cmd.Flags().Float64Var(&f.hspacing, "hspacing", 0, "horizontal spacing between items")
	cmd.Flags().Float64Var(&f.vspacing, "vspacing", 0, "vertical spacing between lines")
}

// apply copies the flags the user set into opts.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if cmd.Flags().Changed("width") {
		opts.Width = scene.Float(f.width)
	}
	if cmd.Flags().Changed("hspacing") {
		opts.HorizontalSpacing = scene.Float(f.hspacing)
	}
	if cmd.Flags().Changed("vspacing") {
		opts.VerticalSpacing = scene.Float(f.vspacing)
	}
}

// renderFlags are the output options shared by the render and visualize
// commands.
type renderFlags struct {
	formats    string
	style      string
	noLabels   bool
	lineGuides bool
	embedFont  bool
	scale      float64
	columns    int
	output     string
	noCache    bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json, dot, plan, txt (comma-separated)")
	cmd.Flags().StringVar(&f.style, "style", "", "visual style: simple (default), outline")
	cmd.Flags().BoolVar(&f.noLabels, "no-labels", false, "omit text labels")
	cmd.Flags().BoolVar(&f.lineGuides, "guides", false, "draw line guides (svg)")
	cmd.Flags().BoolVar(&f.embedFont, "embed-font", false, "embed the font in the svg")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "png scale factor (default 2)")
	cmd.Flags().IntVar(&f.columns, "columns", 0, "text output width (default 80)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	registerFormatCompletion(cmd)
}

// apply copies the render flags into opts, keeping config defaults for
// flags the user did not set.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	opts.Formats = parseFormats(f.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if f.style != "" {
		opts.Style = f.style
	}
	if f.scale != 0 {
		opts.Scale = f.scale
	}
	if f.columns != 0 {
		opts.Columns = f.columns
	}
	if cmd.Flags().Changed("guides") {
		opts.LineGuides = f.lineGuides
	}
	if cmd.Flags().Changed("embed-font") {
		opts.EmbedFont = f.embedFont
	}
	opts.NoLabels = f.noLabels
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// readScene reads a scene file, or stdin as JSON when path is "-".
func readScene(path string) (*scene.Scene, error) {
	if path == "-" {
		return scene.Read(os.Stdin, scene.FormatJSON)
	}
	return scene.ReadFile(path)
}
