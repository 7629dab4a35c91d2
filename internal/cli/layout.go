package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wraplayout/pkg/pipeline"
	"github.com/matzehuels/wraplayout/pkg/scene"
)

// layoutCommand creates the layout command for computing line layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		lf      layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [scene]",
		Short: "Compute a line layout from a scene",
		Long: `Compute a line layout from a scene.

The layout command measures every item of a scene file (JSON, YAML or TOML),
breaks them into lines at the available width and places them. The output is a
layout.json file (same format as 'render -f json') that can be rendered with
the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.config.Options()
			lf.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	lf.register(cmd)

	return cmd
}

// runLayout loads the scene, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	s, err := readScene(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	res, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, s, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}

	f, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := scene.WriteResult(f, res); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	r := c.report()
	r.done("Layout complete")
	r.wrote(outputPath)
	r.summary(layoutSummary{items: len(res.Items), lines: len(res.Lines), size: res.Size, cached: cacheHit})
	r.next("Render", appName+" visualize "+outputPath)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "scene"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if strings.HasSuffix(output, pipeline.Extension(pipeline.FormatPlan)) {
		return strings.TrimSuffix(output, pipeline.Extension(pipeline.FormatPlan))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
