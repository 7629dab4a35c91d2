package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wraplayout/pkg/pipeline"
)

// renderCommand creates the render command, which goes from a scene
// straight to output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		rf renderFlags
		lf layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Lay out a scene and render it",
		Long: `Lay out a scene and render it in one step.

This is equivalent to 'layout' followed by 'visualize'. Both stages are cached
separately, so changing only render options reuses the cached layout.

Use - as the scene to read JSON from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.config.Options()
			lf.apply(cmd, &opts)
			if err := rf.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, rf.output, rf.noCache)
		},
	}

	rf.register(cmd)
	lf.register(cmd)

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, s, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(result.Artifacts)))

	return c.writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		summary: layoutSummary{
			items:  result.Stats.ElementCount,
			lines:  result.Stats.LineCount,
			size:   result.Layout.Size,
			cached: result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		},
	})
}

// artifactWriteParams describes rendered artifacts to write to disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	summary   layoutSummary
}

// writeArtifacts writes each artifact to its own file. A single format is
// written to output verbatim ("-" for stdout); multiple formats share the
// output as a base path.
func (c *CLI) writeArtifacts(p artifactWriteParams) error {
	paths := artifactPaths(p.formats, p.input, p.output)

	for _, format := range p.formats {
		path := paths[format]
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		_, werr := out.Write(p.artifacts[format])
		cerr := out.Close()
		if werr != nil {
			return fmt.Errorf("write %s: %w", path, werr)
		}
		if cerr != nil {
			return fmt.Errorf("close %s: %w", path, cerr)
		}
	}

	if p.output == "-" {
		return nil
	}
	r := c.report()
	r.done("Render complete")
	for _, format := range p.formats {
		r.wrote(paths[format])
	}
	r.summary(p.summary)
	return nil
}

// artifactPaths returns the output path of every format.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := strings.TrimSuffix(basePath(output, input), ".layout")
	for _, format := range formats {
		paths[format] = base + pipeline.Extension(format)
	}
	return paths
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path. "-" and "" mean
// stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
