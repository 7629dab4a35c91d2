package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wraplayout/pkg/scene"
)

// sampleCommand creates the sample command, which writes a demo scene.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		output string
		format string
		random int
		seed   uint64
		width  float64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample scene",
		Long: `Write a sample scene to start from.

Without flags this writes the eight-label demo scene. With --random N it
writes N random text labels instead, reproducible with --seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scene.Sample()
			if random > 0 {
				s = scene.Random(seed, random, width)
			}

			if output == "" || output == "-" {
				return scene.Write(os.Stdout, s, scene.Format(format))
			}
			if err := scene.WriteFile(s, output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			r := c.report()
			r.done("Wrote sample scene")
			r.wrote(output)
			r.next("Render", appName+" render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension picks the format (default: stdout)")
	cmd.Flags().StringVar(&format, "format", string(scene.FormatJSON), "format for stdout: json, yaml, toml")
	cmd.Flags().IntVar(&random, "random", 0, "generate this many random labels")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&width, "width", 320, "scene width for random scenes")

	return cmd
}
