package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tiler/pkg/observability"
	"github.com/matzehuels/tiler/pkg/pipeline"
	"github.com/matzehuels/tiler/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file (single format) or base path
	formats string // comma-separated formats
	noCache bool   // disable the artifact cache
}

// renderCommand creates the render command that writes layout artifacts to
// files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags layoutFlags
		ro    renderOpts
		opts  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [layout]",
		Short: "Render a layout to SVG, PNG, PDF, JSON, DOT or ASCII files",
		Long: `Render a layout to one or more files.

Each format is written next to the layout file (or to --output) with its own
extension. Formats are rendered concurrently and cached locally, so
re-rendering an unchanged layout is instant. PDF output needs rsvg-convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(&opts); err != nil {
				return err
			}
			opts.Formats = pipeline.ParseFormats(ro.formats)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, ro)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, ascii (comma-separated)")
	cmd.Flags().IntVar(&opts.CanvasHeight, "height", 0, "SVG/PDF canvas height in pixels (default 500)")
	cmd.Flags().IntVar(&opts.CellSize, "cell-size", 0, "PNG cell size in pixels (default 24)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, ro renderOpts) error {
	def, err := c.loadLayout(input)
	if err != nil {
		return err
	}

	for _, f := range opts.Formats {
		if f == pipeline.FormatPDF && !render.Available() {
			printWarning("PDF output needs rsvg-convert on PATH")
			break
		}
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var sp *spinner
	if isTerminal(os.Stderr) {
		sp = startSpinner(ctx, os.Stderr, fmt.Sprintf("Loading %s...", def.Name))
		observability.Register(observability.Hooks{Pipeline: stageMessages{sp}})
	}
	sw := startStopwatch(c.Logger)
	result, err := runner.Execute(ctx, def, opts)
	if sp != nil {
		sp.Stop()
		observability.Reset()
	}
	if err != nil {
		if sp != nil && !sp.Interrupted() {
			printError("Render failed")
		}
		return err
	}
	sw.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)), "layout", def.Name)

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, ro.output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", def.Name)
	for _, p := range paths {
		printFile(p)
	}
	fmt.Fprintln(stdout, formatStats(result.Stats, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit))
	return nil
}

// writeArtifacts writes each format to its own file and returns the paths
// in format order. A single format honours output verbatim.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := basePath(output, input)
	var paths []string
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		if seen[f] {
			continue
		}
		seen[f] = true

		path := base + pipeline.Extensions[f]
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
