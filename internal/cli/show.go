package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/pipeline"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// showCommand creates the show command that prints a layout to the terminal.
func (c *CLI) showCommand() *cobra.Command {
	var (
		flags   layoutFlags
		colour  string
		noTable bool
	)

	cmd := &cobra.Command{
		Use:   "show [layout]",
		Short: "Print a layout as an ASCII grid",
		Long: `Print a layout as an ASCII grid of plaquette indices, followed by a table
of its templates with their positions, shapes and indices.

Empty cells print as "." and every other cell as its plaquette index.
Cells are coloured by index when stdout is a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			if err := flags.apply(&opts); err != nil {
				return err
			}
			useColour, err := resolveColour(colour, os.Stdout)
			if err != nil {
				return err
			}
			return c.runShow(cmd.Context(), os.Stdout, args[0], opts, useColour, !noTable)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&colour, "color", colorAuto, "colour cells: auto, always, never")
	cmd.Flags().BoolVar(&noTable, "no-table", false, "omit the template table")

	return cmd
}

// resolveColour decides whether to colour output written to f.
func resolveColour(mode string, f *os.File) (bool, error) {
	switch mode {
	case colorAlways:
		return true, nil
	case colorNever:
		return false, nil
	case colorAuto, "":
		return isTerminal(f), nil
	default:
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid --color %q (must be auto, always or never)", mode)
	}
}

// runShow resolves the layout without caching and writes it to w.
func (c *CLI) runShow(ctx context.Context, w io.Writer, path string, opts pipeline.Options, colour, withTable bool) error {
	def, err := c.loadLayout(path)
	if err != nil {
		return err
	}
	opts.Formats = []string{pipeline.FormatASCII}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()
	result, err := runner.Execute(ctx, def, opts)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s (%v)", def.Name, result.Stats.Shape)
	if colour {
		title = StyleTitle.Render(title)
	}
	fmt.Fprintln(w, title)
	if colour {
		fmt.Fprint(w, formatGrid(result.Layout.Grid, true))
	} else {
		w.Write(result.Artifacts[pipeline.FormatASCII])
	}
	if withTable {
		fmt.Fprintln(w)
		fmt.Fprintln(w, childTable(result.Layout))
	}
	return nil
}
