package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tiler/pkg/display/dot"
	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/render"
)

// graphCommand creates the graph command that draws the constraint graph
// between the templates of a layout.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
		scale    int
	)

	cmd := &cobra.Command{
		Use:   "graph [layout]",
		Short: "Draw the placement constraints of a layout with Graphviz",
		Long: `Draw the placement constraints of a layout as a node-link diagram.

Each template is a node labelled with its type and shape; each relation is an
edge from the positioned template to its anchor. The resolution origin is
highlighted. Use --detailed to add indices and resolved positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], output, strings.ToLower(format), detailed, scale)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <layout>_graph.<format>, '-' for stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, dot, pdf, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show indices and resolved positions")
	cmd.Flags().IntVarP(&scale, "scale", "k", -1, "rescale every template to k before drawing")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input, output, format string, detailed bool, scale int) error {
	def, err := c.loadLayout(input)
	if err != nil {
		return err
	}
	o, err := def.Build()
	if err != nil {
		return err
	}
	if scale >= 0 {
		if _, err := o.ScaleTo(scale); err != nil {
			return err
		}
	}

	src := dot.ToDOT(o, dot.Options{Detailed: detailed})
	var data []byte
	switch format {
	case "dot":
		data = []byte(src)
	case "svg":
		data, err = dot.RenderSVG(ctx, src)
	case "pdf":
		data, err = dot.RenderPDF(ctx, src)
	case "png":
		var svg []byte
		if svg, err = dot.RenderSVG(ctx, src); err == nil {
			data, err = render.ToPNG(ctx, svg, 2)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid graph format %q (must be svg, dot, pdf or png)", format)
	}
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if output == "" {
		output = basePath("", input) + "_graph." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	c.Logger.Debugf("Generated %s: %d bytes", format, len(data))
	printSuccess("Drew %d templates, %d relations", o.Len(), len(o.Relations()))
	printFile(output)
	return nil
}
