package cli

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tiler/pkg/errors"
	"github.com/matzehuels/tiler/pkg/layoutfile"
	"github.com/matzehuels/tiler/pkg/pipeline"
)

// layoutFlags are shared by every command that instantiates a layout file.
type layoutFlags struct {
	scale   int
	indices string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.scale, "scale", "k", -1, "rescale every template to k (default: the layout's scale)")
	cmd.Flags().StringVarP(&f.indices, "indices", "i", "", "comma-separated plaquette indices (default: 0..n-1)")
}

// apply copies the flags into opts. A negative scale keeps the layout's own.
func (f *layoutFlags) apply(opts *pipeline.Options) error {
	if f.scale >= 0 {
		k := f.scale
		opts.Scale = &k
	}
	indices, err := parseIndices(f.indices)
	if err != nil {
		return err
	}
	opts.Indices = indices
	return nil
}

func (c *CLI) loadLayout(path string) (*layoutfile.Definition, error) {
	def, err := layoutfile.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded layout", "path", path, "templates", len(def.Templates), "relations", len(def.Relations))
	return def, nil
}

// parseIndices reads "1, 2,3". Blank input yields nil.
func parseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid plaquette index %q", field)
		}
		out = append(out, n)
	}
	return out, nil
}

// basePath is the output path without a format extension. With no output
// the input file's extension is dropped instead.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
