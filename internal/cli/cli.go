// Package cli implements the tiler command-line interface.
//
// Commands:
//   - show: print a layout as a coloured ASCII grid with a summary table
//   - render: write SVG, PNG, PDF, JSON, DOT or ASCII artifacts to files
//   - graph: draw the constraint graph between templates with Graphviz
//   - view: interactive terminal viewer with live rescaling
//   - serve: HTTP API over the pipeline and a layout store
//   - cache: manage the local artifact cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tiler/pkg/buildinfo"
	"github.com/matzehuels/tiler/pkg/cache"
	"github.com/matzehuels/tiler/pkg/pipeline"
)

// appName names the binary, the cache directory and the Redis key prefix.
const appName = "tiler"

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI carries the state shared by every subcommand.
type CLI struct {
	Logger *log.Logger
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) { c.Logger.SetLevel(level) }

// RootCommand assembles the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tiler composes scalable plaquette templates into grids",
		Long: `Tiler builds grids of plaquette indices from scalable templates placed
relative to each other, rescales them and renders the result as ASCII art,
SVG, PNG, PDF, JSON or a Graphviz drawing of the placement constraints.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	for _, sub := range []*cobra.Command{
		c.showCommand(),
		c.renderCommand(),
		c.graphCommand(),
		c.viewCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	} {
		root.AddCommand(sub)
	}
	return root
}

// newRunner returns a runner backed by the local file cache, or by no
// cache at all when noCache is set.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	backend, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

// newCache falls back to no caching when the home directory is unknown.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir is $XDG_CACHE_HOME/tiler, or ~/.cache/tiler.
func cacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, appName), nil
}
