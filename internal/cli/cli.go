// Package cli implements the bedjig command-line interface.
//
// The commands are:
//   - bed: compute a bed frame layout, print its metrics and cut list, and
//     export JSON, PDF, XLSX or text reports
//   - template: compute a router template for the runner half-lap joints and
//     export SVG, PDF, PNG or JSON
//   - compare: rank several bed configurations side by side
//   - materials: list the wood catalog
//   - cache: manage the local output cache
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and passed on to the pipeline runner.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bedjig/pkg/buildinfo"
	"github.com/matzehuels/bedjig/pkg/cache"
	"github.com/matzehuels/bedjig/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "bedjig"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "bedjig designs slatted bed frames and the router templates to cut them",
		Long: `bedjig computes a slatted bed frame from a handful of dimensions: part list,
half-lap notch positions, price and a slat deflection check. It also generates
the two-plate router template used to cut the notches in the runners.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.bedCommand())
	root.AddCommand(c.templateCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.materialsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped to
// the build so an upgrade never serves output from an older engine.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

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

// cacheDir returns the cache directory using XDG standard (~/.cache/bedjig/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats splits a comma-separated format list, trimming blanks.
// An empty string yields nil.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
