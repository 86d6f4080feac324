// Package cli implements the figforge command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figforge/pkg/buildinfo"
	"github.com/matzehuels/figforge/pkg/cache"
	"github.com/matzehuels/figforge/pkg/figure"
	"github.com/matzehuels/figforge/pkg/figures"
	"github.com/matzehuels/figforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "figforge"

	// envOutputDir overrides the configured output directory.
	envOutputDir = "FIGFORGE_OUTPUT_DIR"
)

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

	// Registry is the set of figures commands operate on.
	Registry *figure.Registry

	configPath string
	noCache    bool
}

// New creates a new CLI instance with the built-in figures and a default
// logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Registry: figures.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "figforge renders paper figures to PNG",
		Long:         `figforge renders a library of paper figures (block diagrams, charts and flowcharts) to PNG files, with caching, a contact sheet and a live preview server.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+defaultConfigFile+" if present)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the render cache")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.sheetCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// cacheDisabled reports whether to skip the cache. An explicit --no-cache
// overrides no_cache in the config file.
func (c *CLI) cacheDisabled(cmd *cobra.Command, cfg Config) bool {
	if cmd.Flags().Changed("no-cache") {
		return c.noCache
	}
	return cfg.NoCache
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

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/figforge/).
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

// completeFigureNames offers registered figure names for shell completion.
func (c *CLI) completeFigureNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, f := range c.Registry.All() {
		out = append(out, f.Name()+"\t"+f.Description())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
