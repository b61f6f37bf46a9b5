// Package cli implements the gooeyswipe command-line interface.
package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gooeyswipe/internal/scene"
	"github.com/matzehuels/gooeyswipe/pkg/buildinfo"
	"github.com/matzehuels/gooeyswipe/pkg/cache"
	"github.com/matzehuels/gooeyswipe/pkg/config"
	"github.com/matzehuels/gooeyswipe/pkg/observability"
	"github.com/matzehuels/gooeyswipe/pkg/trace"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "gooeyswipe"

	// maxFrames caps simulations so a trace that never settles still ends.
	maxFrames = 600
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

	logOut     io.Writer
	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), logOut: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "gooeyswipe previews the gooey swipe-cell effect",
		Long:          `gooeyswipe renders, simulates and serves previews of the gooey swipe effect: a liquid blob that grows out of a list row's edge as you drag it and pops into an action icon once the swipe passes the trigger gap.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := newLogHooks(c.Logger)
			observability.SetEffectHooks(hooks)
			observability.SetInteractionHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Resources
// =============================================================================

// config loads the configuration on first use. A missing file yields the
// defaults.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := c.path()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", path)
	c.cfg = cfg
	return cfg, nil
}

// path returns the config file in use.
func (c *CLI) path() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.DefaultPath()
}

// scenes returns a scene builder for the loaded configuration.
func (c *CLI) scenes() (*scene.Builder, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return scene.NewBuilder(cfg, c.Logger)
}

// openCache opens the configured cache backend. noCache forces the null
// cache.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return cache.Open(ctx, cfg.CacheOptions())
}

// traceStore opens the store for recorded gestures under the data directory.
func traceStore() (*trace.FileStore, error) {
	return trace.NewFileStore(filepath.Join(config.DataDir(), "traces"))
}
