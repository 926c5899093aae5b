// Package cli implements the flowdag command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowdag/flowdag/pkg/buildinfo"
	"github.com/flowdag/flowdag/pkg/cache"
	"github.com/flowdag/flowdag/pkg/config"
	"github.com/flowdag/flowdag/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "flowdag"

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

	// ConfigPath is the TOML config file selected with --config.
	// Empty means the platform default location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "flowdag",
		Short:        "Flowdag validates and lays out node-based flow graphs",
		Long:         `Flowdag is a CLI tool for building node-based flow graphs: it validates that a flow is a well-formed DAG, guards new connections against cycles, and assigns nodes positions on a rank grid.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: <user config dir>/flowdag/config.toml)")

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig loads the config file selected with --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return c.newRunnerWithConfig(ctx, cfg, noCache)
}

// newRunnerWithConfig creates a pipeline runner backed by the cache the
// config selects.
func (c *CLI) newRunnerWithConfig(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache builds the cache backend the config selects. A file cache that
// cannot resolve its directory degrades to a null cache; a Redis backend
// that cannot be reached is an error, since the user asked for it.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		var store cache.Cache
		err := cache.RetryWithBackoff(ctx, func() error {
			s, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
			if err != nil {
				return err
			}
			store = s
			return nil
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir resolves the file cache directory, preferring the configured one.
func (c *CLI) cacheDir() (string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyLayoutConfig fills layout dimensions from the config for flags the
// user left untouched, so explicit flags always win over the config file.
func applyLayoutConfig(cmd *cobra.Command, opts *pipeline.Options, cfg config.Config) {
	if !cmd.Flags().Changed("slot-width") {
		opts.SlotWidth = cfg.Layout.SlotWidth
	}
	if !cmd.Flags().Changed("rank-spacing") {
		opts.RankSpacing = cfg.Layout.RankSpacing
	}
	if !cmd.Flags().Changed("node-width") {
		opts.NodeWidth = cfg.Layout.NodeWidth
	}
	if !cmd.Flags().Changed("node-height") {
		opts.NodeHeight = cfg.Layout.NodeHeight
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}
