package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowdag/flowdag/internal/server"
	"github.com/flowdag/flowdag/pkg/cache"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve flow validation and layout over HTTP",
		Long: `Serve flow validation and layout over HTTP.

The API is stateless: every request carries the full flow. Endpoints:

  POST /api/v1/validate           run the DAG checks, returns the report
  POST /api/v1/connections/check  decide whether an edge may be added
  POST /api/v1/layout             assign node positions
  POST /api/v1/export             export as document JSON or Graphviz DOT
  GET  /health, /ready            liveness and readiness probes

The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

// runServe runs the HTTP API until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunnerWithConfig(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if cfg.Server.CachePrefix != "" {
		runner.Keyer = cache.NewScopedKeyer(runner.Keyer, cfg.Server.CachePrefix)
	}

	printKeyValue("address", addr)
	printKeyValue("cache", cfg.Cache.Backend)
	printNewline()

	srv := server.New(addr, runner, loggerFromContext(ctx))
	return srv.Run(ctx)
}
