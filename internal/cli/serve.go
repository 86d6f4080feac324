package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/figforge/pkg/observability"
	"github.com/matzehuels/figforge/pkg/server"
)

// serveCommand creates the preview server command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of every figure",
		Long: `Serve an HTML index of every figure on a local port. Figures are
rendered on request at any scale (/figures/<name>.png?scale=2) and cached
like the render command's output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && cfg.Serve.Addr != "" {
				addr = cfg.Serve.Addr
			}

			runner, err := c.newRunner(c.cacheDisabled(cmd, cfg))
			if err != nil {
				return err
			}
			defer runner.Close()

			counters := &observability.Counters{}
			observability.SetCacheHooks(counters)
			defer observability.Reset()

			srv, err := server.New(c.Registry, runner, c.Logger)
			if err != nil {
				return err
			}

			err = srv.ListenAndServe(ctx, addr, func(bound string) {
				printSuccess("Serving %d figures", c.Registry.Len())
				printKeyValue("URL", styleLink.Render("http://"+bound+"/"))
				printDetail("Press Ctrl+C to stop")
			})
			c.Logger.Info("preview server stopped",
				"cache_hits", counters.Hits.Load(),
				"cache_misses", counters.Misses.Load())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")

	return cmd
}
