package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gooeyswipe/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the preview page and render endpoints over HTTP",
		Long: `Start the preview server. It serves a scrubber page at / and renders
frames, descriptors, simulated gestures and the interaction diagram on
demand. Rendered output is cached in the configured backend.`,
		Example: `  gooeyswipe serve
  gooeyswipe serve --addr :9000 --no-cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			store, err := c.openCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			srv, err := server.New(server.Options{
				Config: cfg,
				Cache:  store,
				Logger: loggerFromContext(ctx),
			})
			if err != nil {
				return err
			}

			printInfo("Preview at %s", StyleHighlight.Render("http://"+cfg.Server.Addr))
			printDetail("cache: %s", cacheLabel(cfg.Cache.Backend, noCache))
			if err := srv.ListenAndServe(ctx); err != nil {
				return err
			}
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func cacheLabel(backend string, disabled bool) string {
	if disabled || backend == "" {
		return "none"
	}
	return backend
}
