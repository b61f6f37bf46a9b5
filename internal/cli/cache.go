package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gooeyswipe/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand removes rendered output from the configured backend. On
// redis only keys under the configured prefix are touched.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			store, err := c.openCache(ctx, false)
			if err != nil {
				return err
			}
			defer store.Close()

			var (
				count int
				where string
			)
			switch s := store.(type) {
			case *cache.FileCache:
				count, err = s.Clear(ctx)
				where = s.Dir()
			case *cache.RedisCache:
				count, err = s.Clear(ctx, cfg.Cache.Prefix+"*")
				where = cfg.Cache.Prefix + "*"
			default:
				printInfo("Caching is disabled")
				return nil
			}
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("%s", where)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch cfg.Cache.Backend {
			case cache.BackendFile:
				fmt.Fprintln(out, cfg.CacheOptions().Dir)
			case cache.BackendRedis:
				fmt.Fprintln(out, cfg.Cache.RedisURL)
			default:
				fmt.Fprintln(out, "none")
			}
			return nil
		},
	}
}
