package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drupaltools/deprecaudit/pkg/cache"
	"github.com/drupaltools/deprecaudit/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the evidence cache",
		Long: `Manage the evidence cache. Caching is off unless the configuration sets
a positive [cache] ttl; these commands act on the configured backend either way.`,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./"+configFile+" if present)")

	cmd.AddCommand(c.cacheClearCommand(&configPath))
	cmd.AddCommand(c.cachePathCommand(&configPath))

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached evidence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Cache.Backend == cache.BackendNone {
				printInfo(out, "Cache backend is none; nothing to clear")
				return nil
			}

			ca, err := openBackend(cfg.Cache)
			if err != nil {
				return err
			}
			defer ca.Close()

			clearer, ok := ca.(cache.Clearer)
			if !ok {
				return errors.New(errors.ErrCodeCacheBackend, "%s cache cannot be cleared", cfg.Cache.Backend)
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return errors.Wrap(errors.ErrCodeCacheBackend, err, "clear %s cache", cfg.Cache.Backend)
			}

			printSuccess(out, "Cleared %d cached entries", count)
			if fc, ok := ca.(*cache.FileCache); ok {
				printDetail(out, "Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
