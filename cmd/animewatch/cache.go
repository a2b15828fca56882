package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the response cache",
	Long: `Catalog responses are cached for cache.ttl (default 30m).
With the memory backend the cache only lives as long as one command,
use --cache sqlite to share it between runs.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry and hit counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		stats, err := application.CacheStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read cache stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Backend: %s\n", application.Config().CacheBackend)
		fmt.Fprintf(out, "TTL:     %s\n", application.Config().CacheTTL)
		fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
		fmt.Fprintf(out, "Hits:    %d\n", stats.Hits)
		fmt.Fprintf(out, "Misses:  %d\n", stats.Misses)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached response",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		if err := application.ClearCache(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		renderer(cmd, application).Notice("Cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
