package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/varoOP/animewatch/internal/format"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the catalog by title",
	Long: `Search the catalog by title. The term must be at least 2 characters.
Results already in your watchlist are marked with a star.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sortBy, err := sortFlag(cmd)
		if err != nil {
			return err
		}

		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		results, err := application.Search(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		renderer(cmd, application).AnimeList(format.SortAnime(results, sortBy), application.Watchlist.Contains)
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 6, "number of results (max 25)")
	addSortFlag(searchCmd)
	rootCmd.AddCommand(searchCmd)
}
