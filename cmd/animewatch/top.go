package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/varoOP/animewatch/internal/domain"
	"github.com/varoOP/animewatch/internal/format"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the top anime list",
	Long: `Show a page of the top anime list.

Filter can be one of:
  - bypopularity
  - favorite
  - airing
  - upcoming

Type can be one of: tv, movie, ova, special, ona, music`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		animeType, _ := cmd.Flags().GetString("type")
		filter, _ := cmd.Flags().GetString("filter")
		page, _ := cmd.Flags().GetInt("page")
		sortBy, err := sortFlag(cmd)
		if err != nil {
			return err
		}

		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		results, err := application.Catalog.Top(cmd.Context(), domain.TopQuery{
			Type:   domain.AnimeType(animeType),
			Filter: domain.TopFilter(filter),
			Page:   page,
		})
		if err != nil {
			return fmt.Errorf("top failed: %w", err)
		}

		renderer(cmd, application).AnimeList(format.SortAnime(results, sortBy), application.Watchlist.Contains)
		return nil
	},
}

func init() {
	topCmd.Flags().String("type", "", "media type filter")
	topCmd.Flags().String("filter", "", "list filter")
	topCmd.Flags().Int("page", 1, "page number")
	addSortFlag(topCmd)
	rootCmd.AddCommand(topCmd)
}
