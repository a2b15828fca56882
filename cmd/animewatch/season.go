package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/varoOP/animewatch/internal/domain"
	"github.com/varoOP/animewatch/internal/format"
)

var seasonCmd = &cobra.Command{
	Use:   "season [year season]",
	Short: "Show the anime of a broadcast season",
	Long: `Show the anime airing in a season. Without arguments the current
season is used. Season is one of winter, spring, summer or fall.`,
	Example: `  animewatch season
  animewatch season 2024 fall`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		sortBy, err := sortFlag(cmd)
		if err != nil {
			return err
		}

		year, season := domain.CurrentSeason(time.Now())
		if len(args) == 2 {
			if year, err = strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			season = domain.Season(args[1])
		}

		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		results, err := application.Catalog.Season(cmd.Context(), year, season)
		if err != nil {
			return fmt.Errorf("season failed: %w", err)
		}

		r := renderer(cmd, application)
		r.Notice(fmt.Sprintf("%s %d", season, year))
		r.AnimeList(format.SortAnime(results, sortBy), application.Watchlist.Contains)
		return nil
	},
}

func init() {
	addSortFlag(seasonCmd)
	rootCmd.AddCommand(seasonCmd)
}
