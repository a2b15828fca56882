package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/varoOP/animewatch/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an anime with recommendations and news",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		details, err := application.Catalog.Details(cmd.Context(), id)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("anime %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("show failed: %w", err)
		}

		renderer(cmd, application).Details(details, application.Watchlist.Contains(id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
