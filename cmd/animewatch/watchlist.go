package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/varoOP/animewatch/internal/domain"
)

var watchlistCmd = &cobra.Command{
	Use:     "watchlist",
	Aliases: []string{"wl"},
	Short:   "Manage your watchlist",
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved anime in the order they were added",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		items := application.Watchlist.Items()
		r := renderer(cmd, application)
		if len(items) == 0 {
			r.Notice("Your watchlist is empty.")
			return nil
		}
		r.AnimeList(items, nil)
		return nil
	},
}

var watchlistAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add an anime to the watchlist by MyAnimeList id",
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

		anime, added, err := application.AddToWatchlist(cmd.Context(), id)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("anime %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("add failed: %w", err)
		}

		if !added {
			renderer(cmd, application).Notice(fmt.Sprintf("%s is already in your watchlist", anime.DisplayTitle()))
			return nil
		}
		renderer(cmd, application).Notice(fmt.Sprintf("Added %s", anime.DisplayTitle()))
		return nil
	},
}

var watchlistRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an anime from the watchlist",
	Args:    cobra.ExactArgs(1),
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

		anime, ok := application.Watchlist.Get(id)
		if !ok {
			renderer(cmd, application).Notice(fmt.Sprintf("%d is not in your watchlist", id))
			return nil
		}
		application.Watchlist.Remove(cmd.Context(), id)
		renderer(cmd, application).Notice(fmt.Sprintf("Removed %s", anime.DisplayTitle()))
		return nil
	},
}

var watchlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every anime from the watchlist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		n := application.Watchlist.Count()
		application.Watchlist.Clear(cmd.Context())
		renderer(cmd, application).Notice(fmt.Sprintf("Removed %d anime", n))
		return nil
	},
}

var watchlistFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy find saved anime by title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		renderer(cmd, application).AnimeList(application.Watchlist.Find(args[0]), nil)
		return nil
	},
}

var watchlistExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the watchlist to a JSON or YAML file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exportFormat, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = "watchlist." + exportFormat
		}

		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		n, err := application.ExportWatchlist(cmd.Context(), out, domain.ExportFormat(exportFormat))
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		renderer(cmd, application).Notice(fmt.Sprintf("Exported %d anime to %s", n, out))
		return nil
	},
}

var watchlistShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Post the watchlist to the configured Discord webhook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		shared, err := application.ShareWatchlist(cmd.Context())
		if err != nil {
			return fmt.Errorf("share failed: %w", err)
		}

		if !shared {
			renderer(cmd, application).Notice("No discord_webhook_url configured, nothing shared")
			return nil
		}
		renderer(cmd, application).Notice("Watchlist shared")
		return nil
	},
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid anime id %q", s)
	}
	return id, nil
}

func init() {
	watchlistExportCmd.Flags().String("format", "json", "export format: 'json' or 'yaml'")
	watchlistExportCmd.Flags().String("out", "", "output file (default watchlist.<format>)")

	watchlistCmd.AddCommand(
		watchlistListCmd,
		watchlistAddCmd,
		watchlistRemoveCmd,
		watchlistClearCmd,
		watchlistFindCmd,
		watchlistExportCmd,
		watchlistShareCmd,
	)
	rootCmd.AddCommand(watchlistCmd)
}
