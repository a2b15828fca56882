package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/varoOP/animewatch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long: `Serve the catalog, watchlist and theme over HTTP.

Routes:
  GET    /api/search?q=&limit=&sort=
  GET    /api/top?type=&filter=&page=&sort=
  GET    /api/seasons/:year/:season?sort=
  GET    /api/anime/:id
  GET    /api/watchlist
  POST   /api/watchlist
  DELETE /api/watchlist
  DELETE /api/watchlist/:id
  POST   /api/cache/clear
  GET    /api/theme
  PUT    /api/theme
  POST   /api/theme/toggle`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.NewServer(application.Logger(), application.Config(), application.Catalog, application.Watchlist, application.Theme, application.History)

		if err := srv.Open(ctx); err != nil {
			return fmt.Errorf("serve failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("host", "", "address to listen on (default 127.0.0.1)")
	serveCmd.Flags().Int("port", 0, "port to listen on (default 7474)")
	viper.BindPFlag("http.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("http.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}
