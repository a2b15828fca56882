package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/varoOP/animewatch/internal/app"
	"github.com/varoOP/animewatch/internal/format"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "animewatch",
	Short: "Browse anime and keep a watchlist",
	Long: `animewatch searches the Jikan (MyAnimeList) catalog, shows top and
seasonal lists and detail pages, and keeps a personal watchlist.
Catalog responses are cached for a short time to go easy on the API.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.animewatch.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the database and stored data (default $HOME/.animewatch)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: trace, debug, info, warn or error")
	rootCmd.PersistentFlags().String("storage", "", "storage backend: 'sqlite' or 'file'")
	rootCmd.PersistentFlags().String("cache", "", "response cache backend: 'memory' or 'sqlite'")

	// Bind flags to viper
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("storage.backend", rootCmd.PersistentFlags().Lookup("storage"))
	viper.BindPFlag("cache.backend", rootCmd.PersistentFlags().Lookup("cache"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory and current directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".animewatch")
	}

	// Environment variables, e.g. ANIMEWATCH_CACHE_TTL for cache.ttl
	viper.SetEnvPrefix("ANIMEWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile == "" {
		viper.SetConfigName("config")
		if err := viper.ReadInConfig(); err == nil {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// newApp initializes the application for a command. Callers must Close it.
func newApp(cmd *cobra.Command) (*app.App, error) {
	application, err := app.NewApp(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func addSortFlag(cmd *cobra.Command) {
	cmd.Flags().String("sort", "", "sort results by 'score' or 'name' (default catalog order)")
}

func sortFlag(cmd *cobra.Command) (format.SortBy, error) {
	s, _ := cmd.Flags().GetString("sort")
	return format.ParseSortBy(s)
}

// renderer returns a renderer styled with the stored theme
func renderer(cmd *cobra.Command, a *app.App) *format.Renderer {
	return format.NewRenderer(cmd.OutOrStdout(), a.Theme.Get(cmd.Context()))
}
