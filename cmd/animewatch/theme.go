package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/varoOP/animewatch/internal/preference"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the color theme",
	Long:  `Show the current color theme. Use the set or toggle subcommands to change it.`,
	Args:  cobra.NoArgs,
	RunE:  showTheme,
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current color theme",
	Args:  cobra.NoArgs,
	RunE:  showTheme,
}

func showTheme(cmd *cobra.Command, args []string) error {
	application, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	fmt.Fprintln(cmd.OutOrStdout(), application.Theme.Get(cmd.Context()))
	return nil
}

var themeSetCmd = &cobra.Command{
	Use:       "set <dark|light>",
	Short:     "Set the color theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"dark", "light"},
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := preference.ParseTheme(args[0])
		if err != nil {
			return err
		}

		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		if err := application.Theme.Set(cmd.Context(), theme); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
		renderer(cmd, application).Notice(fmt.Sprintf("Theme set to %s", theme))
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between dark and light",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		theme, err := application.Theme.Toggle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
		renderer(cmd, application).Notice(fmt.Sprintf("Theme set to %s", theme))
		return nil
	},
}

func init() {
	themeCmd.AddCommand(themeGetCmd, themeSetCmd, themeToggleCmd)
	rootCmd.AddCommand(themeCmd)
}
