package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent search terms",
	Args:  cobra.NoArgs,
	RunE:  listHistory,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent search terms, newest first",
	Args:  cobra.NoArgs,
	RunE:  listHistory,
}

func listHistory(cmd *cobra.Command, args []string) error {
	application, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	renderer(cmd, application).Lines(application.History.List(cmd.Context()), "No recent searches.")
	return nil
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget recent search terms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer application.Close()

		if err := application.History.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		renderer(cmd, application).Notice("Search history cleared")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
