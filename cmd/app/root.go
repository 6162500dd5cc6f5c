package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/NiltersBot_Go/internal/config"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type rootOptions struct {
	cfg    *config.Config
	output string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "nilters",
		Short: "Game-state and economy engine for the chat RPG",
		Long: `nilters runs the chat RPG engine: players, coins, inventory, battles,
the shop, work and the leaderboard, behind a small JSON API.

Configuration comes from the environment (and .env when present).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputText && opts.output != outputJSON {
				return fmt.Errorf("output must be %s or %s, got %q", outputText, outputJSON, opts.output)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "Output format: text, json")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newMigrateCmd(opts))
	rootCmd.AddCommand(newLeaderboardCmd(opts))
	rootCmd.AddCommand(newCatalogCmd(opts))

	return rootCmd
}
