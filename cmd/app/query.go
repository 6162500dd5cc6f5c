package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/osse101/NiltersBot_Go/internal/bootstrap"
	"github.com/osse101/NiltersBot_Go/internal/catalog"
	"github.com/osse101/NiltersBot_Go/internal/game"
	"github.com/osse101/NiltersBot_Go/internal/leaderboard"
)

func newLeaderboardCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the richest players",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := bootstrap.OpenStore(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			eng := game.New(store, catalog.Default())
			entries, err := eng.Leaderboard(ctx, leaderboard.Limit(limit, opts.cfg.LeaderboardSize))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == outputJSON {
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No players yet")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tPLAYER\tCOINS")
			for _, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%d\n", e.Rank, e.DisplayName, e.Coins)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of players (0 = LEADERBOARD_SIZE, max 100)")
	return cmd
}

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Validate and print the boss and shop catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := bootstrap.LoadCatalog(opts.cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == outputJSON {
				return writeJSON(out, map[string]any{"bosses": cat.Bosses(), "items": cat.Items()})
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BOSS\tNAME\tDIFFICULTY\tREWARD")
			for _, b := range cat.Bosses() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", b.Key, b.Name, b.Difficulty, b.Reward)
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "ITEM\tNAME\tPRICE")
			for _, it := range cat.Items() {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", it.Key, it.Name, it.Price)
			}
			return tw.Flush()
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
