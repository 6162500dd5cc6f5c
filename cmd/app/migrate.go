package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/NiltersBot_Go/internal/config"
	"github.com/osse101/NiltersBot_Go/internal/database"
	"github.com/osse101/NiltersBot_Go/internal/database/sqlite"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations for the configured SQL store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch cfg.StoreDriver {
			case config.DriverPostgres:
				pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
				if err != nil {
					return err
				}
				defer pool.Close()

				applied, err := database.MigratePool(ctx, pool)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "postgres: applied %d migration(s)\n", applied)

			case config.DriverSQLite:
				// Open migrates; report where the file ended up
				store, err := sqlite.Open(ctx, cfg.SQLitePath)
				if err != nil {
					return err
				}
				defer store.Close()

				version, err := database.MigrationVersion(ctx, store.DB(), database.DialectSQLite)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "sqlite %s: schema version %d\n", cfg.SQLitePath, version)

			default:
				fmt.Fprintf(out, "%s store has no schema to migrate\n", cfg.StoreDriver)
			}
			return nil
		},
	}
}
