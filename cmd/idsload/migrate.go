package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/hanzi-ids/migrations"
)

func migrateCommand(cc *cliContext) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.cfg.RequireDatabase(); err != nil {
				return err
			}
			ctx := cmd.Context()

			// goose requires *sql.DB.
			db, err := sql.Open("pgx", cc.cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
			if err != nil {
				return fmt.Errorf("goose new provider: %w", err)
			}

			var results []*goose.MigrationResult
			if down {
				var res *goose.MigrationResult
				res, err = provider.Down(ctx)
				if res != nil {
					results = append(results, res)
				}
			} else {
				results, err = provider.Up(ctx)
			}
			for _, r := range results {
				cc.log.Info("migration applied",
					slog.Int64("version", r.Source.Version),
					slog.String("path", r.Source.Path),
					slog.String("direction", r.Direction),
					slog.Duration("duration", r.Duration),
				)
			}
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			cc.log.Info("migrations complete", slog.Int("applied", len(results)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")

	return cmd
}
