package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hanzi-ids/internal/adapter/postgres"
	"github.com/heartmarshall/hanzi-ids/internal/adapter/postgres/character"
	"github.com/heartmarshall/hanzi-ids/internal/app/seeder"
	"github.com/heartmarshall/hanzi-ids/internal/dataset"
)

func seedCommand(cc *cliContext) *cobra.Command {
	var (
		dryRun    bool
		batchSize int
		workers   int
		skipTones bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the dataset and replace the stored table",
		Long: `Run the load phase, then upsert every record and delete rows left by
earlier loads in a single transaction. --dry-run stops after loading.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cc.cfg
			applyDatasetFlags(cmd, &cfg.Dataset, workers, skipTones)
			if dryRun {
				cfg.Seeder.DryRun = true
			}
			if cmd.Flags().Changed("batch-size") && batchSize > 0 {
				cfg.Seeder.BatchSize = batchSize
			}

			var (
				repo seeder.CharacterBulkRepo
				txm  seeder.TxRunner
			)
			if !cfg.Seeder.DryRun {
				if err := cfg.RequireDatabase(); err != nil {
					return err
				}
				pool, err := postgres.NewPool(cmd.Context(), cfg.Database)
				if err != nil {
					return fmt.Errorf("connect to database: %w", err)
				}
				defer pool.Close()

				repo = character.New(pool)
				txm = postgres.NewTxManager(pool)
			}

			pipeline := seeder.NewPipeline(cc.log, repo, txm, dataset.OptionsFromConfig(cfg.Dataset), cfg.Seeder)
			if err := pipeline.Run(cmd.Context()); err != nil {
				return fmt.Errorf("pipeline failed: %w", err)
			}
			if pipeline.HasErrors() {
				return fmt.Errorf("pipeline completed with errors")
			}

			cc.log.Info("pipeline completed successfully", slog.String("load_id", pipeline.LoadID().String()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "load without writing to the database")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "rows per upsert batch (overrides seeder.batch_size)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "enrichment workers (overrides dataset.workers)")
	cmd.Flags().BoolVar(&skipTones, "skip-bad-tones", false, "drop unparseable readings instead of failing")

	return cmd
}
