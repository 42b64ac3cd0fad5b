package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hanzi-ids/internal/config"
	"github.com/heartmarshall/hanzi-ids/internal/dataset"
)

func loadCommand(cc *cliContext) *cobra.Command {
	var (
		workers   int
		skipTones bool
		printTSV  bool
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load and enrich the dataset",
		Long: `Parse the IDS file and the radical and reading tables, join them and
run the tone analyzer over every reading. Logs a summary; --tsv also prints
the enriched records to stdout in source row order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyDatasetFlags(cmd, &cc.cfg.Dataset, workers, skipTones)
			cc.log.Debug("dataset options",
				slog.Int("workers", cc.cfg.Dataset.Workers),
				slog.String("on_tone_error", cc.cfg.Dataset.OnToneError),
			)

			table, stats, err := dataset.Load(cmd.Context(), dataset.OptionsFromConfig(cc.cfg.Dataset), cc.log)
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			cc.log.Info("load completed", stats.LogAttrs()...)

			if printTSV {
				return writeTSV(cmd.OutOrStdout(), table.Records())
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "enrichment workers (overrides dataset.workers)")
	cmd.Flags().BoolVar(&skipTones, "skip-bad-tones", false, "drop unparseable readings instead of failing")
	cmd.Flags().BoolVar(&printTSV, "tsv", false, "print enriched records as TSV")

	return cmd
}

// applyDatasetFlags lets explicitly set flags override the loaded config.
func applyDatasetFlags(cmd *cobra.Command, cfg *config.DatasetConfig, workers int, skipTones bool) {
	if cmd.Flags().Changed("workers") && workers > 0 {
		cfg.Workers = workers
	}
	if cmd.Flags().Changed("skip-bad-tones") {
		cfg.OnToneError = config.ToneErrorAbort
		if skipTones {
			cfg.OnToneError = config.ToneErrorSkip
		}
	}
}
