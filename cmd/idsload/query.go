package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/hanzi-ids/internal/adapter/postgres"
	"github.com/heartmarshall/hanzi-ids/internal/adapter/postgres/character"
	"github.com/heartmarshall/hanzi-ids/internal/dataset/ids"
	"github.com/heartmarshall/hanzi-ids/internal/domain"
)

func queryCommand(cc *cliContext) *cobra.Command {
	var (
		radical, toneNum int
		pinyin           string
		codepoint        string
		limit, offset    int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List stored characters",
		Long: `Print stored records as TSV in load order. Filters combine with AND;
--pinyin matches the toneless form. --codepoint looks up a single record.`,
		Example: "  idsload query --pinyin ma --tone 3\n  idsload query --codepoint U+9A6C",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cc.cfg.RequireDatabase(); err != nil {
				return err
			}
			ctx := cmd.Context()

			pool, err := postgres.NewPool(ctx, cc.cfg.Database)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()
			repo := character.New(pool)

			if codepoint != "" {
				cp, err := ids.ParseCodepoint(codepoint)
				if err != nil {
					return domain.NewValidationError("codepoint", err.Error())
				}
				c, err := repo.GetByCodepoint(ctx, cp)
				if err != nil {
					return err
				}
				return writeTSV(cmd.OutOrStdout(), []domain.Character{c.Character})
			}

			filter := domain.CharacterFilter{Limit: limit, Offset: offset}
			if cmd.Flags().Changed("radical") {
				filter.Radical = &radical
			}
			if cmd.Flags().Changed("tone") {
				filter.Tone = &toneNum
			}
			if cmd.Flags().Changed("pinyin") {
				filter.Pinyin = &pinyin
			}

			total, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			stored, err := repo.List(ctx, filter)
			if err != nil {
				return err
			}
			cc.log.Info("query completed", slog.Int("matched", len(stored)), slog.Int("stored", total))

			records := make([]domain.Character, len(stored))
			for i, s := range stored {
				records[i] = s.Character
			}
			return writeTSV(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().IntVar(&radical, "radical", 0, "Kangxi radical number (1-214)")
	cmd.Flags().IntVar(&toneNum, "tone", 0, "tone number (1-5)")
	cmd.Flags().StringVar(&pinyin, "pinyin", "", "toneless pinyin")
	cmd.Flags().StringVar(&codepoint, "codepoint", "", "single codepoint, U+XXXX or decimal")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (default 100, max 1000)")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")

	return cmd
}
