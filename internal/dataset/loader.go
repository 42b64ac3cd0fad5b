// Package dataset joins the IDS decomposition table with the Unihan radical
// and reading tables and runs the tone analyzer over every reading.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/hanzi-ids/internal/config"
	"github.com/heartmarshall/hanzi-ids/internal/dataset/ids"
	"github.com/heartmarshall/hanzi-ids/internal/dataset/unihan"
	"github.com/heartmarshall/hanzi-ids/internal/domain"
	"github.com/heartmarshall/hanzi-ids/internal/tone"
)

// minChunk keeps small tables from being split into many tiny goroutines.
const minChunk = 256

// Options locates the sources and controls enrichment.
type Options struct {
	IDSPath       string
	RadicalsPath  string
	ReadingsPath  string
	CommentMarker string // empty means ids.DefaultCommentMarker

	// Workers > 1 enriches rows concurrently; output order is unaffected.
	Workers int

	// SkipToneErrors drops the pronunciation group of a character whose
	// reading cannot be analyzed instead of failing the load.
	SkipToneErrors bool
}

// OptionsFromConfig maps the dataset config section to loader options.
func OptionsFromConfig(cfg config.DatasetConfig) Options {
	return Options{
		IDSPath:        cfg.IDSPath,
		RadicalsPath:   cfg.RadicalsPath,
		ReadingsPath:   cfg.ReadingsPath,
		CommentMarker:  cfg.CommentMarker,
		Workers:        cfg.Workers,
		SkipToneErrors: cfg.SkipToneErrors(),
	}
}

// Stats summarizes one load.
type Stats struct {
	IDS          ids.Stats
	RadicalTable int // entries in the radical source
	ReadingTable int // entries in the pronunciation source
	Records      int
	RadicalHits  int
	ReadingHits  int
	SkippedTones int
	// ToneCounts[t] counts records with tone t; index 0 is unused.
	ToneCounts [domain.MaxTone + 1]int
	Duration   time.Duration
}

// LogAttrs returns the summary as slog attributes.
func (s Stats) LogAttrs() []any {
	return []any{
		slog.Int("records", s.Records),
		slog.Int("comment_lines", s.IDS.CommentLines),
		slog.Int("duplicates", s.IDS.Duplicates),
		slog.Int("codepoint_mismatches", s.IDS.CodepointMismatches),
		slog.Int("radical_hits", s.RadicalHits),
		slog.Int("reading_hits", s.ReadingHits),
		slog.Int("skipped_tones", s.SkippedTones),
		slog.Any("tone_counts", s.ToneCounts[domain.MinTone:]),
		slog.Duration("duration", s.Duration),
	}
}

// Load reads the three sources, joins them on the character and returns the
// enriched table in decomposition row order. A nil logger discards output.
func Load(ctx context.Context, opts Options, log *slog.Logger) (*Table, Stats, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	start := time.Now()
	var stats Stats

	decomp, err := ids.Parse(opts.IDSPath, opts.CommentMarker)
	if err != nil {
		return nil, stats, fmt.Errorf("parse ids: %w", err)
	}
	stats.IDS = decomp.Stats
	log.Info("ids parsed",
		slog.Int("rows", decomp.Stats.ParsedRows),
		slog.Int("records", len(decomp.Records)),
		slog.Int("duplicates", decomp.Stats.Duplicates),
	)
	if decomp.Stats.CodepointMismatches > 0 {
		log.Debug("ids rows whose character does not match the codepoint",
			slog.Int("count", decomp.Stats.CodepointMismatches))
	}

	radicals, err := unihan.ParseRadicals(opts.RadicalsPath)
	if err != nil {
		return nil, stats, fmt.Errorf("parse radicals: %w", err)
	}
	stats.RadicalTable = len(radicals)
	log.Info("radicals parsed", slog.Int("characters", len(radicals)))

	readings, err := unihan.ParseReadings(opts.ReadingsPath)
	if err != nil {
		return nil, stats, fmt.Errorf("parse readings: %w", err)
	}
	stats.ReadingTable = len(readings)
	log.Info("readings parsed", slog.Int("characters", len(readings)))

	j := joiner{
		radicals:  radicals,
		readings:  readings,
		skipTones: opts.SkipToneErrors,
		log:       log,
	}
	records, skipped, err := j.enrichAll(ctx, decomp.Records, opts.Workers)
	if err != nil {
		return nil, stats, err
	}

	stats.Records = len(records)
	stats.SkippedTones = skipped
	for _, r := range records {
		if r.Radical != nil {
			stats.RadicalHits++
		}
		if r.Tone != nil {
			stats.ReadingHits++
			stats.ToneCounts[*r.Tone]++
		}
	}
	stats.Duration = time.Since(start)

	return newTable(records), stats, nil
}

// joiner holds the lookup tables shared read-only by all workers.
type joiner struct {
	radicals  map[string]int
	readings  map[string]domain.Reading
	skipTones bool
	log       *slog.Logger
}

// enrichAll maps every decomposition row to an enriched record. Each worker
// owns a disjoint index range of the output slice.
func (j joiner) enrichAll(ctx context.Context, rows []domain.Decomposition, workers int) ([]domain.Character, int, error) {
	out := make([]domain.Character, len(rows))
	skipped := make([]bool, len(rows))

	run := func(ctx context.Context, lo, hi int) error {
		for i := lo; i < hi; i++ {
			if (i-lo)%minChunk == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			c, skip, err := j.enrich(rows[i])
			if err != nil {
				return err
			}
			out[i], skipped[i] = c, skip
		}
		return nil
	}

	if workers <= 1 || len(rows) <= minChunk {
		if err := run(ctx, 0, len(rows)); err != nil {
			return nil, 0, err
		}
	} else {
		chunk := max((len(rows)+workers-1)/workers, minChunk)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for lo := 0; lo < len(rows); lo += chunk {
			hi := min(lo+chunk, len(rows))
			g.Go(func() error { return run(gctx, lo, hi) })
		}
		if err := g.Wait(); err != nil {
			return nil, 0, err
		}
	}

	n := 0
	for _, s := range skipped {
		if s {
			n++
		}
	}
	return out, n, nil
}

// enrich joins one row. Missing lookups leave fields nil. The boolean result
// reports a reading dropped under the skip policy.
func (j joiner) enrich(row domain.Decomposition) (domain.Character, bool, error) {
	c := domain.Character{Decomposition: row}

	if radical, ok := j.radicals[row.Character]; ok {
		c.Radical = &radical
	}

	reading, ok := j.readings[row.Character]
	if !ok {
		return c, false, nil
	}

	pinyin, freq := reading.Pinyin, reading.Frequency
	segmental, toneNum, err := tone.Analyze(&pinyin)
	if err != nil {
		if !j.skipTones {
			return c, false, fmt.Errorf("character %s (U+%04X): %w", row.Character, row.Codepoint, err)
		}
		j.log.Warn("skipping unparseable reading",
			slog.String("character", row.Character),
			slog.Int("codepoint", row.Codepoint),
			slog.String("error", err.Error()),
		)
		return c, true, nil
	}

	c.Frequency = &freq
	c.Pinyin = &pinyin
	c.PinyinToneless = segmental
	c.Tone = toneNum
	return c, false, nil
}
