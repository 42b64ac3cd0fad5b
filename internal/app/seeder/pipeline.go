package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/hanzi-ids/internal/app"
	"github.com/heartmarshall/hanzi-ids/internal/config"
	"github.com/heartmarshall/hanzi-ids/internal/dataset"
	"github.com/heartmarshall/hanzi-ids/internal/domain"
)

// Phase names in execution order.
const (
	PhaseLoad  = "load"
	PhaseStore = "store"
)

var allPhases = []string{PhaseLoad, PhaseStore}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int // rows written by upserts
	Deleted  int // stale rows removed
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline loads the enriched table and replaces the stored copy with it.
type Pipeline struct {
	log     *slog.Logger
	repo    CharacterBulkRepo
	tx      TxRunner
	opts    dataset.Options
	cfg     config.SeederConfig
	now     func() time.Time
	results map[string]PhaseResult

	table  *dataset.Table
	stats  dataset.Stats
	loadID uuid.UUID
}

// NewPipeline creates a new Pipeline. repo and tx may be nil when cfg.DryRun
// is set; a nil log discards output.
func NewPipeline(log *slog.Logger, repo CharacterBulkRepo, tx TxRunner, opts dataset.Options, cfg config.SeederConfig) *Pipeline {
	if log == nil {
		log = app.NopLogger()
	}
	return &Pipeline{
		log:     log,
		repo:    repo,
		tx:      tx,
		opts:    opts,
		cfg:     cfg,
		now:     time.Now,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Table returns the table produced by the load phase, or nil.
func (p *Pipeline) Table() *dataset.Table {
	return p.table
}

// LoadStats returns the load phase summary.
func (p *Pipeline) LoadStats() dataset.Stats {
	return p.stats
}

// LoadID returns the identifier stamped on rows written by the last run.
func (p *Pipeline) LoadID() uuid.UUID {
	return p.loadID
}

// Run executes the load and store phases in order. A failed phase stops the
// run; its error is recorded in Results and returned.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	p.loadID = uuid.New()

	for _, phase := range allPhases {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseLoad:
			result = p.runLoad(ctx)
		case PhaseStore:
			result = p.runStore(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			return fmt.Errorf("phase %s: %w", phase, result.Err)
		}
		p.log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("inserted", result.Inserted),
			slog.Int("deleted", result.Deleted),
			slog.Int("skipped", result.Skipped),
			slog.Duration("duration", result.Duration),
		)
	}

	p.log.Info("pipeline completed",
		slog.String("load_id", p.loadID.String()),
		slog.Bool("dry_run", p.cfg.DryRun),
	)
	return nil
}

// runLoad parses and enriches the three sources.
func (p *Pipeline) runLoad(ctx context.Context) PhaseResult {
	table, stats, err := dataset.Load(ctx, p.opts, p.log)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("load dataset: %w", err)}
	}
	p.table, p.stats = table, stats
	p.log.Info("dataset loaded", stats.LogAttrs()...)

	return PhaseResult{Skipped: stats.SkippedTones}
}

// runStore writes the table in batches and removes rows from earlier loads,
// all in one transaction.
func (p *Pipeline) runStore(ctx context.Context) PhaseResult {
	if p.table == nil {
		return PhaseResult{Err: fmt.Errorf("no table loaded")}
	}
	if p.cfg.DryRun {
		return PhaseResult{Skipped: p.table.Len()}
	}

	loadedAt := p.now().UTC()
	records := p.table.Records()
	stored := make([]domain.StoredCharacter, len(records))
	for i, c := range records {
		stored[i] = domain.StoredCharacter{
			Character: c,
			Position:  i,
			LoadID:    p.loadID,
			LoadedAt:  loadedAt,
		}
	}

	var result PhaseResult
	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		inserted, err := batchProcess(stored, p.cfg.BatchSize, func(batch []domain.StoredCharacter) (int, error) {
			return p.repo.BulkUpsert(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("upsert characters: %w", err)
		}

		deleted, err := p.repo.DeleteStale(ctx, p.loadID)
		if err != nil {
			return fmt.Errorf("delete stale characters: %w", err)
		}

		result.Inserted, result.Deleted = inserted, deleted
		return nil
	})
	if err != nil {
		return PhaseResult{Errors: 1, Err: err}
	}

	return result
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
