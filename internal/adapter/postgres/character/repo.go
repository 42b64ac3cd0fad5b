// Package character implements persistence of enriched dictionary records
// using PostgreSQL. Writes use pgx.Batch; filtered reads are built with
// squirrel.
package character

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/hanzi-ids/internal/adapter/postgres"
	"github.com/heartmarshall/hanzi-ids/internal/domain"
)

const entity = "character"

// columns lists the characters table columns in scan order.
var columns = []string{
	"codepoint", "character", "decomposition",
	"radical", "frequency", "pinyin", "pinyin_toneless", "tone",
	"position", "load_id", "loaded_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const upsertSQL = `
INSERT INTO characters (codepoint, character, decomposition, radical, frequency, pinyin, pinyin_toneless, tone, position, load_id, loaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (codepoint) DO UPDATE SET
    character       = EXCLUDED.character,
    decomposition   = EXCLUDED.decomposition,
    radical         = EXCLUDED.radical,
    frequency       = EXCLUDED.frequency,
    pinyin          = EXCLUDED.pinyin,
    pinyin_toneless = EXCLUDED.pinyin_toneless,
    tone            = EXCLUDED.tone,
    position        = EXCLUDED.position,
    load_id         = EXCLUDED.load_id,
    loaded_at       = EXCLUDED.loaded_at`

const getByCodepointSQL = `
SELECT codepoint, character, decomposition, radical, frequency, pinyin, pinyin_toneless, tone, position, load_id, loaded_at
FROM characters
WHERE codepoint = $1`

const countSQL = `SELECT count(*) FROM characters`

// Repo provides character persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new character repository. db is usually a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// BulkUpsert writes records using pgx.Batch. Existing codepoints are
// overwritten. Returns the number of rows written.
func (r *Repo) BulkUpsert(ctx context.Context, records []domain.StoredCharacter) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, c := range records {
		batch.Queue(upsertSQL,
			int32(c.Codepoint), c.Decomposition.Character, c.Decomposition.Decomposition,
			domain.IntPtrToInt16Ptr(c.Radical), c.Frequency, c.Pinyin, c.PinyinToneless,
			domain.IntPtrToInt16Ptr(c.Tone),
			int32(c.Position), c.LoadID, c.LoadedAt,
		)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var written int
	for i := range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return written, postgres.MapError(err, entity, fmt.Sprintf("U+%04X", records[i].Codepoint))
		}
		written += int(tag.RowsAffected())
	}

	return written, nil
}

// DeleteStale removes rows written by any load other than loadID.
func (r *Repo) DeleteStale(ctx context.Context, loadID uuid.UUID) (int, error) {
	query, args, err := psql.Delete("characters").
		Where(squirrel.NotEq{"load_id": loadID.String()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete stale query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "load", loadID)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByCodepoint returns the stored record for cp or domain.ErrNotFound.
func (r *Repo) GetByCodepoint(ctx context.Context, cp int) (*domain.StoredCharacter, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getByCodepointSQL, int32(cp))

	c, err := scanCharacter(row)
	if err != nil {
		return nil, postgres.MapError(err, entity, fmt.Sprintf("U+%04X", cp))
	}
	return &c, nil
}

// List returns stored records matching filter in load order.
func (r *Repo) List(ctx context.Context, filter domain.CharacterFilter) ([]domain.StoredCharacter, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.Normalize()

	builder := psql.Select(columns...).From("characters")
	if filter.Radical != nil {
		builder = builder.Where(squirrel.Eq{"radical": *filter.Radical})
	}
	if filter.Tone != nil {
		builder = builder.Where(squirrel.Eq{"tone": *filter.Tone})
	}
	if filter.Pinyin != nil {
		builder = builder.Where(squirrel.Eq{"pinyin_toneless": *filter.Pinyin})
	}
	builder = builder.OrderBy("position").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	result := make([]domain.StoredCharacter, 0, filter.Limit)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}

	return result, nil
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, countSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count characters: %w", err)
	}
	return int(n), nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanCharacter(row pgx.Row) (domain.StoredCharacter, error) {
	var (
		c                domain.StoredCharacter
		codepoint, pos   int32
		radical, toneNum *int16
	)
	err := row.Scan(
		&codepoint, &c.Decomposition.Character, &c.Decomposition.Decomposition,
		&radical, &c.Frequency, &c.Pinyin, &c.PinyinToneless, &toneNum,
		&pos, &c.LoadID, &c.LoadedAt,
	)
	if err != nil {
		return domain.StoredCharacter{}, err
	}

	c.Codepoint = int(codepoint)
	c.Position = int(pos)
	c.Radical = domain.Int16PtrToIntPtr(radical)
	c.Tone = domain.Int16PtrToIntPtr(toneNum)
	return c, nil
}
