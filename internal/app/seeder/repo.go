// Package seeder loads the enriched character table and persists it.
package seeder

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/hanzi-ids/internal/domain"
)

// CharacterBulkRepo defines the batch repository contract consumed by the
// seeder pipeline. Implemented by character.Repo.
type CharacterBulkRepo interface {
	// BulkUpsert writes records, overwriting existing codepoints.
	BulkUpsert(ctx context.Context, records []domain.StoredCharacter) (int, error)

	// DeleteStale removes rows not written by loadID.
	DeleteStale(ctx context.Context, loadID uuid.UUID) (int, error)
}

// TxRunner runs fn in a transaction carried by ctx. Implemented by
// postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
