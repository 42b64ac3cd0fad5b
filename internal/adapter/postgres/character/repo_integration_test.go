package character_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/hanzi-ids/internal/adapter/postgres"
	"github.com/heartmarshall/hanzi-ids/internal/adapter/postgres/character"
	"github.com/heartmarshall/hanzi-ids/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/hanzi-ids/internal/domain"
)

func stored(pos, cp int, ch, decomp string, loadID uuid.UUID, loadedAt time.Time) domain.StoredCharacter {
	return domain.StoredCharacter{
		Character: domain.Character{
			Decomposition: domain.Decomposition{Codepoint: cp, Character: ch, Decomposition: decomp},
		},
		Position: pos,
		LoadID:   loadID,
		LoadedAt: loadedAt,
	}
}

func withReading(c domain.StoredCharacter, radical int, freq float64, pinyin, toneless string, tone int) domain.StoredCharacter {
	c.Radical = &radical
	c.Frequency = &freq
	c.Pinyin = &pinyin
	c.PinyinToneless = &toneless
	c.Tone = &tone
	return c
}

func TestRepo_Integration_UpsertAndRead(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)
	repo := character.New(pool)
	ctx := context.Background()

	loadID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	records := []domain.StoredCharacter{
		withReading(stored(0, 0x4E00, "一", "一", loadID, now), 1, 3202, "yī", "yi", 1),
		stored(1, 0x6797, "林", "⿰木木", loadID, now),
		withReading(stored(2, 0x5988, "妈", "⿰女马", loadID, now), 38, 45, "mā", "ma", 1),
		withReading(stored(3, 0x9A6C, "马", "⿹⿺㇉一", loadID, now), 187, 279, "mǎ", "ma", 3),
	}
	records[1].Radical = domain.Ptr(75)

	n, err := repo.BulkUpsert(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	got, err := repo.GetByCodepoint(ctx, 0x9A6C)
	require.NoError(t, err)
	assert.Equal(t, "马", got.Decomposition.Character)
	assert.Equal(t, domain.Ptr(3), got.Tone)
	assert.Equal(t, domain.Ptr(279.0), got.Frequency)
	assert.Equal(t, loadID, got.LoadID)
	assert.True(t, now.Equal(got.LoadedAt))

	lin, err := repo.GetByCodepoint(ctx, 0x6797)
	require.NoError(t, err)
	assert.False(t, lin.HasReading())
	assert.Equal(t, domain.Ptr(75), lin.Radical)

	_, err = repo.GetByCodepoint(ctx, 0x5B57)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ma, err := repo.List(ctx, domain.CharacterFilter{Pinyin: domain.Ptr("ma")})
	require.NoError(t, err)
	require.Len(t, ma, 2)
	assert.Equal(t, 0x5988, ma[0].Codepoint, "list follows load order")
	assert.Equal(t, 0x9A6C, ma[1].Codepoint)

	tone3, err := repo.List(ctx, domain.CharacterFilter{Pinyin: domain.Ptr("ma"), Tone: domain.Ptr(3)})
	require.NoError(t, err)
	require.Len(t, tone3, 1)
	assert.Equal(t, "马", tone3[0].Decomposition.Character)

	page, err := repo.List(ctx, domain.CharacterFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 1, page[0].Position)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestRepo_Integration_ReloadReplacesTable(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)
	repo := character.New(pool)
	txm := postgres.NewTxManager(pool)
	ctx := context.Background()

	first := uuid.New()
	now := time.Now().UTC()
	_, err := repo.BulkUpsert(ctx, []domain.StoredCharacter{
		stored(0, 0x4E00, "一", "一", first, now),
		stored(1, 0x660E, "明", "⿰日月", first, now),
	})
	require.NoError(t, err)

	second := uuid.New()
	err = txm.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := repo.BulkUpsert(ctx, []domain.StoredCharacter{
			stored(0, 0x660E, "明", "⿰日月", second, now),
		}); err != nil {
			return err
		}
		deleted, err := repo.DeleteStale(ctx, second)
		if err != nil {
			return err
		}
		assert.Equal(t, 1, deleted)
		return nil
	})
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	ming, err := repo.GetByCodepoint(ctx, 0x660E)
	require.NoError(t, err)
	assert.Equal(t, second, ming.LoadID)
	assert.Equal(t, 0, ming.Position)
}

func TestRepo_Integration_CheckConstraints(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)
	repo := character.New(pool)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(c *domain.StoredCharacter)
	}{
		{"radical out of range", func(c *domain.StoredCharacter) { c.Radical = domain.Ptr(215) }},
		{"tone out of range", func(c *domain.StoredCharacter) {
			*c = withReading(*c, 1, 1, "yi", "yi", 6)
		}},
		{"partial reading group", func(c *domain.StoredCharacter) { c.Pinyin = domain.Ptr("yī") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := stored(0, 0x4E00, "一", "一", uuid.New(), time.Now())
			tt.mutate(&c)

			_, err := repo.BulkUpsert(ctx, []domain.StoredCharacter{c})
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
