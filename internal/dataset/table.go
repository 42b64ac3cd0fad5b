package dataset

import "github.com/heartmarshall/hanzi-ids/internal/domain"

// Table is the enriched dictionary, in decomposition source row order and
// indexed by codepoint and by character. It is read-only once built.
type Table struct {
	records     []domain.Character
	byCodepoint map[int]int
	byCharacter map[string]int
}

func newTable(records []domain.Character) *Table {
	t := &Table{
		records:     records,
		byCodepoint: make(map[int]int, len(records)),
		byCharacter: make(map[string]int, len(records)),
	}
	for i, r := range records {
		t.byCodepoint[r.Codepoint] = i
		if _, ok := t.byCharacter[r.Character]; !ok {
			t.byCharacter[r.Character] = i
		}
	}
	return t
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of all records in source order.
func (t *Table) Records() []domain.Character {
	out := make([]domain.Character, len(t.records))
	copy(out, t.records)
	return out
}

// ByCodepoint returns the record for a codepoint.
func (t *Table) ByCodepoint(cp int) (domain.Character, bool) {
	i, ok := t.byCodepoint[cp]
	if !ok {
		return domain.Character{}, false
	}
	return t.records[i], true
}

// ByCharacter returns the first record whose character column equals ch.
func (t *Table) ByCharacter(ch string) (domain.Character, bool) {
	i, ok := t.byCharacter[ch]
	if !ok {
		return domain.Character{}, false
	}
	return t.records[i], true
}
