package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kangxi radicals are numbered 1..214; tones 1..4 are marked, 5 is neutral.
const (
	MinRadical = 1
	MaxRadical = 214

	MinTone     = 1
	MaxTone     = 5
	NeutralTone = 5
)

// Decomposition is one row of the IDS source: a character and the
// Ideographic Description Sequence describing its glyph.
type Decomposition struct {
	Codepoint     int
	Character     string
	Decomposition string // opaque, passed through unmodified
}

// Reading is the surviving pronunciation of a character: the reading with
// the maximal (Frequency, Pinyin) pair.
type Reading struct {
	Pinyin    string
	Frequency float64
}

// Less orders readings by frequency first, then by the reading string.
func (r Reading) Less(other Reading) bool {
	if r.Frequency != other.Frequency {
		return r.Frequency < other.Frequency
	}
	return r.Pinyin < other.Pinyin
}

// Character is an enriched dictionary record.
// Frequency and Pinyin are set together; PinyinToneless and Tone are nil
// exactly when Pinyin is nil.
type Character struct {
	Decomposition

	Radical        *int
	Frequency      *float64
	Pinyin         *string
	PinyinToneless *string
	Tone           *int
}

// HasReading reports whether the character carries pronunciation data.
func (c Character) HasReading() bool {
	return c.Pinyin != nil
}

// CheckInvariants verifies the field-group invariants of an enriched record.
func (c Character) CheckInvariants() error {
	if (c.Frequency == nil) != (c.Pinyin == nil) {
		return fmt.Errorf("character U+%04X: frequency and pinyin must be set together", c.Codepoint)
	}
	if (c.PinyinToneless == nil) != (c.Pinyin == nil) || (c.Tone == nil) != (c.Pinyin == nil) {
		return fmt.Errorf("character U+%04X: tone fields must follow pinyin", c.Codepoint)
	}
	if c.Radical != nil && (*c.Radical < MinRadical || *c.Radical > MaxRadical) {
		return fmt.Errorf("character U+%04X: radical %d out of range", c.Codepoint, *c.Radical)
	}
	if c.Tone != nil && (*c.Tone < MinTone || *c.Tone > MaxTone) {
		return fmt.Errorf("character U+%04X: tone %d out of range", c.Codepoint, *c.Tone)
	}
	return nil
}

// StoredCharacter is a Character as persisted by a load run. Position is the
// record's index in the loaded table. The embedded Character shadows the
// character string; use Decomposition.Character for the glyph.
type StoredCharacter struct {
	Character

	Position int
	LoadID   uuid.UUID
	LoadedAt time.Time
}
