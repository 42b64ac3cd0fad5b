package domain

import (
	"errors"
	"testing"
)

func TestReading_Less(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Reading
		want bool
	}{
		{"lower frequency", Reading{"ma4", 1}, Reading{"ma1", 2}, true},
		{"higher frequency", Reading{"ma1", 9}, Reading{"ma4", 2}, false},
		{"tie broken by reading", Reading{"ma1", 5}, Reading{"ma4", 5}, true},
		{"tie reversed", Reading{"ma4", 5}, Reading{"ma1", 5}, false},
		{"identical", Reading{"ma4", 5}, Reading{"ma4", 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCharacter_CheckInvariants(t *testing.T) {
	t.Parallel()

	base := Decomposition{Codepoint: 0x9A6C, Character: "马", Decomposition: "马"}

	tests := []struct {
		name    string
		c       Character
		wantErr bool
	}{
		{name: "bare record", c: Character{Decomposition: base}},
		{
			name: "fully enriched",
			c: Character{
				Decomposition:  base,
				Radical:        Ptr(187),
				Frequency:      Ptr(112.0),
				Pinyin:         Ptr("mǎ"),
				PinyinToneless: Ptr("ma"),
				Tone:           Ptr(3),
			},
		},
		{
			name:    "pinyin without frequency",
			c:       Character{Decomposition: base, Pinyin: Ptr("mǎ"), PinyinToneless: Ptr("ma"), Tone: Ptr(3)},
			wantErr: true,
		},
		{
			name:    "pinyin without tone",
			c:       Character{Decomposition: base, Frequency: Ptr(1.0), Pinyin: Ptr("mǎ")},
			wantErr: true,
		},
		{
			name:    "radical out of range",
			c:       Character{Decomposition: base, Radical: Ptr(215)},
			wantErr: true,
		},
		{
			name: "tone out of range",
			c: Character{
				Decomposition: base, Frequency: Ptr(1.0), Pinyin: Ptr("ma"),
				PinyinToneless: Ptr("ma"), Tone: Ptr(6),
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.c.CheckInvariants()
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckInvariants() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCharacterFilter(t *testing.T) {
	t.Parallel()

	f := CharacterFilter{Limit: 5000, Offset: -3}
	f.Normalize()
	if f.Limit != maxFilterLimit || f.Offset != 0 {
		t.Fatalf("Normalize() = limit %d offset %d", f.Limit, f.Offset)
	}

	empty := CharacterFilter{}
	empty.Normalize()
	if empty.Limit != defaultFilterLimit {
		t.Fatalf("default limit = %d, want %d", empty.Limit, defaultFilterLimit)
	}
	if empty.Pinyin != nil {
		t.Fatal("Normalize() must not set an absent pinyin")
	}

	lv := CharacterFilter{Pinyin: Ptr("l\u00fc")}
	lv.Normalize()
	if *lv.Pinyin != "lu\u0308" {
		t.Fatalf("Normalize() pinyin = %q, want decomposed lu\u0308", *lv.Pinyin)
	}

	if err := (CharacterFilter{Radical: Ptr(64), Tone: Ptr(5)}).Validate(); err != nil {
		t.Fatalf("valid filter rejected: %v", err)
	}

	err := CharacterFilter{Radical: Ptr(0), Tone: Ptr(9), Pinyin: Ptr("")}.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Errors) != 3 {
		t.Fatalf("expected 3 field errors, got %v", err)
	}
}
