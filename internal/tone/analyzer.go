// Package tone splits a single romanized Mandarin syllable into its
// segmental content and tone number.
// Pure functions: no I/O, no shared mutable state.
package tone

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/hanzi-ids/internal/domain"
)

// toneMarks maps the combining diacritics used as Pinyin tone marks to
// their tone digits. Every other rune passes through translate unchanged.
var toneMarks = map[rune]rune{
	'\u0304': '1', // combining macron: ā
	'\u0301': '2', // combining acute: á
	'\u030C': '3', // combining caron: ǎ
	'\u0300': '4', // combining grave: à
}

// syllablePattern accepts segmental text around at most one tone digit 1-5.
// \p{Nd} keeps non-ASCII digits out of the segmental groups.
var syllablePattern = regexp.MustCompile(`^([^\p{Nd}]*)([1-5]?)([^\p{Nd}]*)$`)

// Syllable is an analyzed pronunciation.
type Syllable struct {
	Segmental string // NFD, tone mark or digit removed
	Tone      int    // 1..4, or 5 for the neutral tone
}

// Parse analyzes a pronunciation such as "mā", "ma1" or "ma".
// A pronunciation without a tone mark or digit carries the neutral tone.
// Input that does not fit the single-tone pattern returns a
// *domain.ToneParseError; there is no fallback value.
func Parse(pronunciation string) (Syllable, error) {
	translated := translate(norm.NFD.String(pronunciation))

	m := syllablePattern.FindStringSubmatch(translated)
	if m == nil {
		return Syllable{}, &domain.ToneParseError{Input: pronunciation, Translated: translated}
	}

	tone := domain.NeutralTone
	if m[2] != "" {
		tone = int(m[2][0] - '0')
	}

	return Syllable{
		Segmental: m[1] + m[3],
		Tone:      tone,
	}, nil
}

// Analyze is Parse lifted over an optional pronunciation: nil in, nils out.
func Analyze(pronunciation *string) (*string, *int, error) {
	if pronunciation == nil {
		return nil, nil, nil
	}

	syl, err := Parse(*pronunciation)
	if err != nil {
		return nil, nil, err
	}
	return &syl.Segmental, &syl.Tone, nil
}

// translate replaces combining tone marks with tone digits.
// The input must already be in NFD.
func translate(decomposed string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := toneMarks[r]; ok {
			return d
		}
		return r
	}, decomposed)
}
