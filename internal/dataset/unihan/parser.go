// Package unihan parses Unihan property dumps serialized as JSON objects
// keyed by character: kRSKangXi (radical/stroke) and kHanyuPinlu
// (reading frequencies).
// Pure function: file path in, lookup tables out. No database dependencies.
package unihan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/hanzi-ids/internal/domain"
)

// ParseRadicals reads a kRSKangXi dump: character → "<radical>.<strokes>".
func ParseRadicals(filePath string) (map[string]int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parseRadicals(f, filePath)
}

// ParseReadings reads a kHanyuPinlu dump: character → {reading → frequency},
// keeping one reading per character (see selectReading).
func ParseReadings(filePath string) (map[string]domain.Reading, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parseReadings(f, filePath)
}

func parseRadicals(r io.Reader, source string) (map[string]int, error) {
	var raw map[string]string
	if err := decode(r, source, &raw); err != nil {
		return nil, err
	}

	radicals := make(map[string]int, len(raw))
	for char, value := range raw {
		radical, err := radicalNumber(value)
		if err != nil {
			return nil, domain.NewMalformedInputError(source, 0, "character %q: %v", char, err)
		}
		radicals[char] = radical
	}
	return radicals, nil
}

func parseReadings(r io.Reader, source string) (map[string]domain.Reading, error) {
	var raw map[string]map[string]float64
	if err := decode(r, source, &raw); err != nil {
		return nil, err
	}

	readings := make(map[string]domain.Reading, len(raw))
	for char, freqs := range raw {
		best, ok := selectReading(freqs)
		if !ok {
			return nil, domain.NewMalformedInputError(source, 0, "character %q has no readings", char)
		}
		readings[char] = best
	}
	return readings, nil
}

// radicalNumber takes the part of a kRSKangXi value before the first "."
// ("64.7" → 64).
func radicalNumber(value string) (int, error) {
	prefix, _, _ := strings.Cut(value, ".")
	n, err := strconv.Atoi(strings.TrimSpace(prefix))
	if err != nil {
		return 0, fmt.Errorf("radical prefix of %q is not an integer", value)
	}
	if n < domain.MinRadical || n > domain.MaxRadical {
		return 0, fmt.Errorf("radical %d out of range %d-%d", n, domain.MinRadical, domain.MaxRadical)
	}
	return n, nil
}

// selectReading returns the reading with the maximal (frequency, reading)
// pair: equal frequencies go to the lexicographically larger reading.
// The result does not depend on map iteration order.
func selectReading(freqs map[string]float64) (domain.Reading, bool) {
	var best domain.Reading
	found := false
	for pinyin, freq := range freqs {
		cand := domain.Reading{Pinyin: pinyin, Frequency: freq}
		if !found || best.Less(cand) {
			best = cand
			found = true
		}
	}
	return best, found
}

// decode unmarshals a whole JSON document, reporting shape problems as
// malformed input.
func decode(r io.Reader, source string, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			return domain.NewMalformedInputError(source, 0, "invalid JSON at offset %d: %v", syntaxErr.Offset, err)
		case errors.As(err, &typeErr):
			return domain.NewMalformedInputError(source, 0, "unexpected %s for %q", typeErr.Value, typeErr.Field)
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return domain.NewMalformedInputError(source, 0, "truncated or empty JSON document")
		default:
			return fmt.Errorf("decode %s: %w", source, err)
		}
	}
	return nil
}
