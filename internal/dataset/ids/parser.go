// Package ids parses Ideographic Description Sequence tables: tab-separated
// files of codepoint, character and decomposition.
// Pure function: file path in, domain structs out. No database dependencies.
package ids

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/hanzi-ids/internal/domain"
)

const (
	columnCount = 3

	// DefaultCommentMarker is used when the caller passes an empty marker.
	DefaultCommentMarker = "#"

	// maxLineSize bounds a single row; IDS rows are short but some
	// distributions append long notes.
	maxLineSize = 1 << 20
)

// ParseResult holds the parsed decomposition table in source row order.
type ParseResult struct {
	Records []domain.Decomposition
	Stats   Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines          int
	CommentLines        int
	BlankLines          int
	ParsedRows          int
	Duplicates          int // rows whose codepoint was already seen
	CodepointMismatches int // rows whose character does not encode the codepoint
}

// Parse reads an IDS file. Lines starting with commentMarker are skipped;
// an empty marker means DefaultCommentMarker.
func Parse(filePath, commentMarker string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parse(f, filePath, commentMarker)
}

// parse reads rows from r. A repeated codepoint replaces the earlier row's
// content but keeps the earlier row's position.
func parse(r io.Reader, source, commentMarker string) (ParseResult, error) {
	if commentMarker == "" {
		commentMarker = DefaultCommentMarker
	}

	var result ParseResult
	index := make(map[int]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		result.Stats.TotalLines++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			result.Stats.BlankLines++
			continue
		}
		if strings.HasPrefix(line, commentMarker) {
			result.Stats.CommentLines++
			continue
		}

		rec, err := parseRow(line)
		if err != nil {
			return ParseResult{}, domain.NewMalformedInputError(source, lineNo, "%v", err)
		}

		if !encodesCodepoint(rec.Character, rec.Codepoint) {
			result.Stats.CodepointMismatches++
		}

		result.Stats.ParsedRows++
		if i, ok := index[rec.Codepoint]; ok {
			result.Stats.Duplicates++
			result.Records[i] = rec
			continue
		}
		index[rec.Codepoint] = len(result.Records)
		result.Records = append(result.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scanner error: %w", err)
	}

	return result, nil
}

// parseRow splits one data row into its three columns.
func parseRow(line string) (domain.Decomposition, error) {
	cols := strings.Split(line, "\t")
	if len(cols) != columnCount {
		return domain.Decomposition{}, fmt.Errorf("expected %d tab-separated columns, got %d", columnCount, len(cols))
	}

	cp, err := ParseCodepoint(cols[0])
	if err != nil {
		return domain.Decomposition{}, err
	}

	return domain.Decomposition{
		Codepoint:     cp,
		Character:     cols[1],
		Decomposition: cols[2],
	}, nil
}

// ParseCodepoint accepts a decimal integer ("19968") or the Unicode
// notation used by CHISE ("U+4E00", "U-0002A6A5").
func ParseCodepoint(s string) (int, error) {
	s = strings.TrimSpace(s)

	if len(s) > 2 && (s[:2] == "U+" || s[:2] == "U-" || s[:2] == "u+") {
		n, err := strconv.ParseInt(s[2:], 16, 32)
		if err != nil || n < 0 || n > utf8.MaxRune {
			return 0, fmt.Errorf("invalid codepoint %q", s)
		}
		return int(n), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > utf8.MaxRune {
		return 0, fmt.Errorf("invalid codepoint %q", s)
	}
	return n, nil
}

// encodesCodepoint reports whether s is exactly the single rune cp.
func encodesCodepoint(s string, cp int) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && r != utf8.RuneError && int(r) == cp
}
