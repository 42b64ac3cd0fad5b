package ids

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/heartmarshall/hanzi-ids/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// --- Codepoint notation ---

func TestParseCodepoint(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"U+4E00", 0x4E00, false},
		{"u+4e00", 0x4E00, false},
		{"U-0002A6A5", 0x2A6A5, false},
		{"19968", 19968, false},
		{" 19968 ", 19968, false},
		{"U+", 0, true},
		{"U+XYZ", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
		{"U+110000", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCodepoint(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCodepoint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCodepoint(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// --- Full file parsing ---

func TestParse_Sample(t *testing.T) {
	result, err := Parse(testdataPath(t, "ids_sample.txt"), "#")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	wantChars := []string{"一", "明", "好", "马", "林", "妈", "中", "子"}
	if len(result.Records) != len(wantChars) {
		t.Fatalf("expected %d records, got %d", len(wantChars), len(result.Records))
	}
	for i, want := range wantChars {
		if result.Records[i].Character != want {
			t.Errorf("Records[%d].Character = %q, want %q", i, result.Records[i].Character, want)
		}
	}

	// Decimal codepoint column.
	if result.Records[4].Codepoint != 0x6797 {
		t.Errorf("decimal codepoint = %#x, want 0x6797", result.Records[4].Codepoint)
	}

	// Duplicate: last one wins, first position kept.
	if got := result.Records[2].Decomposition; got != "⿰女子[G]" {
		t.Errorf("duplicate row: Decomposition = %q, want last occurrence", got)
	}

	// Decomposition is passed through unmodified.
	if got := result.Records[1].Decomposition; got != "⿰日月" {
		t.Errorf("Records[1].Decomposition = %q", got)
	}

	stats := result.Stats
	if stats.TotalLines != 12 {
		t.Errorf("TotalLines = %d, want 12", stats.TotalLines)
	}
	if stats.CommentLines != 2 {
		t.Errorf("CommentLines = %d, want 2", stats.CommentLines)
	}
	if stats.BlankLines != 1 {
		t.Errorf("BlankLines = %d, want 1", stats.BlankLines)
	}
	if stats.ParsedRows != 9 {
		t.Errorf("ParsedRows = %d, want 9", stats.ParsedRows)
	}
	if stats.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", stats.Duplicates)
	}
	if stats.CodepointMismatches != 1 {
		t.Errorf("CodepointMismatches = %d, want 1", stats.CodepointMismatches)
	}
}

func TestParse_UniqueCodepoints(t *testing.T) {
	result, err := Parse(testdataPath(t, "ids_sample.txt"), "#")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	seen := make(map[int]bool)
	for _, r := range result.Records {
		if seen[r.Codepoint] {
			t.Errorf("codepoint %#x appears twice", r.Codepoint)
		}
		seen[r.Codepoint] = true
	}
}

func TestParse_WrongColumnCount(t *testing.T) {
	_, err := Parse(testdataPath(t, "ids_bad_columns.txt"), "#")
	if !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}

	var mie *domain.MalformedInputError
	if !errors.As(err, &mie) {
		t.Fatalf("expected *domain.MalformedInputError, got %T", err)
	}
	if mie.Line != 3 {
		t.Errorf("Line = %d, want 3", mie.Line)
	}
	if !strings.Contains(mie.Reason, "got 2") {
		t.Errorf("Reason = %q, want column count", mie.Reason)
	}
}

func TestParse_BadCodepoint(t *testing.T) {
	_, err := Parse(testdataPath(t, "ids_bad_codepoint.txt"), "#")
	if !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestParse_FileNotFound(t *testing.T) {
	_, err := Parse("/nonexistent/ids.txt", "#")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, domain.ErrMalformedInput) {
		t.Error("missing file must not be reported as malformed input")
	}
}

func TestParse_CustomCommentMarker(t *testing.T) {
	input := ";; header\n# not a comment here\tx\ty\nU+4E00\t一\t一\n"
	_, err := parse(strings.NewReader(input), "inline", ";;")
	if !errors.Is(err, domain.ErrMalformedInput) {
		t.Fatalf("'#' row should be parsed as data with marker ';;', got err=%v", err)
	}

	input = ";; header\nU+4E00\t一\t一\r\n"
	result, err := parse(strings.NewReader(input), "inline", ";;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Records) != 1 || result.Records[0].Decomposition != "一" {
		t.Errorf("records = %+v, want one row with CRLF stripped", result.Records)
	}
}

func TestParse_EmptyCommentMarkerUsesDefault(t *testing.T) {
	input := "# header\nU+4E00\t一\t一\nU+660E\t明\t⿰日月\n"
	result, err := parse(strings.NewReader(input), "inline", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Records) != 2 {
		t.Errorf("records = %d, want 2", len(result.Records))
	}
	if result.Stats.CommentLines != 1 {
		t.Errorf("CommentLines = %d, want 1", result.Stats.CommentLines)
	}
}

func TestParse_Empty(t *testing.T) {
	result, err := parse(strings.NewReader(""), "inline", "#")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("expected no records, got %d", len(result.Records))
	}
}

func TestEncodesCodepoint(t *testing.T) {
	tests := []struct {
		s    string
		cp   int
		want bool
	}{
		{"一", 0x4E00, true},
		{"一", 0x4E01, false},
		{"一一", 0x4E00, false},
		{"", 0, false},
		{"\U0002A6A5", 0x2A6A5, true},
	}
	for _, tt := range tests {
		if got := encodesCodepoint(tt.s, tt.cp); got != tt.want {
			t.Errorf("encodesCodepoint(%q, %#x) = %v, want %v", tt.s, tt.cp, got, tt.want)
		}
	}
}
