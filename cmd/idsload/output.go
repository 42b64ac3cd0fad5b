package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/heartmarshall/hanzi-ids/internal/domain"
)

var tsvHeader = []string{
	"codepoint", "character", "decomposition",
	"radical", "frequency", "pinyin", "pinyin_toneless", "tone",
}

// writeTSV prints records one per line. Absent values are empty fields.
func writeTSV(w io.Writer, records []domain.Character) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(tsvHeader, "\t") + "\n"); err != nil {
		return err
	}

	fields := make([]string, len(tsvHeader))
	for _, c := range records {
		fields[0] = "U+" + strings.ToUpper(strconv.FormatInt(int64(c.Codepoint), 16))
		fields[1] = c.Character
		fields[2] = c.Decomposition.Decomposition
		fields[3] = optInt(c.Radical)
		fields[4] = ""
		if c.Frequency != nil {
			fields[4] = strconv.FormatFloat(*c.Frequency, 'f', -1, 64)
		}
		fields[5] = optString(c.Pinyin)
		fields[6] = optString(c.PinyinToneless)
		fields[7] = optInt(c.Tone)

		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
