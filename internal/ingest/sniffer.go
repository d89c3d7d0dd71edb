package ingest

import (
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"salesdash/internal/errors"
)

// parseStrategy is one delimiter attempt. Strategies run in declared order;
// the first parse yielding more than one column and at least one data row
// wins. This is a heuristic, not a guaranteed format sniffer: an ambiguous
// file may pick the wrong delimiter if it happens to produce >1 column.
type parseStrategy struct {
	label     string
	delimiter rune
}

// Delimiters in order of likelihood
var parseStrategies = []parseStrategy{
	{"comma (,)", ','},
	{"semicolon (;)", ';'},
	{"tab", '\t'},
	{"pipe (|)", '|'},
}

// Sniff parses raw bytes into a table by trying each delimiter with UTF-8
// decoding, falling back to Latin-1 when the bytes are not valid UTF-8.
// Latin-1 decodes arbitrary bytes, so the fallback never fails.
func Sniff(data []byte) (*RawTable, error) {
	for _, strat := range parseStrategies {
		text, encoding, err := decodeText(data)
		if err != nil {
			continue
		}
		rt, err := parseDelimited(text, strat.delimiter)
		if err != nil {
			continue
		}
		if len(rt.Headers) > 1 && len(rt.Rows) > 0 {
			rt.Delimiter = strat.delimiter
			rt.Encoding = encoding
			return rt, nil
		}
	}

	labels := make([]string, len(parseStrategies))
	for i, strat := range parseStrategies {
		labels[i] = strat.label
	}
	return nil, errors.ParseError(fmt.Sprintf(
		"failed to parse CSV file; tried delimiters: %s; file may be corrupted, empty, or in an unusual format",
		strings.Join(labels, ", ")))
}

// decodeText decodes bytes as UTF-8, falling back to Latin-1
func decodeText(data []byte) (string, string, error) {
	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", err
	}
	return string(decoded), "latin-1", nil
}

func parseDelimited(text string, delimiter rune) (*RawTable, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delimiter
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records")
	}
	return &RawTable{Headers: records[0], Rows: records[1:]}, nil
}
