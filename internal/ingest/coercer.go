package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"salesdash/domain/sales"
	"salesdash/internal/errors"
)

// dateFormat is one candidate parsing strategy for the Order Date column.
// Strategies run in declared order; a strategy succeeds only when every row
// parses, so a single bad value advances to the next candidate. The order
// is deliberate precedence: day-first inference runs before strict ISO, and
// it matters on ambiguous inputs like 03/04/2023.
type dateFormat struct {
	name  string
	parse func(string) (time.Time, error)
}

var dateFormats = []dateFormat{
	{"mixed day-first", parseDayFirst},
	{"DD/MM/YYYY", strictLayout("02/01/2006")},
	{"DD-MM-YYYY", strictLayout("02-01-2006")},
	{"YYYY-MM-DD", strictLayout("2006-01-02")},
	{"auto-infer", parseInferred},
}

// dayFirstLayouts resolve ambiguous numeric dates with day-first bias
var dayFirstLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2 January 2006",
	"02 Jan 2006",
}

// inferredLayouts are the unconstrained last-resort candidates
var inferredLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

func strictLayout(layout string) func(string) (time.Time, error) {
	return func(s string) (time.Time, error) {
		return time.Parse(layout, strings.TrimSpace(s))
	}
}

func parseDayFirst(s string) (time.Time, error) {
	return parseAny(s, dayFirstLayouts)
}

func parseInferred(s string) (time.Time, error) {
	return parseAny(s, inferredLayouts)
}

func parseAny(s string, layouts []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Coerce converts a normalized raw table into a typed transaction table:
// Order Date cells become calendar dates, measure columns become floats
// with explicit missing markers, and every other column stays text.
func Coerce(rt *RawTable) (*sales.Table, error) {
	dateIdx, ok := rt.Column(sales.ColOrderDate)
	if !ok {
		return nil, errors.SchemaError("missing required columns: " + sales.ColOrderDate)
	}

	dates, err := coerceDates(rt.Cells(dateIdx))
	if err != nil {
		return nil, err
	}

	numbers := make(map[string][]sales.Number)
	text := make(map[string][]string)
	for i, header := range rt.Headers {
		if header == sales.ColOrderDate {
			continue
		}
		if isMeasure(header) {
			col, coerced := coerceNumbers(rt.Cells(i))
			if !coerced {
				return nil, errors.NumericCoercionError(fmt.Sprintf(
					"%q column contains no valid numbers; found: %v", header, sampleRaw(rt.Cells(i), 3)))
			}
			numbers[header] = col
			continue
		}
		text[header] = rt.Cells(i)
	}

	return sales.NewTable(rt.Headers, dates, numbers, text)
}

// coerceDates tries each candidate format against the whole column and
// keeps the first that parses every row.
func coerceDates(cells []string) ([]time.Time, error) {
	for _, format := range dateFormats {
		dates, ok := tryFormat(cells, format.parse)
		if ok {
			return dates, nil
		}
	}

	samples := make([]string, 0, 3)
	for _, cell := range cells {
		samples = append(samples, cell)
		if len(samples) == 3 {
			break
		}
	}
	return nil, errors.DateCoercionError(fmt.Sprintf(
		"cannot parse 'Order Date' column; sample values: %v; supported formats: DD/MM/YYYY, DD-MM-YYYY, YYYY-MM-DD, ISO",
		samples))
}

func tryFormat(cells []string, parse func(string) (time.Time, error)) ([]time.Time, bool) {
	dates := make([]time.Time, len(cells))
	for i, cell := range cells {
		t, err := parse(cell)
		if err != nil {
			return nil, false
		}
		dates[i] = t
	}
	return dates, true
}

// coerceNumbers converts cells to floats, marking unparseable cells
// missing. It reports false when no cell at all yields a finite number,
// the column-level failure mode.
func coerceNumbers(cells []string) ([]sales.Number, bool) {
	col := make([]sales.Number, len(cells))
	any := false
	for i, cell := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			col[i] = sales.MissingNumber()
			continue
		}
		col[i] = sales.Num(v)
		any = true
	}
	return col, any
}

func isMeasure(header string) bool {
	for _, m := range sales.MeasureColumns {
		if header == m {
			return true
		}
	}
	return false
}

// sampleRaw collects up to n distinct non-empty raw values for diagnostics
func sampleRaw(cells []string, n int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if _, dup := seen[cell]; dup {
			continue
		}
		seen[cell] = struct{}{}
		out = append(out, cell)
		if len(out) == n {
			break
		}
	}
	return out
}
