// Package sales defines the transaction table domain model: an ordered,
// columnar collection of sales records with a typed date column, typed
// numeric measures, and free-text dimension columns.
package sales

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"salesdash/domain/core"
)

// Canonical column labels recognized by the pipeline.
const (
	ColOrderDate = "Order Date"
	ColSales     = "Sales"
	ColProfit    = "Profit"
	ColCategory  = "Category"
	ColRegion    = "Region"
	ColProduct   = "Product Name"
	ColCustomer  = "Customer Name"
)

// MeasureColumns are the columns coerced to numbers when present.
var MeasureColumns = []string{ColSales, ColProfit}

// Number is a numeric cell: either a finite float or an explicit missing
// marker. Cells are never raw strings after coercion.
type Number struct {
	Value   float64 `json:"value"`
	Missing bool    `json:"missing,omitempty"`
}

// Num wraps a float in a present Number
func Num(v float64) Number { return Number{Value: v} }

// MissingNumber returns the explicit missing marker
func MissingNumber() Number { return Number{Missing: true} }

// Table is a validated transaction table. Every row has a calendar date and
// a Sales cell that is a finite float or explicitly missing. Optional
// columns are queried, never assumed.
type Table struct {
	headers []string
	dates   []time.Time
	numbers map[string][]Number
	text    map[string][]string
	rows    int
}

// NewTable builds a table from coerced columns. Every column must have the
// same length; headers carry the original column order for export.
func NewTable(headers []string, dates []time.Time, numbers map[string][]Number, text map[string][]string) (*Table, error) {
	rows := len(dates)
	for name, col := range numbers {
		if len(col) != rows {
			return nil, fmt.Errorf("column %q has %d cells, expected %d", name, len(col), rows)
		}
	}
	for name, col := range text {
		if len(col) != rows {
			return nil, fmt.Errorf("column %q has %d cells, expected %d", name, len(col), rows)
		}
	}
	if numbers == nil {
		numbers = make(map[string][]Number)
	}
	if text == nil {
		text = make(map[string][]string)
	}
	return &Table{
		headers: append([]string(nil), headers...),
		dates:   dates,
		numbers: numbers,
		text:    text,
		rows:    rows,
	}, nil
}

// Len returns the number of rows
func (t *Table) Len() int { return t.rows }

// Headers returns the column labels in original order
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// HasColumn reports whether a column is present
func (t *Table) HasColumn(name string) bool {
	if name == ColOrderDate {
		return true
	}
	if _, ok := t.numbers[name]; ok {
		return true
	}
	_, ok := t.text[name]
	return ok
}

// Dates returns the Order Date column. The slice is shared; callers must
// not mutate it.
func (t *Table) Dates() []time.Time { return t.dates }

// Numbers returns a numeric column and whether it exists. The slice is
// shared; callers must not mutate it.
func (t *Table) Numbers(name string) ([]Number, bool) {
	col, ok := t.numbers[name]
	return col, ok
}

// Text returns a text column and whether it exists. The slice is shared;
// callers must not mutate it.
func (t *Table) Text(name string) ([]string, bool) {
	col, ok := t.text[name]
	return col, ok
}

// Clone returns a deep working copy. Aggregations operate on clones so the
// caller's table is never mutated.
func (t *Table) Clone() *Table {
	numbers := make(map[string][]Number, len(t.numbers))
	for name, col := range t.numbers {
		numbers[name] = append([]Number(nil), col...)
	}
	text := make(map[string][]string, len(t.text))
	for name, col := range t.text {
		text[name] = append([]string(nil), col...)
	}
	return &Table{
		headers: append([]string(nil), t.headers...),
		dates:   append([]time.Time(nil), t.dates...),
		numbers: numbers,
		text:    text,
		rows:    t.rows,
	}
}

// Fingerprint derives a content hash of headers and cells, used as the
// cache key component identifying this table.
func (t *Table) Fingerprint() core.Fingerprint {
	var b strings.Builder
	b.WriteString(strings.Join(t.headers, "\x1f"))
	b.WriteByte('\n')
	for i := 0; i < t.rows; i++ {
		b.WriteString(t.dates[i].Format(time.RFC3339))
		for _, name := range t.headers {
			b.WriteByte('\x1f')
			b.WriteString(t.cellString(name, i))
		}
		b.WriteByte('\n')
	}
	return core.NewFingerprint([]byte(b.String()))
}

// MinDate returns the earliest Order Date, or false for an empty table
func (t *Table) MinDate() (time.Time, bool) {
	if t.rows == 0 {
		return time.Time{}, false
	}
	min := t.dates[0]
	for _, d := range t.dates[1:] {
		if d.Before(min) {
			min = d
		}
	}
	return min, true
}

// MaxDate returns the latest Order Date, or false for an empty table
func (t *Table) MaxDate() (time.Time, bool) {
	if t.rows == 0 {
		return time.Time{}, false
	}
	max := t.dates[0]
	for _, d := range t.dates[1:] {
		if d.After(max) {
			max = d
		}
	}
	return max, true
}

// DistinctText returns the distinct values of a text column in encounter
// order, skipping empty cells. Absent columns yield an empty slice.
func (t *Table) DistinctText(name string) []string {
	col, ok := t.text[name]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{}, len(col))
	var out []string
	for _, v := range col {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (t *Table) cellString(name string, row int) string {
	if name == ColOrderDate {
		return ""
	}
	if col, ok := t.numbers[name]; ok {
		if col[row].Missing {
			return ""
		}
		return strconv.FormatFloat(col[row].Value, 'f', -1, 64)
	}
	if col, ok := t.text[name]; ok {
		return col[row]
	}
	return ""
}
