// Package ingest implements the CSV ingestion-and-validation pipeline:
// delimiter/encoding sniffing, schema normalization, field validation, and
// date/numeric coercion into a typed transaction table.
package ingest

// RawTable is a structurally parsed but untyped table: a header row plus
// string cells, straight out of the sniffer. Coercion turns it into a
// sales.Table.
type RawTable struct {
	Headers []string
	Rows    [][]string

	// Detection metadata, informational only
	Delimiter rune
	Encoding  string
}

// Column returns the index of a column by exact header match
func (rt *RawTable) Column(name string) (int, bool) {
	for i, h := range rt.Headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// Cells returns one column's raw string cells
func (rt *RawTable) Cells(idx int) []string {
	out := make([]string, len(rt.Rows))
	for i, row := range rt.Rows {
		out[i] = row[idx]
	}
	return out
}
