package ingest

import (
	"strings"

	"salesdash/domain/sales"
)

// Normalize strips whitespace from every header and renames the first
// header matching "order date" case-insensitively to the canonical
// Order Date label. It returns a new table and whether a date column was
// found; the caller's table is untouched. Normalizing an already-normalized
// table is a no-op.
func Normalize(rt *RawTable) (*RawTable, bool) {
	headers := make([]string, len(rt.Headers))
	for i, h := range rt.Headers {
		headers[i] = strings.TrimSpace(h)
	}

	found := false
	for i, h := range headers {
		if strings.EqualFold(h, sales.ColOrderDate) {
			headers[i] = sales.ColOrderDate
			found = true
			break
		}
	}

	return &RawTable{
		Headers:   headers,
		Rows:      rt.Rows,
		Delimiter: rt.Delimiter,
		Encoding:  rt.Encoding,
	}, found
}
