package sales

import (
	"encoding/csv"
	"io"
	"strconv"
)

// isoDate is the layout used when re-rendering dates for export
const isoDate = "2006-01-02"

// WriteCSV writes the table as UTF-8 CSV with the original column order.
// Dates are re-rendered in ISO form; missing numeric cells become empty
// fields.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.headers); err != nil {
		return err
	}
	record := make([]string, len(t.headers))
	for i := 0; i < t.rows; i++ {
		for j, name := range t.headers {
			if name == ColOrderDate {
				record[j] = t.dates[i].Format(isoDate)
				continue
			}
			if col, ok := t.numbers[name]; ok {
				if col[i].Missing {
					record[j] = ""
				} else {
					record[j] = strconv.FormatFloat(col[i].Value, 'f', -1, 64)
				}
				continue
			}
			if col, ok := t.text[name]; ok {
				record[j] = col[i]
			} else {
				record[j] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
