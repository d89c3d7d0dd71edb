package sales

import (
	"fmt"
	"time"
)

// Month is a (year, month) calendar period used as a grouping key for
// time-series aggregation and month-over-month comparison.
type Month struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthOf buckets a timestamp into its calendar month
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month())}
}

// Valid reports whether the selectors form a real calendar month
func (m Month) Valid() bool {
	return m.Year >= 1 && m.Month >= 1 && m.Month <= 12
}

// Label renders the period as a stable sortable "YYYY-MM" string
func (m Month) Label() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Previous returns the preceding month, rolling January back to December
// of the previous year.
func (m Month) Previous() Month {
	if m.Month <= 1 {
		return Month{Year: m.Year - 1, Month: 12}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Contains reports whether a timestamp falls in this month
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && int(t.Month()) == m.Month
}
