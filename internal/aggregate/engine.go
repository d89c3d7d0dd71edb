// Package aggregate implements the aggregation engine and growth metrics
// over validated transaction tables. Every operation takes a defensive
// working copy and never mutates the caller's table, so concurrent
// aggregations over one loaded table are safe by construction.
package aggregate

import (
	"sort"
	"time"

	"salesdash/domain/sales"
)

// DefaultTopN is used when a ranking size is missing or invalid
const DefaultTopN = 10

// DailyBucket is one calendar day's summed sales
type DailyBucket struct {
	Date  time.Time `json:"date"`
	Sales float64   `json:"sales"`
}

// MonthlyBucket is one calendar month's summed sales, with the period
// rendered as a stable sortable "YYYY-MM" label
type MonthlyBucket struct {
	Period string  `json:"period"`
	Sales  float64 `json:"sales"`
}

// YearlyBucket is one calendar year's summed sales
type YearlyBucket struct {
	Year  int     `json:"year"`
	Sales float64 `json:"sales"`
}

// DimensionBucket is one dimension value's summed sales
type DimensionBucket struct {
	Key   string  `json:"key"`
	Sales float64 `json:"sales"`
}

// SanitizeTopN coerces a ranking size to a positive integer, falling back
// to the default on invalid input
func SanitizeTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	return n
}

// DailySales groups sales by calendar date, time-of-day discarded, sorted
// ascending by date.
func DailySales(t *sales.Table) []DailyBucket {
	t = t.Clone()
	salesCol := measureValues(t)

	sums := make(map[time.Time]float64)
	for i, d := range t.Dates() {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		sums[day] += presentValue(salesCol[i])
	}

	out := make([]DailyBucket, 0, len(sums))
	for day, sum := range sums {
		out = append(out, DailyBucket{Date: day, Sales: sum})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// MonthlySales groups sales by (year, month) period, sorted ascending by
// period label.
func MonthlySales(t *sales.Table) []MonthlyBucket {
	t = t.Clone()
	salesCol := measureValues(t)

	sums := make(map[string]float64)
	for i, d := range t.Dates() {
		sums[sales.MonthOf(d).Label()] += presentValue(salesCol[i])
	}

	out := make([]MonthlyBucket, 0, len(sums))
	for period, sum := range sums {
		out = append(out, MonthlyBucket{Period: period, Sales: sum})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// YearlySales groups sales by calendar year, sorted ascending by year
func YearlySales(t *sales.Table) []YearlyBucket {
	t = t.Clone()
	salesCol := measureValues(t)

	sums := make(map[int]float64)
	for i, d := range t.Dates() {
		sums[d.Year()] += presentValue(salesCol[i])
	}

	out := make([]YearlyBucket, 0, len(sums))
	for year, sum := range sums {
		out = append(out, YearlyBucket{Year: year, Sales: sum})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// CategorySales groups sales by category, sorted descending by sum. An
// absent Category column yields an explicitly empty result.
func CategorySales(t *sales.Table) []DimensionBucket {
	return groupByDimension(t, sales.ColCategory)
}

// RegionSales groups sales by region, sorted descending by sum. An absent
// Region column yields an explicitly empty result.
func RegionSales(t *sales.Table) []DimensionBucket {
	return groupByDimension(t, sales.ColRegion)
}

// TopProducts ranks products by summed sales, truncated to n
func TopProducts(t *sales.Table, n int) []DimensionBucket {
	return truncate(groupByDimension(t, sales.ColProduct), n)
}

// TopCustomers ranks customers by summed sales, truncated to n
func TopCustomers(t *sales.Table, n int) []DimensionBucket {
	return truncate(groupByDimension(t, sales.ColCustomer), n)
}

// groupByDimension sums sales per dimension value. Rows with an empty
// dimension cell are dropped rather than bucketed as "unknown"; that is
// current behavior, not a long-term contract, and it silently excludes
// incomplete rows from the dimension total. Ties in the descending sort
// keep original key encounter order (stable sort).
func groupByDimension(t *sales.Table, column string) []DimensionBucket {
	t = t.Clone()
	col, ok := t.Text(column)
	if !ok {
		return []DimensionBucket{}
	}
	salesCol := measureValues(t)

	sums := make(map[string]float64)
	var order []string
	for i := range t.Dates() {
		key := col[i]
		if key == "" {
			continue
		}
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += presentValue(salesCol[i])
	}

	out := make([]DimensionBucket, 0, len(order))
	for _, key := range order {
		out = append(out, DimensionBucket{Key: key, Sales: sums[key]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sales > out[j].Sales })
	return out
}

func truncate(buckets []DimensionBucket, n int) []DimensionBucket {
	n = SanitizeTopN(n)
	if len(buckets) > n {
		return buckets[:n]
	}
	return buckets
}

// measureValues returns the Sales column, or an all-missing column of the
// table's length when Sales is absent, so grouping never indexes past a
// column that is not there.
func measureValues(t *sales.Table) []sales.Number {
	col, ok := t.Numbers(sales.ColSales)
	if ok {
		return col
	}
	col = make([]sales.Number, t.Len())
	for i := range col {
		col[i] = sales.MissingNumber()
	}
	return col
}

// presentValue treats missing cells as contributing nothing to a sum
func presentValue(n sales.Number) float64 {
	if n.Missing {
		return 0
	}
	return n.Value
}
