package aggregate

import (
	"fmt"
	"time"

	"salesdash/domain/sales"
	"salesdash/internal/errors"
)

// YoYGrowth computes year-over-year percentage change of a metric between
// two calendar years, summed over all rows in each year. No date-range
// filter is applied here: callers comparing filtered views must pre-filter
// consistently for both periods. A zero previous-period sum (including a
// year with no rows) yields 0 rather than a division error. Invalid year
// selectors fail loudly with an INVALID_PERIOD error.
func YoYGrowth(t *sales.Table, currentYear, previousYear int, metric string) (float64, error) {
	if currentYear < 1 || previousYear < 1 {
		return 0, errors.InvalidPeriod(fmt.Sprintf("invalid year selectors: current=%d previous=%d", currentYear, previousYear))
	}
	col, err := metricColumn(t, metric)
	if err != nil {
		return 0, err
	}

	current := sumWhere(t, col, func(d time.Time) bool { return d.Year() == currentYear })
	previous := sumWhere(t, col, func(d time.Time) bool { return d.Year() == previousYear })
	return growthPercent(current, previous), nil
}

// MoMChange computes month-over-month percentage change of a metric between
// two (year, month) periods, with the same full-table and zero-previous
// semantics as YoYGrowth.
func MoMChange(t *sales.Table, current, previous sales.Month, metric string) (float64, error) {
	if !current.Valid() || !previous.Valid() {
		return 0, errors.InvalidPeriod(fmt.Sprintf("invalid month selectors: current=%+v previous=%+v", current, previous))
	}
	col, err := metricColumn(t, metric)
	if err != nil {
		return 0, err
	}

	cur := sumWhere(t, col, current.Contains)
	prev := sumWhere(t, col, previous.Contains)
	return growthPercent(cur, prev), nil
}

func growthPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func metricColumn(t *sales.Table, metric string) ([]sales.Number, error) {
	if metric == "" {
		metric = sales.ColSales
	}
	col, ok := t.Numbers(metric)
	if !ok {
		return nil, errors.InvalidInput(fmt.Sprintf("metric column %q not found", metric))
	}
	return col, nil
}

func sumWhere(t *sales.Table, col []sales.Number, match func(time.Time) bool) float64 {
	sum := 0.0
	for i, d := range t.Dates() {
		if !match(d) {
			continue
		}
		sum += presentValue(col[i])
	}
	return sum
}
