package aggregate

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"salesdash/domain/sales"
)

// ColumnSummary holds descriptive statistics for one numeric column,
// computed over present cells only.
type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Describe computes descriptive statistics for every measure column
// present in the table.
func Describe(t *sales.Table) []ColumnSummary {
	t = t.Clone()
	var out []ColumnSummary
	for _, name := range sales.MeasureColumns {
		col, ok := t.Numbers(name)
		if !ok {
			continue
		}
		out = append(out, describeColumn(name, col))
	}
	return out
}

func describeColumn(name string, col []sales.Number) ColumnSummary {
	values := presentValues(col)
	summary := ColumnSummary{Column: name, Count: len(values)}
	if len(values) == 0 {
		return summary
	}

	data := stats.Float64Data(values)
	summary.Mean, _ = stats.Mean(data)
	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)
	summary.Median, _ = stats.Median(data)
	if len(values) == 1 {
		// Quartile returns NaN quartiles with a nil error for a single
		// value, and NaN cannot survive JSON encoding.
		summary.Q1 = values[0]
		summary.Q3 = values[0]
		return summary
	}
	summary.StdDev, _ = stats.StandardDeviationSample(data)
	if q, err := stats.Quartile(data); err == nil && !math.IsNaN(q.Q1) && !math.IsNaN(q.Q3) {
		summary.Q1 = q.Q1
		summary.Q3 = q.Q3
	}
	return summary
}

// SalesProfitCorrelation computes the Pearson correlation between Sales
// and Profit over rows where both are present. It reports false when the
// Profit column is absent or fewer than two complete pairs exist.
func SalesProfitCorrelation(t *sales.Table) (float64, bool) {
	t = t.Clone()
	salesCol, _ := t.Numbers(sales.ColSales)
	profitCol, ok := t.Numbers(sales.ColProfit)
	if !ok {
		return 0, false
	}

	var xs, ys []float64
	for i := range salesCol {
		if salesCol[i].Missing || profitCol[i].Missing {
			continue
		}
		xs = append(xs, salesCol[i].Value)
		ys = append(ys, profitCol[i].Value)
	}
	if len(xs) < 2 {
		return 0, false
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0, false
	}
	return r, true
}

func presentValues(col []sales.Number) []float64 {
	out := make([]float64, 0, len(col))
	for _, n := range col {
		if n.Missing {
			continue
		}
		out = append(out, n.Value)
	}
	return out
}
