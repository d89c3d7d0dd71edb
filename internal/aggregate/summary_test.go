package aggregate

import (
	"math"
	"testing"
	"time"

	"salesdash/domain/sales"
)

func summaryTable(t *testing.T, salesVals, profitVals []sales.Number) *sales.Table {
	t.Helper()
	dates := make([]time.Time, len(salesVals))
	for i := range dates {
		dates[i] = day(2023, 1, i+1)
	}
	numbers := map[string][]sales.Number{sales.ColSales: salesVals}
	headers := []string{sales.ColOrderDate, sales.ColSales}
	if profitVals != nil {
		numbers[sales.ColProfit] = profitVals
		headers = append(headers, sales.ColProfit)
	}
	tbl, err := sales.NewTable(headers, dates, numbers, nil)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return tbl
}

// TestDescribe tests descriptive statistics over present cells
func TestDescribe(t *testing.T) {
	tbl := summaryTable(t,
		[]sales.Number{sales.Num(10), sales.Num(20), sales.Num(30), sales.MissingNumber()},
		nil,
	)

	got := Describe(tbl)
	if len(got) != 1 {
		t.Fatalf("Expected 1 column summary, got %d", len(got))
	}
	s := got[0]
	if s.Column != sales.ColSales {
		t.Errorf("Expected Sales summary, got '%s'", s.Column)
	}
	if s.Count != 3 {
		t.Errorf("Expected count 3 (missing excluded), got %d", s.Count)
	}
	if s.Mean != 20 {
		t.Errorf("Expected mean 20, got %v", s.Mean)
	}
	if s.Min != 10 || s.Max != 30 {
		t.Errorf("Expected min 10 max 30, got %v and %v", s.Min, s.Max)
	}
	if s.Median != 20 {
		t.Errorf("Expected median 20, got %v", s.Median)
	}
	if math.Abs(s.StdDev-10) > 1e-9 {
		t.Errorf("Expected sample stddev 10, got %v", s.StdDev)
	}
}

// TestDescribeBothMeasures tests that Profit is summarized when present
func TestDescribeBothMeasures(t *testing.T) {
	tbl := summaryTable(t,
		[]sales.Number{sales.Num(100), sales.Num(200)},
		[]sales.Number{sales.Num(10), sales.Num(-20)},
	)

	got := Describe(tbl)
	if len(got) != 2 {
		t.Fatalf("Expected summaries for Sales and Profit, got %d", len(got))
	}
	if got[1].Column != sales.ColProfit || got[1].Min != -20 {
		t.Errorf("Expected Profit summary with min -20, got %+v", got[1])
	}
}

// TestDescribeSingleValue tests that a one-value column yields finite
// quartiles fit for JSON encoding
func TestDescribeSingleValue(t *testing.T) {
	tbl := summaryTable(t, []sales.Number{sales.Num(42.5)}, nil)

	got := Describe(tbl)
	if len(got) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(got))
	}
	s := got[0]
	if s.Count != 1 {
		t.Errorf("Expected count 1, got %d", s.Count)
	}
	if s.Q1 != 42.5 || s.Q3 != 42.5 {
		t.Errorf("Expected quartiles pinned to the single value, got q1=%v q3=%v", s.Q1, s.Q3)
	}
	if s.StdDev != 0 {
		t.Errorf("Expected zero stddev for one value, got %v", s.StdDev)
	}
	for name, v := range map[string]float64{
		"mean": s.Mean, "min": s.Min, "median": s.Median, "max": s.Max, "q1": s.Q1, "q3": s.Q3,
	} {
		if math.IsNaN(v) {
			t.Errorf("Expected finite %s, got NaN", name)
		}
	}
}

// TestDescribeEmptyColumn tests a column with no present cells
func TestDescribeEmptyColumn(t *testing.T) {
	tbl := summaryTable(t, []sales.Number{sales.MissingNumber(), sales.MissingNumber()}, nil)

	got := Describe(tbl)
	if len(got) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(got))
	}
	if got[0].Count != 0 || got[0].Mean != 0 {
		t.Errorf("Expected zeroed summary for empty column, got %+v", got[0])
	}
}

// TestSalesProfitCorrelation tests Pearson correlation over complete pairs
func TestSalesProfitCorrelation(t *testing.T) {
	// Profit is exactly 0.1 * Sales, so r must be 1.
	tbl := summaryTable(t,
		[]sales.Number{sales.Num(100), sales.Num(200), sales.Num(300)},
		[]sales.Number{sales.Num(10), sales.Num(20), sales.Num(30)},
	)

	r, ok := SalesProfitCorrelation(tbl)
	if !ok {
		t.Fatal("Expected correlation to be computable")
	}
	if math.Abs(r-1.0) > 1e-9 {
		t.Errorf("Expected correlation 1.0, got %v", r)
	}
}

// TestSalesProfitCorrelationUnavailable tests the false cases
func TestSalesProfitCorrelationUnavailable(t *testing.T) {
	// No Profit column.
	noProfit := summaryTable(t, []sales.Number{sales.Num(1), sales.Num(2)}, nil)
	if _, ok := SalesProfitCorrelation(noProfit); ok {
		t.Error("Expected false when Profit is absent")
	}

	// Only one complete pair.
	onePair := summaryTable(t,
		[]sales.Number{sales.Num(1), sales.Num(2)},
		[]sales.Number{sales.Num(1), sales.MissingNumber()},
	)
	if _, ok := SalesProfitCorrelation(onePair); ok {
		t.Error("Expected false with fewer than two complete pairs")
	}

	// Zero variance makes r undefined.
	flat := summaryTable(t,
		[]sales.Number{sales.Num(5), sales.Num(5)},
		[]sales.Number{sales.Num(1), sales.Num(2)},
	)
	if _, ok := SalesProfitCorrelation(flat); ok {
		t.Error("Expected false for NaN correlation")
	}
}
