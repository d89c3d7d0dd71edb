package app

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"salesdash/domain/core"
	"salesdash/domain/sales"
	"salesdash/internal/aggregate"
	"salesdash/internal/cache"
	"salesdash/internal/errors"
)

// KPIs are the headline figures computed over the filtered view
type KPIs struct {
	TotalSales    float64  `json:"totalSales"`
	TotalProfit   float64  `json:"totalProfit"`
	Orders        int      `json:"orders"`
	AvgOrderValue float64  `json:"avgOrderValue"`
	ProfitMargin  *float64 `json:"profitMargin,omitempty"`
}

// Snapshot is the precomputed bundle handed to the rendering layer, each
// aggregate keyed by its operation name in JSON.
type Snapshot struct {
	Monthly         []aggregate.MonthlyBucket   `json:"monthly"`
	Yearly          []aggregate.YearlyBucket    `json:"yearly"`
	Daily           []aggregate.DailyBucket     `json:"daily"`
	Category        []aggregate.DimensionBucket `json:"category"`
	Region          []aggregate.DimensionBucket `json:"region"`
	TopProducts     []aggregate.DimensionBucket `json:"topProducts"`
	TopCustomers    []aggregate.DimensionBucket `json:"topCustomers"`
	YoYGrowth       float64                     `json:"yoyGrowth"`
	MoMGrowth       float64                     `json:"momGrowth"`
	YoYProfitGrowth *float64                    `json:"yoyProfitGrowth,omitempty"`

	KPIs            KPIs                      `json:"kpis"`
	Summary         []aggregate.ColumnSummary `json:"summary"`
	SalesProfitCorr *float64                  `json:"salesProfitCorr,omitempty"`

	CurrentYear   int         `json:"currentYear"`
	PreviousYear  int         `json:"previousYear"`
	CurrentMonth  sales.Month `json:"currentMonth"`
	PreviousMonth sales.Month `json:"previousMonth"`
}

// Snapshot precomputes every aggregation over the filtered view.
// Growth metrics use the category/region-filtered but not date-filtered
// table, so they always compare whole periods. Aggregations run
// concurrently over the shared read-only view.
func (d *Dashboard) Snapshot(ctx context.Context, t *sales.Table, f Filter) (*Snapshot, error) {
	if t == nil || t.Len() == 0 {
		return nil, errors.SchemaError("cannot snapshot an empty table")
	}

	growthView := t.
		FilterIn(sales.ColCategory, f.Categories).
		FilterIn(sales.ColRegion, f.Regions)
	view := growthView.FilterDateRange(f.From, f.To)

	s := &Snapshot{}
	// A filter matching zero rows leaves no periods to compare; growth
	// degrades to 0 rather than failing on selectors nobody supplied.
	hasGrowthData := growthView.Len() > 0
	if hasGrowthData {
		s.CurrentYear, s.PreviousYear, s.CurrentMonth, s.PreviousMonth = growthPeriods(growthView)
	}

	topN := d.topN
	if f.TopN > 0 {
		topN = aggregate.SanitizeTopN(f.TopN)
	}

	viewFP := view.Fingerprint()
	growthFP := growthView.Fingerprint()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Monthly = cached(d, "monthly", viewFP, func() []aggregate.MonthlyBucket {
			return aggregate.MonthlySales(view)
		})
		return nil
	})
	g.Go(func() error {
		s.Yearly = cached(d, "yearly", viewFP, func() []aggregate.YearlyBucket {
			return aggregate.YearlySales(view)
		})
		return nil
	})
	g.Go(func() error {
		s.Daily = cached(d, "daily", viewFP, func() []aggregate.DailyBucket {
			return aggregate.DailySales(view)
		})
		return nil
	})
	g.Go(func() error {
		s.Category = cached(d, "category", viewFP, func() []aggregate.DimensionBucket {
			return aggregate.CategorySales(view)
		})
		return nil
	})
	g.Go(func() error {
		s.Region = cached(d, "region", viewFP, func() []aggregate.DimensionBucket {
			return aggregate.RegionSales(view)
		})
		return nil
	})
	g.Go(func() error {
		s.TopProducts = cached(d, "topProducts", viewFP, func() []aggregate.DimensionBucket {
			return aggregate.TopProducts(view, topN)
		}, strconv.Itoa(topN))
		return nil
	})
	g.Go(func() error {
		s.TopCustomers = cached(d, "topCustomers", viewFP, func() []aggregate.DimensionBucket {
			return aggregate.TopCustomers(view, topN)
		}, strconv.Itoa(topN))
		return nil
	})
	if hasGrowthData {
		g.Go(func() error {
			v, err := cachedGrowth(d, "yoyGrowth", growthFP, func() (float64, error) {
				return aggregate.YoYGrowth(growthView, s.CurrentYear, s.PreviousYear, sales.ColSales)
			})
			if err != nil {
				return err
			}
			s.YoYGrowth = v
			return nil
		})
		g.Go(func() error {
			v, err := cachedGrowth(d, "momGrowth", growthFP, func() (float64, error) {
				return aggregate.MoMChange(growthView, s.CurrentMonth, s.PreviousMonth, sales.ColSales)
			})
			if err != nil {
				return err
			}
			s.MoMGrowth = v
			return nil
		})
		if growthView.HasColumn(sales.ColProfit) {
			g.Go(func() error {
				v, err := cachedGrowth(d, "yoyProfitGrowth", growthFP, func() (float64, error) {
					return aggregate.YoYGrowth(growthView, s.CurrentYear, s.PreviousYear, sales.ColProfit)
				})
				if err != nil {
					return err
				}
				s.YoYProfitGrowth = &v
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.KPIs = computeKPIs(view)
	s.Summary = aggregate.Describe(view)
	if r, ok := aggregate.SalesProfitCorrelation(view); ok {
		s.SalesProfitCorr = &r
	}

	d.log.Debug("snapshot computed: %d rows in view, %d cache entries", view.Len(), d.cache.Len())
	return s, nil
}

// cached memoizes one aggregation keyed by operation, table fingerprint,
// and arguments.
func cached[T any](d *Dashboard, op string, fp core.Fingerprint, compute func() T, args ...string) T {
	key := cache.Key(op, fp, args...)
	if v, ok := d.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed
		}
	}
	out := compute()
	d.cache.Put(key, out)
	return out
}

// cachedGrowth memoizes a growth metric keyed by operation and the
// growth view's fingerprint; failures are never cached.
func cachedGrowth(d *Dashboard, op string, fp core.Fingerprint, compute func() (float64, error)) (float64, error) {
	key := cache.Key(op, fp)
	if v, ok := d.cache.Get(key); ok {
		if typed, ok := v.(float64); ok {
			return typed, nil
		}
	}
	out, err := compute()
	if err != nil {
		return 0, err
	}
	d.cache.Put(key, out)
	return out, nil
}

func computeKPIs(t *sales.Table) KPIs {
	k := KPIs{Orders: t.Len()}

	salesCol, _ := t.Numbers(sales.ColSales)
	count := 0
	for _, n := range salesCol {
		if n.Missing {
			continue
		}
		k.TotalSales += n.Value
		count++
	}
	if count > 0 {
		k.AvgOrderValue = k.TotalSales / float64(count)
	}

	if profitCol, ok := t.Numbers(sales.ColProfit); ok {
		for _, n := range profitCol {
			if !n.Missing {
				k.TotalProfit += n.Value
			}
		}
		margin := 0.0
		if k.TotalSales > 0 {
			margin = k.TotalProfit / k.TotalSales * 100
		}
		k.ProfitMargin = &margin
	}
	return k
}

// growthPeriods picks comparison periods from the data itself rather than
// the wall clock: the latest data year against the one before (the same
// year when only one exists, which yields 0 growth), and the latest data
// month against its predecessor.
func growthPeriods(t *sales.Table) (curYear, prevYear int, curMonth, prevMonth sales.Month) {
	maxDate, _ := t.MaxDate()
	minDate, _ := t.MinDate()

	curYear = maxDate.Year()
	prevYear = curYear
	if maxDate.Year()-minDate.Year() >= 1 {
		prevYear = curYear - 1
	}

	curMonth = sales.MonthOf(maxDate)
	prevMonth = curMonth.Previous()
	return curYear, prevYear, curMonth, prevMonth
}
