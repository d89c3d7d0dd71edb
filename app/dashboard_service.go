// Package app wires the ingestion pipeline, aggregation engine, and cache
// into the dashboard-facing service.
package app

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"time"

	"salesdash/domain/sales"
	"salesdash/internal"
	"salesdash/internal/aggregate"
	"salesdash/internal/cache"
	"salesdash/internal/ingest"
)

// Dashboard orchestrates table loading, filtering, and snapshot
// precomputation. It owns the memoization cache; loading a new table
// implicitly invalidates every cached result.
type Dashboard struct {
	log   *internal.Logger
	cache *cache.Cache
	topN  int
}

// NewDashboard creates a dashboard service. topN is sanitized to a
// positive ranking size.
func NewDashboard(logger *internal.Logger, topN int) *Dashboard {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Dashboard{
		log:   logger,
		cache: cache.New(),
		topN:  aggregate.SanitizeTopN(topN),
	}
}

// Load parses one complete file (CSV or .xlsx) into a validated table and
// resets the cache.
func (d *Dashboard) Load(path string) (*sales.Table, error) {
	t, err := ingest.LoadFile(path)
	if err != nil {
		d.log.Error("load failed for %s: %v", path, err)
		return nil, err
	}
	d.cache.Clear()
	d.log.Info("loaded %s: %d rows, %d columns", path, t.Len(), len(t.Headers()))
	return t, nil
}

// LoadBytes parses uploaded bytes, dispatching on the original filename's
// extension, and resets the cache.
func (d *Dashboard) LoadBytes(filename string, data []byte) (*sales.Table, error) {
	var t *sales.Table
	var err error
	if isExcelName(filename) {
		t, err = ingest.LoadExcel(bytes.NewReader(data))
	} else {
		t, err = ingest.Load(data)
	}
	if err != nil {
		d.log.Error("load failed for upload %s: %v", filename, err)
		return nil, err
	}
	d.cache.Clear()
	d.log.Info("loaded upload %s: %d rows, %d columns", filename, t.Len(), len(t.Headers()))
	return t, nil
}

// Filter narrows the dashboard view. Zero time bounds are open; nil
// dimension sets leave the respective dimension unfiltered. TopN overrides
// the dashboard's default ranking size when positive.
type Filter struct {
	From       time.Time
	To         time.Time
	Categories []string
	Regions    []string
	TopN       int
}

// ExportCSV writes the currently filtered table as UTF-8 CSV with original
// column order and ISO dates.
func (d *Dashboard) ExportCSV(t *sales.Table, f Filter, w io.Writer) error {
	view := t.
		FilterIn(sales.ColCategory, f.Categories).
		FilterIn(sales.ColRegion, f.Regions).
		FilterDateRange(f.From, f.To)
	return view.WriteCSV(w)
}

func isExcelName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}
