// Package testkit generates synthetic superstore-style order data for
// tests and local demos.
package testkit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"salesdash/domain/sales"
)

// GeneratorConfig configures the order data generator
type GeneratorConfig struct {
	Rows       int       `json:"rows"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Categories []string  `json:"categories"`
	Regions    []string  `json:"regions"`
	Seed       uint64    `json:"seed"`
}

// DefaultConfig returns sensible defaults spanning two calendar years so
// that year-over-year comparisons have data on both sides.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:       500,
		StartDate:  time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Categories: []string{"Furniture", "Office Supplies", "Technology"},
		Regions:    []string{"Central", "East", "South", "West"},
		Seed:       42,
	}
}

// Generator produces deterministic synthetic order rows.
type Generator struct {
	cfg   GeneratorConfig
	faker *gofakeit.Faker
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{cfg: cfg, faker: gofakeit.New(cfg.Seed)}
}

// Order is one synthetic row in superstore column shape.
type Order struct {
	OrderDate time.Time
	Sales     float64
	Profit    float64
	Category  string
	Region    string
	Product   string
	Customer  string
}

// Orders generates cfg.Rows synthetic orders.
func (g *Generator) Orders() []Order {
	orders := make([]Order, 0, g.cfg.Rows)
	for i := 0; i < g.cfg.Rows; i++ {
		price := g.faker.Price(5, 2500)
		orders = append(orders, Order{
			OrderDate: g.faker.DateRange(g.cfg.StartDate, g.cfg.EndDate),
			Sales:     price,
			Profit:    price * (g.faker.Float64Range(-0.2, 0.4)),
			Category:  g.faker.RandomString(g.cfg.Categories),
			Region:    g.faker.RandomString(g.cfg.Regions),
			Product:   g.faker.ProductName(),
			Customer:  g.faker.Name(),
		})
	}
	return orders
}

// CSV renders the generated orders as a comma-delimited file with
// ISO dates, ready to feed through the ingestion pipeline.
func (g *Generator) CSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		sales.ColOrderDate, sales.ColSales, sales.ColProfit,
		sales.ColCategory, sales.ColRegion, sales.ColProduct, sales.ColCustomer,
	}
	w.Write(header)
	for _, o := range g.Orders() {
		w.Write([]string{
			o.OrderDate.Format("2006-01-02"),
			strconv.FormatFloat(o.Sales, 'f', 2, 64),
			strconv.FormatFloat(o.Profit, 'f', 2, 64),
			o.Category,
			o.Region,
			o.Product,
			o.Customer,
		})
	}
	w.Flush()
	return buf.Bytes()
}

// Table builds a sales.Table directly, bypassing the CSV round trip.
func (g *Generator) Table() (*sales.Table, error) {
	orders := g.Orders()
	n := len(orders)

	dates := make([]time.Time, n)
	salesCol := make([]sales.Number, n)
	profitCol := make([]sales.Number, n)
	text := map[string][]string{
		sales.ColCategory: make([]string, n),
		sales.ColRegion:   make([]string, n),
		sales.ColProduct:  make([]string, n),
		sales.ColCustomer: make([]string, n),
	}
	for i, o := range orders {
		dates[i] = o.OrderDate
		salesCol[i] = sales.Num(o.Sales)
		profitCol[i] = sales.Num(o.Profit)
		text[sales.ColCategory][i] = o.Category
		text[sales.ColRegion][i] = o.Region
		text[sales.ColProduct][i] = o.Product
		text[sales.ColCustomer][i] = o.Customer
	}

	headers := []string{
		sales.ColOrderDate, sales.ColSales, sales.ColProfit,
		sales.ColCategory, sales.ColRegion, sales.ColProduct, sales.ColCustomer,
	}
	numbers := map[string][]sales.Number{
		sales.ColSales:  salesCol,
		sales.ColProfit: profitCol,
	}
	t, err := sales.NewTable(headers, dates, numbers, text)
	if err != nil {
		return nil, fmt.Errorf("build synthetic table: %w", err)
	}
	return t, nil
}
