// Package report renders a dashboard snapshot as a markdown KPI report
// and converts it to HTML for serving.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"salesdash/app"
	"salesdash/internal/aggregate"
)

// Markdown renders the snapshot as a markdown document.
func Markdown(s *app.Snapshot) string {
	var b strings.Builder

	b.WriteString("# Sales Dashboard Report\n\n")

	b.WriteString("## Key Figures\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total Sales | %s |\n", FormatCurrency(s.KPIs.TotalSales))
	if s.KPIs.ProfitMargin != nil {
		fmt.Fprintf(&b, "| Total Profit | %s |\n", FormatCurrency(s.KPIs.TotalProfit))
		fmt.Fprintf(&b, "| Profit Margin | %s |\n", FormatPercentage(*s.KPIs.ProfitMargin))
	}
	fmt.Fprintf(&b, "| Orders | %s |\n", FormatInteger(s.KPIs.Orders))
	fmt.Fprintf(&b, "| Avg Order Value | %s |\n", FormatCurrency(s.KPIs.AvgOrderValue))
	fmt.Fprintf(&b, "| YoY Growth (%d vs %d) | %s |\n", s.CurrentYear, s.PreviousYear, FormatPercentage(s.YoYGrowth))
	if s.YoYProfitGrowth != nil {
		fmt.Fprintf(&b, "| YoY Profit Growth | %s |\n", FormatPercentage(*s.YoYProfitGrowth))
	}
	fmt.Fprintf(&b, "| MoM Change (%s vs %s) | %s |\n", s.CurrentMonth.Label(), s.PreviousMonth.Label(), FormatPercentage(s.MoMGrowth))
	b.WriteString("\n")

	if len(s.Monthly) > 0 {
		b.WriteString("## Monthly Sales\n\n")
		b.WriteString("| Month | Sales |\n|---|---|\n")
		for _, m := range s.Monthly {
			fmt.Fprintf(&b, "| %s | %s |\n", m.Period, FormatCurrency(m.Sales))
		}
		b.WriteString("\n")
	}

	writeDimension(&b, "Sales by Category", "Category", s.Category)
	writeDimension(&b, "Sales by Region", "Region", s.Region)
	writeDimension(&b, "Top Products", "Product", s.TopProducts)
	writeDimension(&b, "Top Customers", "Customer", s.TopCustomers)

	if len(s.Summary) > 0 {
		b.WriteString("## Summary Statistics\n\n")
		b.WriteString("| Column | Count | Mean | Std Dev | Min | Median | Max |\n|---|---|---|---|---|---|---|\n")
		for _, c := range s.Summary {
			fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
				c.Column, c.Count, c.Mean, c.StdDev, c.Min, c.Median, c.Max)
		}
		b.WriteString("\n")
	}

	if s.SalesProfitCorr != nil {
		fmt.Fprintf(&b, "Sales/Profit correlation: %.3f\n", *s.SalesProfitCorr)
	}

	return b.String()
}

// HTML renders the snapshot report as an HTML fragment.
func HTML(s *app.Snapshot) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(Markdown(s)))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func writeDimension(b *strings.Builder, title, label string, buckets []aggregate.DimensionBucket) {
	if len(buckets) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| %s | Sales |\n|---|---|\n", label)
	for _, d := range buckets {
		fmt.Fprintf(b, "| %s | %s |\n", d.Key, FormatCurrency(d.Sales))
	}
	b.WriteString("\n")
}
