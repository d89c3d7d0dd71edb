package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders a dollar amount with thousands separators and
// two decimal places.
func FormatCurrency(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// FormatInteger renders a count with thousands separators.
func FormatInteger(v int) string {
	return printer.Sprintf("%d", v)
}

// FormatPercentage renders a signed percentage with one decimal place.
func FormatPercentage(v float64) string {
	return printer.Sprintf("%+.1f%%", v)
}
