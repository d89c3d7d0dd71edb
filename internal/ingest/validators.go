package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"salesdash/domain/sales"
)

// Result is the outcome of a validation check: Valid, or Invalid with a
// human-readable reason. Validators never fail hard for expected problems;
// call sites decide whether to escalate.
type Result struct {
	ok     bool
	reason string
}

// Valid returns a passing result
func Valid() Result { return Result{ok: true} }

// Invalid returns a failing result with a diagnostic reason
func Invalid(reason string) Result { return Result{reason: reason} }

// OK reports whether the check passed
func (r Result) OK() bool { return r.ok }

// Reason returns the diagnostic for a failed check
func (r Result) Reason() string { return r.reason }

// maxOffenderSample bounds the raw values quoted in diagnostics
const maxOffenderSample = 5

// ValidateStructure checks that both required columns are present and the
// table has at least one data row. The reason names every missing column.
func ValidateStructure(rt *RawTable) Result {
	var missing []string
	for _, name := range []string{sales.ColOrderDate, sales.ColSales} {
		if _, ok := rt.Column(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Invalid("missing required columns: " + strings.Join(missing, ", "))
	}
	if len(rt.Rows) == 0 {
		return Invalid("CSV file is empty (no data rows)")
	}
	return Valid()
}

// ValidateSalesNumeric checks that the Sales column coerces to at least one
// finite number. Row-level missingness is the coercer's concern; this layer
// only rejects a column with no numeric content at all, sampling up to 5
// distinct offending raw values.
func ValidateSalesNumeric(rt *RawTable) Result {
	idx, ok := rt.Column(sales.ColSales)
	if !ok {
		return Invalid("'Sales' column not found")
	}

	parsedAny := false
	seen := make(map[string]struct{})
	var offenders []string
	for _, row := range rt.Rows {
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			parsedAny = true
			continue
		}
		if _, dup := seen[cell]; !dup && len(offenders) < maxOffenderSample {
			seen[cell] = struct{}{}
			offenders = append(offenders, cell)
		}
	}
	if !parsedAny {
		return Invalid(fmt.Sprintf("'Sales' column must be numeric; found: %v", offenders))
	}
	return Valid()
}

// ValidateDateType checks that the Order Date column carries proper
// date/time values. It assumes date coercion has already run; a table that
// reaches this check with zero-valued dates fails, which is the documented
// ordering dependency rather than a defect.
func ValidateDateType(t *sales.Table) Result {
	if t == nil {
		return Invalid("'Order Date' column is not in datetime format")
	}
	if t.Len() == 0 {
		return Invalid("table has no rows")
	}
	for _, d := range t.Dates() {
		if d.IsZero() {
			return Invalid("'Order Date' column contains uncoerced values")
		}
	}
	return Valid()
}
