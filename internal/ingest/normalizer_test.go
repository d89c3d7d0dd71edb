package ingest

import (
	"testing"

	"salesdash/domain/sales"
)

// TestNormalizeHeaderWhitespace tests that padded headers are trimmed
func TestNormalizeHeaderWhitespace(t *testing.T) {
	rt := &RawTable{
		Headers: []string{" order date ", "Sales ", " Category"},
		Rows:    [][]string{{"2023-01-01", "100", "Technology"}},
	}

	got, found := Normalize(rt)
	if !found {
		t.Error("Expected the date column to be found")
	}
	want := []string{sales.ColOrderDate, "Sales", "Category"}
	for i := range want {
		if got.Headers[i] != want[i] {
			t.Errorf("Expected header %d to be '%s', got '%s'", i, want[i], got.Headers[i])
		}
	}

	// The input table must be untouched.
	if rt.Headers[0] != " order date " {
		t.Errorf("Expected input headers unchanged, got '%s'", rt.Headers[0])
	}
}

// TestNormalizeDateVariants tests case-insensitive date column matching
func TestNormalizeDateVariants(t *testing.T) {
	tests := []struct {
		header string
		found  bool
	}{
		{"Order Date", true},
		{"order date", true},
		{"ORDER DATE", true},
		{"  Order Date  ", true},
		{"OrderDate", false},
		{"Date", false},
	}

	for _, test := range tests {
		rt := &RawTable{Headers: []string{test.header, "Sales"}}
		got, found := Normalize(rt)
		if found != test.found {
			t.Errorf("Header '%s': expected found=%v, got %v", test.header, test.found, found)
		}
		if test.found && got.Headers[0] != sales.ColOrderDate {
			t.Errorf("Header '%s': expected canonical rename, got '%s'", test.header, got.Headers[0])
		}
	}
}

// TestNormalizeIdempotence tests that normalizing twice changes nothing
func TestNormalizeIdempotence(t *testing.T) {
	rt := &RawTable{Headers: []string{" order date ", " Sales "}}

	once, _ := Normalize(rt)
	twice, _ := Normalize(once)
	for i := range once.Headers {
		if once.Headers[i] != twice.Headers[i] {
			t.Errorf("Expected idempotent normalization, header %d went '%s' to '%s'",
				i, once.Headers[i], twice.Headers[i])
		}
	}
}

// TestNormalizeFirstMatchOnly tests that only the first matching header is
// renamed
func TestNormalizeFirstMatchOnly(t *testing.T) {
	rt := &RawTable{Headers: []string{"order date", "Order date"}}
	got, _ := Normalize(rt)
	if got.Headers[0] != sales.ColOrderDate {
		t.Errorf("Expected first header renamed, got '%s'", got.Headers[0])
	}
	if got.Headers[1] != "Order date" {
		t.Errorf("Expected second header untouched, got '%s'", got.Headers[1])
	}
}
