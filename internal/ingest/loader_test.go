package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"salesdash/domain/sales"
	"salesdash/internal/errors"
)

const sampleCSV = `Order Date,Sales,Profit,Category,Region,Product Name,Customer Name
2023-01-05,100.50,10.05,Technology,West,Laptop Stand,Alice Moore
2023-01-10,200,20,Furniture,East,Desk Chair,Bob Kane
2023-02-01,50,-5,Technology,West,USB Hub,Carol Diaz
`

// TestLoadEndToEnd tests the full CSV pipeline from bytes to typed table
func TestLoadEndToEnd(t *testing.T) {
	tbl, err := Load([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tbl.Len() != 3 {
		t.Errorf("Expected 3 rows, got %d", tbl.Len())
	}
	if !tbl.Dates()[0].Equal(time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected first date 2023-01-05, got %v", tbl.Dates()[0])
	}
	salesCol, ok := tbl.Numbers(sales.ColSales)
	if !ok || salesCol[0].Value != 100.50 {
		t.Errorf("Expected Sales[0]=100.50, got %v (ok=%v)", salesCol, ok)
	}
	profitCol, ok := tbl.Numbers(sales.ColProfit)
	if !ok || profitCol[2].Value != -5 {
		t.Errorf("Expected Profit[2]=-5, got %v (ok=%v)", profitCol, ok)
	}
	if cat, _ := tbl.Text(sales.ColCategory); cat[1] != "Furniture" {
		t.Errorf("Expected Category[1]='Furniture', got '%s'", cat[1])
	}
}

// TestLoadMessyHeaders tests that padded, lowercased headers still load
func TestLoadMessyHeaders(t *testing.T) {
	input := " order date ,Sales \n15/03/2023,99.9\n"
	tbl, err := Load([]byte(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !tbl.HasColumn(sales.ColOrderDate) {
		t.Error("Expected canonical Order Date column")
	}
	if !tbl.Dates()[0].Equal(time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected day-first 15/03/2023, got %v", tbl.Dates()[0])
	}
}

// TestLoadErrorCodes tests that each pipeline stage surfaces its own code
func TestLoadErrorCodes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  string
	}{
		{"garbage", "nonsense", errors.CodeParse},
		{"missing columns", "A,B\n1,2\n", errors.CodeSchema},
		{"non-numeric sales", "Order Date,Sales\n2023-01-01,$100\n2023-01-02,abc\n", errors.CodeNumericCoercion},
		{"bad dates", "Order Date,Sales\nnot-a-date,100\nalso-bad,200\n", errors.CodeDateCoercion},
	}

	for _, test := range tests {
		_, err := Load([]byte(test.input))
		if err == nil {
			t.Errorf("%s: expected error, got none", test.name)
			continue
		}
		if got := errors.GetCode(err); got != test.code {
			t.Errorf("%s: expected code %s, got %s (%v)", test.name, test.code, got, err)
		}
	}
}

// TestLoadExcel tests xlsx ingestion through the shared pipeline
func TestLoadExcel(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Order Date", "Sales", "Category"},
		{"2023-01-05", 100.5, "Technology"},
		{"2023-01-10", 200, "Furniture"},
	})

	tbl, err := LoadExcel(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadExcel failed: %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Expected 2 rows, got %d", tbl.Len())
	}
	salesCol, _ := tbl.Numbers(sales.ColSales)
	if salesCol[1].Value != 200 {
		t.Errorf("Expected Sales[1]=200, got %+v", salesCol[1])
	}
}

// TestLoadExcelHeaderOnly tests rejection of a workbook with no data rows
func TestLoadExcelHeaderOnly(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Order Date", "Sales"},
	})

	_, err := LoadExcel(bytes.NewReader(data))
	if err == nil {
		t.Fatal("Expected error for header-only workbook")
	}
	if !errors.HasCode(err, errors.CodeParse) {
		t.Errorf("Expected PARSE_ERROR, got %s", errors.GetCode(err))
	}
}

// TestLoadFileDispatch tests extension-based dispatch between CSV and xlsx
func TestLoadFileDispatch(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "orders.csv")
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	tbl, err := LoadFile(csvPath)
	if err != nil {
		t.Fatalf("LoadFile(csv) failed: %v", err)
	}
	if tbl.Len() != 3 {
		t.Errorf("Expected 3 rows from CSV, got %d", tbl.Len())
	}

	xlsxPath := filepath.Join(dir, "orders.xlsx")
	data := buildWorkbook(t, [][]interface{}{
		{"Order Date", "Sales"},
		{"2023-01-05", 42},
	})
	if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	tbl, err = LoadFile(xlsxPath)
	if err != nil {
		t.Fatalf("LoadFile(xlsx) failed: %v", err)
	}
	if tbl.Len() != 1 {
		t.Errorf("Expected 1 row from xlsx, got %d", tbl.Len())
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := f.SetSheetRow(excelSheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("workbook write failed: %v", err)
	}
	return buf.Bytes()
}
