package ingest

import (
	"io"

	"github.com/xuri/excelize/v2"

	"salesdash/domain/sales"
	"salesdash/internal/errors"
)

// excelSheet is the sheet read from workbook inputs
const excelSheet = "Sheet1"

// LoadExcel runs the pipeline on an .xlsx workbook, reading Sheet1 and
// feeding its rows through the same normalize/validate/coerce stages as CSV
// input.
func LoadExcel(r io.Reader) (*sales.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.ParseError("failed to open Excel file: " + err.Error())
	}
	defer f.Close()
	rt, err := excelRows(f)
	if err != nil {
		return nil, err
	}
	return finish(rt)
}

func readExcelFile(path string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.ParseError("failed to open Excel file: " + err.Error())
	}
	defer f.Close()
	return excelRows(f)
}

func excelRows(f *excelize.File) (*RawTable, error) {
	rows, err := f.GetRows(excelSheet)
	if err != nil {
		return nil, errors.ParseError("failed to read " + excelSheet + ": " + err.Error())
	}
	if len(rows) < 2 {
		return nil, errors.ParseError("Excel file must have at least a header row and one data row")
	}

	headers := rows[0]
	// GetRows trims trailing empty cells; pad every row to header width
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, len(headers))
		copy(padded, row)
		data = append(data, padded)
	}
	return &RawTable{Headers: headers, Rows: data, Encoding: "utf-8"}, nil
}
