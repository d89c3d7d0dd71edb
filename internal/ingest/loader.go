package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"salesdash/domain/sales"
	"salesdash/internal/errors"
)

// Load runs the full pipeline on raw CSV bytes: sniff, normalize, validate,
// coerce. It is a pure function from bytes to table-or-error; every failure
// kind is a distinct AppError code and nothing is partially applied.
func Load(data []byte) (*sales.Table, error) {
	rt, err := Sniff(data)
	if err != nil {
		return nil, err
	}
	return finish(rt)
}

// LoadFile loads a CSV or Excel file, dispatching on extension
func LoadFile(path string) (*sales.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rt, err := readExcelFile(path)
		if err != nil {
			return nil, err
		}
		return finish(rt)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return Load(data)
}

func finish(rt *RawTable) (*sales.Table, error) {
	rt, _ = Normalize(rt)

	if res := ValidateStructure(rt); !res.OK() {
		return nil, errors.SchemaError(res.Reason())
	}
	if res := ValidateSalesNumeric(rt); !res.OK() {
		return nil, errors.NumericCoercionError(res.Reason())
	}

	t, err := Coerce(rt)
	if err != nil {
		return nil, err
	}

	if res := ValidateDateType(t); !res.OK() {
		return nil, errors.DateCoercionError(res.Reason())
	}
	return t, nil
}
