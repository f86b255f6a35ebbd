package models

import (
	"fmt"
	"math"
)

// Column names of the apartments dataset.
const (
	ColArea            = "area_m2"
	ColPrice           = "price"
	ColPricePerSqm     = "price_per_sqm"
	ColUploadDate      = "upload_date"
	ColDescription     = "description"
	ColDistrict        = "district_name"
	ColTransactionType = "transaction_type"
)

// InputColumns are the columns every raw listings table must carry.
var InputColumns = []string{
	ColArea, ColPrice, ColPricePerSqm, ColUploadDate, ColDescription, ColDistrict,
}

// Row maps a column name to its cell value. A cell is nil (missing), a
// string, a float64 or a time.Time.
type Row map[string]any

// Table is an ordered, in-memory listings table. Cleaning steps mutate it in
// place and never add or remove rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Append adds a row. Columns the row does not mention are stored as missing.
func (t *Table) Append(r Row) {
	row := make(Row, len(t.Columns))
	for _, c := range t.Columns {
		row[c] = normaliseCell(r[c])
	}
	t.Rows = append(t.Rows, row)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Require returns ErrMissingColumn for the first absent column.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	return nil
}

// AddColumn appends a new column filled with missing values. Adding an
// existing column is a no-op.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	for _, r := range t.Rows {
		r[name] = nil
	}
}

// Shape returns the number of rows and columns.
func (t *Table) Shape() (rows, cols int) {
	return len(t.Rows), len(t.Columns)
}

// NullCounts returns the number of missing cells per column.
func (t *Table) NullCounts() map[string]int {
	counts := make(map[string]int, len(t.Columns))
	for _, c := range t.Columns {
		counts[c] = 0
	}
	for _, r := range t.Rows {
		for _, c := range t.Columns {
			if IsMissing(r[c]) {
				counts[c]++
			}
		}
	}
	return counts
}

// IsMissing reports whether v is the missing marker. NaN floats count as
// missing so that values read from numeric sources keep one representation.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

func normaliseCell(v any) any {
	if IsMissing(v) {
		return nil
	}
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	}
	return v
}
