package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"apartments-cleaner/models"
)

// XLSXSheet is the sheet name cleaned workbooks are written to.
const XLSXSheet = "apartments"

// XLSXLoader reads a raw listings table from a workbook. The first row of the
// sheet is the header.
type XLSXLoader struct {
	// Sheet selects the sheet; empty means the first one.
	Sheet string
}

func (l *XLSXLoader) Load(path string) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %q: %w", path, err)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx: %q has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheet, err)
	}

	t, err := tableFromRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %q: %w", path, err)
	}
	return t, nil
}

// XLSXWriter writes a cleaned listings table to a workbook.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter prepares a writer for path, creating intermediate directories.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	return &XLSXWriter{path: path}, nil
}

// Write saves the header and rows to a single sheet. Numbers stay numeric
// cells; missing values are left blank.
func (w *XLSXWriter) Write(t *models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), XLSXSheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(XLSXSheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}

	for i, r := range t.Rows {
		values := make([]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			switch v := r[col].(type) {
			case float64:
				values[j] = v
			case time.Time:
				values[j] = v.Format(TimestampLayout)
			default:
				values[j] = FormatCell(v)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i, err)
		}
		if err := f.SetSheetRow(XLSXSheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", w.path, err)
	}
	return nil
}

func (w *XLSXWriter) Close() error { return nil }
