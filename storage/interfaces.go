package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"apartments-cleaner/models"
)

// ErrUnsupportedFormat is returned for file extensions or output formats no
// loader or writer handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// TimestampLayout is how cleaned upload dates are written to text outputs.
const TimestampLayout = "2006-01-02 15:04:05"

// TableLoader reads a raw listings table.
type TableLoader interface {
	Load(path string) (*models.Table, error)
}

// ListingWriter is the interface any storage backend for cleaned tables must satisfy.
type ListingWriter interface {
	Write(t *models.Table) error
	Close() error
}

// LoaderFor picks a loader from the file extension. sheet is only used for
// workbooks; empty selects the first sheet.
func LoaderFor(path, sheet string) (TableLoader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVLoader{}, nil
	case ".xlsx":
		return &XLSXLoader{Sheet: sheet}, nil
	}
	return nil, fmt.Errorf("storage: load %q: %w", path, ErrUnsupportedFormat)
}

// NewFileWriter creates the file writer for format ("csv" or "xlsx").
func NewFileWriter(format, path string) (ListingWriter, error) {
	switch strings.ToLower(format) {
	case "", "csv":
		return NewCSVWriter(path)
	case "xlsx":
		return NewXLSXWriter(path)
	}
	return nil, fmt.Errorf("storage: writer %q: %w", format, ErrUnsupportedFormat)
}

// FormatCell renders a cell for text outputs; missing cells become "".
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if models.IsMissing(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(TimestampLayout)
	}
	return fmt.Sprint(v)
}

// rawCell maps an input cell to the table model: blank cells are missing.
func rawCell(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// cleanHeader strips a UTF-8 BOM and surrounding whitespace/quotes from a header cell.
func cleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

func tableFromRecords(records [][]string) (*models.Table, error) {
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = cleanHeader(h)
	}

	t := models.NewTable(header...)
	for _, rec := range records[1:] {
		row := make(models.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rawCell(rec[i])
			}
		}
		t.Append(row)
	}
	return t, nil
}
