package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"apartments-cleaner/models"
)

// CSVLoader reads a raw listings table from a CSV file with a header row.
type CSVLoader struct{}

func (CSVLoader) Load(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}

	t, err := tableFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("csv: %q: %w", path, err)
	}
	return t, nil
}
