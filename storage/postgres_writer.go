package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"apartments-cleaner/models"
)

// postgresColumns are the persisted columns, in insert order.
var postgresColumns = []string{
	models.ColArea,
	models.ColPrice,
	models.ColPricePerSqm,
	models.ColUploadDate,
	models.ColDescription,
	models.ColDistrict,
	models.ColTransactionType,
}

// PostgresWriter persists cleaned listings to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS apartments (
			id               SERIAL PRIMARY KEY,
			area_m2          DOUBLE PRECISION,
			price            DOUBLE PRECISION,
			price_per_sqm    DOUBLE PRECISION,
			upload_date      TIMESTAMP,
			description      TEXT,
			district_name    TEXT NOT NULL,
			transaction_type TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_apartments_price            ON apartments(price);
		CREATE INDEX IF NOT EXISTS idx_apartments_district_name    ON apartments(district_name);
		CREATE INDEX IF NOT EXISTS idx_apartments_transaction_type ON apartments(transaction_type);
	`)
	return err
}

// Clear deletes all existing apartments from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM apartments")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the stored apartments with every row of the cleaned table.
// The delete and all insert batches share one transaction, so a failed batch
// leaves the previous contents in place.
func (pw *PostgresWriter) Write(t *models.Table) error {
	if err := t.Require(postgresColumns...); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if len(t.Rows) == 0 {
		return nil
	}

	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM apartments"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(t.Rows); i += batchSize {
		end := i + batchSize
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		query, args := buildInsert(t.Rows[i:end])
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// buildInsert renders one multi-row INSERT; missing cells are bound as NULL.
func buildInsert(batch []models.Row) (string, []interface{}) {
	n := len(postgresColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*n)

	for idx, r := range batch {
		placeholders := make([]string, n)
		for j, col := range postgresColumns {
			placeholders[j] = fmt.Sprintf("$%d", idx*n+j+1)
			valueArgs = append(valueArgs, r[col])
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
	}

	query := fmt.Sprintf("INSERT INTO apartments (%s) VALUES %s",
		strings.Join(postgresColumns, ", "), strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// Count returns the number of stored apartments.
func (pw *PostgresWriter) Count() (int, error) {
	var n int
	if err := pw.db.QueryRow("SELECT COUNT(*) FROM apartments").Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}
