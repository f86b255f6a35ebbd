package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartments-cleaner/models"
)

func TestBuildInsertPlaceholders(t *testing.T) {
	rows := cleanedTable().Rows

	query, args := buildInsert(rows)

	assert.Contains(t, query, "INSERT INTO apartments (area_m2, price, price_per_sqm, upload_date, description, district_name, transaction_type)")
	assert.Contains(t, query, "($1,$2,$3,$4,$5,$6,$7),($8,$9,$10,$11,$12,$13,$14)")
	require.Len(t, args, 14)
	assert.Equal(t, float64(100000), args[1])
	assert.Nil(t, args[8], "missing price should bind as NULL")
}

func TestPostgresWriterRoundTrip(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	pw, err := NewPostgresWriter(dsn)
	require.NoError(t, err)
	defer pw.Close()

	require.NoError(t, pw.Write(cleanedTable()))
	n, err := pw.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPostgresWriterKeepsRowsWhenBatchFails(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	pw, err := NewPostgresWriter(dsn)
	require.NoError(t, err)
	defer pw.Close()

	require.NoError(t, pw.Write(cleanedTable()))

	// district_name is NOT NULL, so the second batch is rejected.
	bad := districtTable(60)
	bad.Rows[55][models.ColDistrict] = nil
	assert.Error(t, pw.Write(bad))

	n, err := pw.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPostgresWriterRollsBackOnFailedBatch(t *testing.T) {
	rec := &recordingConn{failInsert: 2}
	pw := &PostgresWriter{db: sql.OpenDB(rec)}
	defer pw.Close()

	err := pw.Write(districtTable(60))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert batch at row 50")

	assert.True(t, rec.rolledBack, "failed write must roll back")
	assert.False(t, rec.committed)
	require.Len(t, rec.statements, 3)
	assert.True(t, strings.HasPrefix(rec.statements[0], "DELETE FROM apartments"))
}

func TestPostgresWriterCommitsOnce(t *testing.T) {
	rec := &recordingConn{}
	pw := &PostgresWriter{db: sql.OpenDB(rec)}
	defer pw.Close()

	require.NoError(t, pw.Write(districtTable(120)))

	assert.True(t, rec.committed)
	assert.False(t, rec.rolledBack)
	assert.Equal(t, 1, rec.begins)
	assert.Len(t, rec.statements, 4, "one delete and three batches")
}

func TestPostgresWriterRequiresColumns(t *testing.T) {
	pw := &PostgresWriter{}
	err := pw.Write(models.NewTable(models.ColPrice))
	assert.ErrorIs(t, err, models.ErrMissingColumn)
}

func districtTable(n int) *models.Table {
	tbl := models.NewTable(append(append([]string(nil), models.InputColumns...), models.ColTransactionType)...)
	for i := 0; i < n; i++ {
		tbl.Append(models.Row{models.ColPrice: float64(1000 + i), models.ColDistrict: "ვაკე"})
	}
	return tbl
}

// recordingConn is a database/sql connector that records the statements and
// transaction outcome of a single connection. failInsert makes the n-th
// INSERT (1-based) fail.
type recordingConn struct {
	failInsert int
	inserts    int
	begins     int
	statements []string
	committed  bool
	rolledBack bool
}

type recordingDriver struct{ conn *recordingConn }

func (d recordingDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

func (c *recordingConn) Connect(context.Context) (driver.Conn, error) { return c, nil }
func (c *recordingConn) Driver() driver.Driver                        { return recordingDriver{conn: c} }

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	c.begins++
	return c, nil
}

func (c *recordingConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.statements = append(c.statements, strings.TrimSpace(query))
	if strings.HasPrefix(strings.TrimSpace(query), "INSERT") {
		c.inserts++
		if c.inserts == c.failInsert {
			return nil, errors.New("connection reset")
		}
	}
	return driver.RowsAffected(0), nil
}

func (c *recordingConn) Commit() error {
	c.committed = true
	return nil
}

func (c *recordingConn) Rollback() error {
	c.rolledBack = true
	return nil
}
