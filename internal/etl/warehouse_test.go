package etl

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sqliteSchema = `
CREATE TABLE dim_customers (
	customer_id TEXT PRIMARY KEY,
	name        TEXT,
	email       TEXT,
	address     TEXT,
	created_at  TIMESTAMP NOT NULL
);
CREATE TABLE fact_transactions (
	transaction_id   TEXT PRIMARY KEY,
	customer_id      TEXT,
	transaction_date TEXT,
	amount           REAL,
	created_at       TIMESTAMP NOT NULL
);
CREATE TABLE dim_products (
	product_id   TEXT PRIMARY KEY,
	product_name TEXT,
	category     TEXT,
	price        REAL,
	created_at   TIMESTAMP NOT NULL
);`

// newSQLiteWarehouse creates a file backed warehouse that several loader
// connections can write to at once. It returns the DSN and a handle for
// assertions.
func newSQLiteWarehouse(t *testing.T) (string, *sql.DB) {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "warehouse.db") +
		"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_txlock=immediate"

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(sqliteSchema)
	require.NoError(t, err)
	return dsn, db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
