package cli

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

func createSQLiteSchema(dsn string) error {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(`
CREATE TABLE dim_customers (customer_id TEXT, name TEXT, email TEXT, address TEXT, created_at TIMESTAMP);
CREATE TABLE fact_transactions (transaction_id TEXT, customer_id TEXT, transaction_date TEXT, amount REAL, created_at TIMESTAMP);
CREATE TABLE dim_products (product_id TEXT, product_name TEXT, category TEXT, price REAL, created_at TIMESTAMP);`)
	return err
}
