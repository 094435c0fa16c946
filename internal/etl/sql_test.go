package etl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/retail-etl/pkg/models"
)

func TestInsertSQL(t *testing.T) {
	tests := []struct {
		dialect models.Dialect
		entity  models.Entity
		want    string
	}{
		{
			models.DialectSQLServer, models.EntityCustomers,
			"INSERT INTO [dim].[CUSTOMERS] (CUSTOMER_ID, NAME, EMAIL, ADDRESS, CREATED_AT) VALUES (@p1, @p2, @p3, @p4, GETDATE())",
		},
		{
			models.DialectSQLServer, models.EntityTransactions,
			"INSERT INTO [fact].[TRANSACTIONS] (TRANSACTION_ID, CUSTOMER_ID, TRANSACTION_DATE, AMOUNT, CREATED_AT) VALUES (@p1, @p2, @p3, @p4, GETDATE())",
		},
		{
			models.DialectSQLServer, models.EntityProducts,
			"INSERT INTO [dim].[PRODUCTS] (PRODUCT_ID, PRODUCT_NAME, CATEGORY, PRICE, CREATED_AT) VALUES (@p1, @p2, @p3, @p4, GETDATE())",
		},
		{
			models.DialectPostgres, models.EntityTransactions,
			"INSERT INTO fact.transactions (transaction_id, customer_id, transaction_date, amount, created_at) VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)",
		},
		{
			models.DialectSQLite, models.EntityProducts,
			"INSERT INTO dim_products (product_id, product_name, category, price, created_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect)+"/"+string(tt.entity), func(t *testing.T) {
			assert.Equal(t, tt.want, InsertSQL(tt.dialect, models.Mapping(tt.dialect, tt.entity)))
		})
	}
}

func TestSQLLoader_LoadCommitsChunk(t *testing.T) {
	dsn, db := newSQLiteWarehouse(t)
	loader := NewSQLLoader(models.DialectSQLite, dsn)

	n, err := loader.Load(context.Background(), models.EntityCustomers, []Row{
		{"C1", "Ann O'Brien", "ann@x.com", "1 Main St, \"Upper\""},
		{"C2", "Bob", "bob@y.org", "Road 2"},
	})

	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var name, address, created string
	require.NoError(t, db.QueryRow(
		"SELECT name, address, created_at FROM dim_customers WHERE customer_id = 'C1'",
	).Scan(&name, &address, &created))
	assert.Equal(t, "Ann O'Brien", name)
	assert.Equal(t, "1 Main St, \"Upper\"", address)
	assert.NotEmpty(t, created)
}

func TestSQLLoader_FailedRowRollsBackChunk(t *testing.T) {
	dsn, db := newSQLiteWarehouse(t)
	loader := NewSQLLoader(models.DialectSQLite, dsn)

	_, err := loader.Load(context.Background(), models.EntityProducts, []Row{
		{"P1", "MUG", "KITCHEN", 3.5},
		{"P1", "MUG AGAIN", "KITCHEN", 4.0},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert row 1 into dim_products")
	assert.Equal(t, 0, countRows(t, db, "dim_products"))
}

func TestSQLLoader_RowArity(t *testing.T) {
	dsn, _ := newSQLiteWarehouse(t)
	loader := NewSQLLoader(models.DialectSQLite, dsn)

	_, err := loader.Load(context.Background(), models.EntityProducts, []Row{{"P1", "MUG"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 0 has 2 values")
}

func TestSQLLoader_ConnectFailure(t *testing.T) {
	loader := NewSQLLoader(models.DialectSQLite, "file:/nonexistent-dir/sub/warehouse.db?mode=ro")

	_, err := loader.Load(context.Background(), models.EntityCustomers, []Row{{"C1", "a", "b", "c"}})

	require.Error(t, err)
}
