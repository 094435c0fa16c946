package etl

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BartekS5/retail-etl/pkg/models"
)

func TestOrchestrator_RunsAllInOrder(t *testing.T) {
	var out bytes.Buffer
	loader := newRecordingLoader()
	o := NewOrchestrator(NewPipeline(NewExtractor(testFiles()), loader, 5, false), &out)

	results, err := o.Run(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, models.EntityCustomers, results[0].Entity)
	assert.Equal(t, models.EntityTransactions, results[1].Entity)
	assert.Equal(t, models.EntityProducts, results[2].Entity)
	assert.Equal(t,
		"customers inserted successfully.\n"+
			"Transactions inserted successfully.\n"+
			"Products inserted successfully.\n",
		out.String())
}

func TestOrchestrator_SelectedEntitiesKeepCanonicalOrder(t *testing.T) {
	var out bytes.Buffer
	o := NewOrchestrator(NewPipeline(NewExtractor(testFiles()), newRecordingLoader(), 5, false), &out)

	results, err := o.Run(context.Background(), []models.Entity{models.EntityProducts, models.EntityCustomers})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, models.EntityCustomers, results[0].Entity)
	assert.Equal(t, models.EntityProducts, results[1].Entity)
	assert.Equal(t, "customers inserted successfully.\nProducts inserted successfully.\n", out.String())
}

func TestOrchestrator_StopsAtFailedPipeline(t *testing.T) {
	var out bytes.Buffer
	loader := newRecordingLoader()
	loader.fail = func(entity models.Entity, _ []Row) error {
		if entity == models.EntityTransactions {
			return errors.New("duplicate key")
		}
		return nil
	}
	o := NewOrchestrator(NewPipeline(NewExtractor(testFiles()), loader, 5, false), &out)

	results, err := o.Run(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "transactions pipeline")
	assert.Len(t, results, 1)
	assert.Equal(t, "customers inserted successfully.\n", out.String())
	assert.Empty(t, loader.chunks[models.EntityProducts], "products must not start after a failure")
}

func TestOrchestrator_DryRunPrintsNothing(t *testing.T) {
	var out bytes.Buffer
	o := NewOrchestrator(NewPipeline(NewExtractor(testFiles()), newRecordingLoader(), 5, true), &out)

	_, err := o.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestOrchestrator_EndToEndSQLite(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"customers.csv": "customer_id,name,email,address\n" +
			"C1,\"O'Hara, Kim\",x@y.com,1 Main St\n" +
			"C2,Bob,bad,2 Side St\n",
		"transactions.csv": "transaction_id,customer_id,transaction_date,amount\n" +
			"T1,C1,03/15/2024,19.99\n" +
			"T1,C1,03/15/2024,19.99\n" +
			"T2,C1,2024-04-01,5\n" +
			"T3,C1,04/31/2024,1\n",
		"products.csv": "product_id,product_name,category,price\n" +
			"P1,tea mug,kitchen,3.50\n" +
			"P2,Desk Lamp,home office,20\n" +
			"P3,chair,furniture,45\n",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	dsn, db := newSQLiteWarehouse(t)

	var out bytes.Buffer
	o := NewOrchestrator(NewPipeline(NewExtractor(&FileSource{Dir: dir}), NewSQLLoader(models.DialectSQLite, dsn), 5, false), &out)

	_, err := o.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(out.Bytes(), []byte("inserted successfully.")))

	var id, name string
	require.NoError(t, db.QueryRow("SELECT customer_id, name FROM dim_customers").Scan(&id, &name))
	assert.Equal(t, "C1", id)
	assert.Equal(t, "O'Hara, Kim", name)
	assert.Equal(t, 1, countRows(t, db, "dim_customers"))

	assert.Equal(t, 2, countRows(t, db, "fact_transactions"))
	var date string
	var amount float64
	require.NoError(t, db.QueryRow(
		"SELECT transaction_date, amount FROM fact_transactions WHERE transaction_id = 'T1'",
	).Scan(&date, &amount))
	assert.Equal(t, "2024-03-15", date)
	assert.InDelta(t, 19.99, amount, 1e-9)

	rows, err := db.Query("SELECT product_name, category FROM dim_products ORDER BY product_id")
	require.NoError(t, err)
	defer rows.Close()
	var got [][2]string
	for rows.Next() {
		var n, c string
		require.NoError(t, rows.Scan(&n, &c))
		got = append(got, [2]string{n, c})
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, [][2]string{{"TEA MUG", "KITCHEN"}, {"DESK LAMP", "HOME OFFICE"}, {"CHAIR", "FURNITURE"}}, got)
}
