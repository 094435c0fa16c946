package etl

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BartekS5/retail-etl/pkg/logger"
	"github.com/BartekS5/retail-etl/pkg/models"
	"github.com/BartekS5/retail-etl/pkg/utils"
)

// Pipeline extracts, transforms and loads one entity at a time. Loading
// splits the records into Workers chunks and writes them concurrently.
type Pipeline struct {
	Extractor *Extractor
	Loader    Loader
	Workers   int
	DryRun    bool
}

func NewPipeline(ext *Extractor, loader Loader, workers int, dryRun bool) *Pipeline {
	return &Pipeline{
		Extractor: ext,
		Loader:    loader,
		Workers:   workers,
		DryRun:    dryRun,
	}
}

// Result summarises one entity run.
type Result struct {
	Entity   models.Entity
	Read     int
	Kept     int
	Loaded   int64
	Chunks   []int
	Duration time.Duration
}

// Run executes the pipeline for entity.
func (p *Pipeline) Run(ctx context.Context, entity models.Entity) (Result, error) {
	switch entity {
	case models.EntityCustomers:
		return p.RunCustomers(ctx)
	case models.EntityTransactions:
		return p.RunTransactions(ctx)
	case models.EntityProducts:
		return p.RunProducts(ctx)
	}
	return Result{Entity: entity}, fmt.Errorf("unknown entity %q", entity)
}

// RunCustomers loads the customers whose email is valid.
func (p *Pipeline) RunCustomers(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{Entity: models.EntityCustomers}

	rows, err := p.Extractor.Customers(ctx)
	if err != nil {
		return res, err
	}
	kept := TransformCustomers(rows)
	res.Read, res.Kept = len(rows), len(kept)
	logger.Infof("customers: read %d rows, %d with a valid email", res.Read, res.Kept)

	res.Chunks, res.Loaded, err = loadChunks(ctx, p, models.EntityCustomers, kept, customerRow)
	res.Duration = time.Since(start)
	return res, err
}

// RunTransactions loads unique transactions with a valid date.
func (p *Pipeline) RunTransactions(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{Entity: models.EntityTransactions}

	rows, err := p.Extractor.Transactions(ctx)
	if err != nil {
		return res, err
	}
	kept := TransformTransactions(rows)
	res.Read, res.Kept = len(rows), len(kept)
	logger.Infof("transactions: read %d rows, %d unique with a valid date", res.Read, res.Kept)

	res.Chunks, res.Loaded, err = loadChunks(ctx, p, models.EntityTransactions, kept, transactionRow)
	res.Duration = time.Since(start)
	return res, err
}

// RunProducts loads every product with its name and category upper-cased.
func (p *Pipeline) RunProducts(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{Entity: models.EntityProducts}

	rows, err := p.Extractor.Products(ctx)
	if err != nil {
		return res, err
	}
	kept := TransformProducts(rows)
	res.Read, res.Kept = len(rows), len(kept)
	logger.Infof("products: read %d rows", res.Read)

	res.Chunks, res.Loaded, err = loadChunks(ctx, p, models.EntityProducts, kept, productRow)
	res.Duration = time.Since(start)
	return res, err
}

// loadChunks splits records into p.Workers chunks and loads each one in its
// own goroutine. It waits for every chunk, even after a failure, and returns
// the first error. Empty chunks are skipped.
func loadChunks[T any](ctx context.Context, p *Pipeline, entity models.Entity, records []T, toRow func(T) (Row, error)) ([]int, int64, error) {
	chunks := Split(records, p.Workers)
	sizes := make([]int, len(chunks))
	for i, c := range chunks {
		sizes[i] = len(c)
	}

	if p.DryRun {
		for i, size := range sizes {
			logger.Infof("[DRY RUN] %s chunk %d: would load %d records", entity, i, size)
		}
		return sizes, 0, nil
	}

	var (
		g      errgroup.Group
		loaded atomic.Int64
	)
	for i, chunk := range chunks {
		if len(chunk) == 0 {
			logger.Debugf("%s chunk %d is empty, skipping", entity, i)
			continue
		}
		g.Go(func() error {
			start := time.Now()
			rows := make([]Row, len(chunk))
			for j, rec := range chunk {
				row, err := toRow(rec)
				if err != nil {
					return fmt.Errorf("%s chunk %d: row %d: %w", entity, i, j, err)
				}
				rows[j] = row
			}

			n, err := p.Loader.Load(ctx, entity, rows)
			if err != nil {
				logger.Errorf("%s chunk %d failed after %s: %v", entity, i, time.Since(start), err)
				return fmt.Errorf("%s chunk %d: %w", entity, i, err)
			}
			loaded.Add(n)
			logger.Infof("%s chunk %d: loaded %d rows in %s", entity, i, n, time.Since(start).Round(time.Millisecond))
			return nil
		})
	}

	err := g.Wait()
	return sizes, loaded.Load(), err
}

func customerRow(c models.Customer) (Row, error) {
	return Row{c.CustomerID, c.Name, c.Email, c.Address}, nil
}

func transactionRow(t models.Transaction) (Row, error) {
	amount, err := utils.ConvertToDecimal(t.Amount)
	if err != nil {
		return nil, fmt.Errorf("transaction %s amount: %w", t.TransactionID, err)
	}
	return Row{t.TransactionID, t.CustomerID, t.TransactionDate, amount}, nil
}

func productRow(p models.Product) (Row, error) {
	price, err := utils.ConvertToDecimal(p.Price)
	if err != nil {
		return nil, fmt.Errorf("product %s price: %w", p.ProductID, err)
	}
	return Row{p.ProductID, p.ProductName, p.Category, price}, nil
}
