package etl

import (
	"context"
	"slices"

	"github.com/BartekS5/retail-etl/pkg/models"
)

// Report counts the rows an entity run would read and keep.
type Report struct {
	Entity models.Entity
	Read   int
	Kept   int
}

// Inspect extracts and transforms the requested entities (all when empty)
// without touching the warehouse.
func Inspect(ctx context.Context, ext *Extractor, entities []models.Entity) ([]Report, error) {
	var reports []Report
	for _, entity := range models.Entities {
		if len(entities) > 0 && !slices.Contains(entities, entity) {
			continue
		}

		r := Report{Entity: entity}
		switch entity {
		case models.EntityCustomers:
			rows, err := ext.Customers(ctx)
			if err != nil {
				return reports, err
			}
			r.Read, r.Kept = len(rows), len(TransformCustomers(rows))
		case models.EntityTransactions:
			rows, err := ext.Transactions(ctx)
			if err != nil {
				return reports, err
			}
			r.Read, r.Kept = len(rows), len(TransformTransactions(rows))
		case models.EntityProducts:
			rows, err := ext.Products(ctx)
			if err != nil {
				return reports, err
			}
			r.Read, r.Kept = len(rows), len(TransformProducts(rows))
		}
		reports = append(reports, r)
	}
	return reports, nil
}
