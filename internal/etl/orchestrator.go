package etl

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/BartekS5/retail-etl/pkg/logger"
	"github.com/BartekS5/retail-etl/pkg/models"
)

var completionMessages = map[models.Entity]string{
	models.EntityCustomers:    "customers inserted successfully.",
	models.EntityTransactions: "Transactions inserted successfully.",
	models.EntityProducts:     "Products inserted successfully.",
}

// Orchestrator runs entity pipelines one after another.
type Orchestrator struct {
	Pipeline *Pipeline
	// Out receives one completion line per finished pipeline.
	Out io.Writer
}

func NewOrchestrator(p *Pipeline, out io.Writer) *Orchestrator {
	return &Orchestrator{Pipeline: p, Out: out}
}

// Run executes the requested entities in the fixed customers, transactions,
// products order; an empty list means all three. It stops at the first
// failing pipeline. Pipelines that already finished stay loaded.
func (o *Orchestrator) Run(ctx context.Context, entities []models.Entity) ([]Result, error) {
	var results []Result
	for _, entity := range models.Entities {
		if len(entities) > 0 && !slices.Contains(entities, entity) {
			continue
		}

		res, err := o.Pipeline.Run(ctx, entity)
		if err != nil {
			return results, fmt.Errorf("%s pipeline: %w", entity, err)
		}
		results = append(results, res)
		logger.Infof("%s pipeline finished in %s: %d of %d rows loaded", entity, res.Duration, res.Loaded, res.Kept)

		if !o.Pipeline.DryRun {
			fmt.Fprintln(o.Out, completionMessages[entity])
		}
	}
	return results, nil
}
