package etl

import (
	"context"
	"io"

	"github.com/BartekS5/retail-etl/pkg/models"
)

// Row is one record's business values in the entity's column order.
type Row []interface{}

// Source opens the raw file an entity is extracted from.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Loader writes one chunk of rows for an entity and commits it. Each call
// owns its own warehouse connection for its whole duration.
type Loader interface {
	Load(ctx context.Context, entity models.Entity, rows []Row) (int64, error)
}
