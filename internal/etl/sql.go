package etl

import (
	"context"
	"fmt"
	"strings"

	"github.com/BartekS5/retail-etl/pkg/database"
	"github.com/BartekS5/retail-etl/pkg/models"
)

// SQLLoader inserts chunks into a relational warehouse. Every Load opens its
// own connection, inserts row by row inside one transaction and commits
// once. Values are always bound as parameters.
type SQLLoader struct {
	Dialect models.Dialect
	DSN     string
}

func NewSQLLoader(dialect models.Dialect, dsn string) *SQLLoader {
	return &SQLLoader{Dialect: dialect, DSN: dsn}
}

func (l *SQLLoader) Load(ctx context.Context, entity models.Entity, rows []Row) (int64, error) {
	mapping := models.Mapping(l.Dialect, entity)

	db, err := database.ConnectSQL(ctx, l.Dialect.DriverName(), l.DSN)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, InsertSQL(l.Dialect, mapping))
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert into %s: %w", mapping.Table, err)
	}
	defer stmt.Close()

	var inserted int64
	for i, row := range rows {
		if len(row) != len(mapping.Columns) {
			_ = tx.Rollback()
			return 0, fmt.Errorf("row %d has %d values, %s expects %d", i, len(row), mapping.Table, len(mapping.Columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert row %d into %s: %w", i, mapping.Table, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit %s: %w", mapping.Table, err)
	}
	return inserted, nil
}

// InsertSQL renders the single-row insert for a mapping. The creation
// timestamp is filled in by the server.
func InsertSQL(d models.Dialect, m models.TableMapping) string {
	placeholders := make([]string, len(m.Columns))
	for i := range m.Columns {
		placeholders[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (%s, %s)",
		m.Table,
		strings.Join(m.Columns, ", "), m.CreatedAt,
		strings.Join(placeholders, ", "), d.Now())
}
