package etl

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/BartekS5/retail-etl/pkg/models"
)

// Extractor reads the three entity files from a Source.
type Extractor struct {
	Source Source
}

func NewExtractor(src Source) *Extractor {
	return &Extractor{Source: src}
}

func (e *Extractor) Customers(ctx context.Context) ([]models.Customer, error) {
	rows, err := e.extract(ctx, models.EntityCustomers)
	if err != nil {
		return nil, err
	}
	out := make([]models.Customer, len(rows))
	for i, f := range rows {
		out[i] = models.CustomerFromFields(f)
	}
	return out, nil
}

func (e *Extractor) Transactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := e.extract(ctx, models.EntityTransactions)
	if err != nil {
		return nil, err
	}
	out := make([]models.Transaction, len(rows))
	for i, f := range rows {
		out[i] = models.TransactionFromFields(f)
	}
	return out, nil
}

func (e *Extractor) Products(ctx context.Context) ([]models.Product, error) {
	rows, err := e.extract(ctx, models.EntityProducts)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, len(rows))
	for i, f := range rows {
		out[i] = models.ProductFromFields(f)
	}
	return out, nil
}

func (e *Extractor) extract(ctx context.Context, entity models.Entity) ([][]string, error) {
	rc, err := e.Source.Open(ctx, entity.SourceFile())
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", entity, err)
	}
	defer rc.Close()

	rows, err := ReadTable(rc, entity.Header())
	if err != nil {
		return nil, fmt.Errorf("extract %s from %s: %w", entity, entity.SourceFile(), err)
	}
	return rows, nil
}

// ReadTable parses delimited text with a header line and returns every data
// row projected onto columns, in that order. Header names are matched case
// insensitively; extra columns are ignored and a short row is padded with
// empty fields. A leading byte order mark is dropped.
func ReadTable(r io.Reader, columns []string) ([][]string, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header line")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	positions := make([]int, len(columns))
	for i, c := range columns {
		pos, ok := index[c]
		if !ok {
			return nil, fmt.Errorf("missing column %q in header %v", c, header)
		}
		positions[i] = pos
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(rec))
		}
		row := make([]string, len(columns))
		for i, pos := range positions {
			if pos < len(rec) {
				row[i] = rec[pos]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
