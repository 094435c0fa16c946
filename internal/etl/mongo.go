package etl

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BartekS5/retail-etl/pkg/database"
	"github.com/BartekS5/retail-etl/pkg/models"
)

// DefaultMongoDatabase is used when DATABASE is not set for the mongo driver.
const DefaultMongoDatabase = "warehouse"

// MongoLoader writes chunks as documents, one collection per entity. Each
// Load connects its own client and writes the chunk with a single ordered
// InsertMany.
type MongoLoader struct {
	URI      string
	Database string
	now      func() time.Time
}

func NewMongoLoader(uri, database string) *MongoLoader {
	if database == "" {
		database = DefaultMongoDatabase
	}
	return &MongoLoader{URI: uri, Database: database, now: time.Now}
}

func (m *MongoLoader) Load(ctx context.Context, entity models.Entity, rows []Row) (int64, error) {
	mapping := models.Mapping(models.DialectMongo, entity)
	docs, err := m.documents(mapping, rows)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}

	client, err := database.ConnectMongo(ctx, m.URI)
	if err != nil {
		return 0, err
	}
	defer database.DisconnectMongo(client)

	coll := client.Database(m.Database).Collection(mapping.Table)
	res, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		var inserted int64
		if res != nil {
			inserted = int64(len(res.InsertedIDs))
		}
		return inserted, fmt.Errorf("insert into %s: %w", mapping.Table, err)
	}
	return int64(len(res.InsertedIDs)), nil
}

func (m *MongoLoader) documents(mapping models.TableMapping, rows []Row) ([]interface{}, error) {
	now := m.now().UTC()
	docs := make([]interface{}, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(mapping.Columns) {
			return nil, fmt.Errorf("row %d has %d values, %s expects %d", i, len(row), mapping.Table, len(mapping.Columns))
		}
		doc := make(bson.D, 0, len(row)+1)
		for j, col := range mapping.Columns {
			doc = append(doc, bson.E{Key: col, Value: row[j]})
		}
		doc = append(doc, bson.E{Key: mapping.CreatedAt, Value: now})
		docs = append(docs, doc)
	}
	return docs, nil
}
