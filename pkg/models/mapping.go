package models

import (
	"fmt"
	"strings"
)

// Entity names one of the three datasets loaded by the ETL.
type Entity string

const (
	EntityCustomers    Entity = "customers"
	EntityTransactions Entity = "transactions"
	EntityProducts     Entity = "products"
)

// Entities lists every entity in the order the orchestrator runs them.
var Entities = []Entity{EntityCustomers, EntityTransactions, EntityProducts}

// ParseEntity maps a user supplied name onto an Entity.
func ParseEntity(name string) (Entity, error) {
	switch e := Entity(strings.ToLower(strings.TrimSpace(name))); e {
	case EntityCustomers, EntityTransactions, EntityProducts:
		return e, nil
	}
	return "", fmt.Errorf("unknown entity %q (want customers, transactions or products)", name)
}

// SourceFile is the file name the entity is extracted from.
func (e Entity) SourceFile() string {
	return string(e) + ".csv"
}

// Header is the fixed column set expected in the entity's source file.
func (e Entity) Header() []string {
	switch e {
	case EntityCustomers:
		return []string{"customer_id", "name", "email", "address"}
	case EntityTransactions:
		return []string{"transaction_id", "customer_id", "transaction_date", "amount"}
	case EntityProducts:
		return []string{"product_id", "product_name", "category", "price"}
	}
	return nil
}

// Dialect identifies the warehouse backend.
type Dialect string

const (
	DialectSQLServer Dialect = "sqlserver"
	DialectPostgres  Dialect = "postgres"
	DialectSQLite    Dialect = "sqlite"
	DialectMongo     Dialect = "mongo"
)

// ParseDialect maps a WAREHOUSE_DRIVER value onto a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(name))); d {
	case DialectSQLServer, DialectPostgres, DialectSQLite, DialectMongo:
		return d, nil
	case "mssql":
		return DialectSQLServer, nil
	case "postgresql", "pgx":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("unknown warehouse driver %q", name)
}

// DriverName is the database/sql driver registered for the dialect.
// Mongo has none.
func (d Dialect) DriverName() string {
	switch d {
	case DialectSQLServer:
		return "sqlserver"
	case DialectPostgres:
		return "pgx"
	case DialectSQLite:
		return "sqlite"
	}
	return ""
}

// Placeholder returns the bind marker for the 1-based argument n.
func (d Dialect) Placeholder(n int) string {
	switch d {
	case DialectSQLServer:
		return fmt.Sprintf("@p%d", n)
	case DialectPostgres:
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Now is the server side expression used for the creation timestamp.
func (d Dialect) Now() string {
	if d == DialectSQLServer {
		return "GETDATE()"
	}
	return "CURRENT_TIMESTAMP"
}

// TableMapping describes where one entity lands in the warehouse.
type TableMapping struct {
	Entity Entity
	// Table is the qualified table name, or the collection name for Mongo.
	Table string
	// Columns are the business columns in insert order. They line up with
	// Entity.Header().
	Columns []string
	// CreatedAt is the column populated with the load timestamp.
	CreatedAt string
}

// Mapping returns the warehouse table layout for an entity in a dialect.
func Mapping(d Dialect, e Entity) TableMapping {
	switch d {
	case DialectSQLServer:
		return sqlServerMappings[e]
	case DialectPostgres:
		m := lowerMapping(e)
		m.Table = map[Entity]string{
			EntityCustomers:    "dim.customers",
			EntityTransactions: "fact.transactions",
			EntityProducts:     "dim.products",
		}[e]
		return m
	default:
		// SQLite has no schemas and Mongo has no namespaces below the database.
		m := lowerMapping(e)
		m.Table = map[Entity]string{
			EntityCustomers:    "dim_customers",
			EntityTransactions: "fact_transactions",
			EntityProducts:     "dim_products",
		}[e]
		return m
	}
}

var sqlServerMappings = map[Entity]TableMapping{
	EntityCustomers: {
		Entity:    EntityCustomers,
		Table:     "[dim].[CUSTOMERS]",
		Columns:   []string{"CUSTOMER_ID", "NAME", "EMAIL", "ADDRESS"},
		CreatedAt: "CREATED_AT",
	},
	EntityTransactions: {
		Entity:    EntityTransactions,
		Table:     "[fact].[TRANSACTIONS]",
		Columns:   []string{"TRANSACTION_ID", "CUSTOMER_ID", "TRANSACTION_DATE", "AMOUNT"},
		CreatedAt: "CREATED_AT",
	},
	EntityProducts: {
		Entity:    EntityProducts,
		Table:     "[dim].[PRODUCTS]",
		Columns:   []string{"PRODUCT_ID", "PRODUCT_NAME", "CATEGORY", "PRICE"},
		CreatedAt: "CREATED_AT",
	},
}

func lowerMapping(e Entity) TableMapping {
	return TableMapping{
		Entity:    e,
		Columns:   e.Header(),
		CreatedAt: "created_at",
	}
}
