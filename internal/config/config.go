// Package config turns the process environment (populated from .env in
// main.go) into the settings shared by every pipeline.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BartekS5/retail-etl/pkg/models"
)

const (
	DefaultDataDir = "datasource"
	DefaultWorkers = 5
)

// Config holds all configuration for the application. It is read once at
// startup and handed to the pipelines.
type Config struct {
	Driver   models.Dialect
	Server   string
	Database string
	User     string
	Password string
	// DSN overrides the connection string built from Server and Database.
	DSN string

	DataDir string
	Workers int
	LogFile string
}

// LoadConfig reads application settings from environment variables. It does
// not validate them; flags may still override fields before Validate runs.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Driver:   models.DialectSQLServer,
		Server:   os.Getenv("SERVER"),
		Database: os.Getenv("DATABASE"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DSN:      os.Getenv("WAREHOUSE_DSN"),
		DataDir:  DefaultDataDir,
		Workers:  DefaultWorkers,
		LogFile:  os.Getenv("LOG_FILE"),
	}

	if v := os.Getenv("WAREHOUSE_DRIVER"); v != "" {
		d, err := models.ParseDialect(v)
		if err != nil {
			return nil, err
		}
		cfg.Driver = d
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ETL_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("ETL_WORKERS must be an integer, got %q", v)
		}
		cfg.Workers = n
	}

	return cfg, nil
}

// Validate checks that the settings are enough to reach the warehouse.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data directory not set")
	}

	switch c.Driver {
	case models.DialectSQLServer:
		if c.DSN != "" {
			return nil
		}
		if c.Server == "" {
			return errors.New("SERVER environment variable not set")
		}
		if c.Database == "" {
			return errors.New("DATABASE environment variable not set")
		}
	case models.DialectPostgres, models.DialectSQLite, models.DialectMongo:
		if c.DSN == "" {
			return fmt.Errorf("WAREHOUSE_DSN environment variable not set (required for %s)", c.Driver)
		}
	default:
		return fmt.Errorf("unknown warehouse driver %q", c.Driver)
	}
	return nil
}

// WarehouseDSN is the connection string handed to the warehouse driver.
func (c *Config) WarehouseDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == models.DialectSQLServer {
		return SQLServerDSN(c.Server, c.Database, c.User, c.Password)
	}
	return ""
}

// SQLServerDSN builds a go-mssqldb URL connection string. server may carry a
// port (host:1433) or a named instance (host\SQLEXPRESS). Without a user the
// driver falls back to integrated (trusted) authentication.
func SQLServerDSN(server, database, user, password string) string {
	host, instance, _ := strings.Cut(server, `\`)
	u := &url.URL{
		Scheme: "sqlserver",
		Host:   host,
	}
	if instance != "" {
		u.Path = "/" + instance
	}
	if user != "" {
		u.User = url.UserPassword(user, password)
	}
	q := url.Values{}
	q.Set("database", database)
	u.RawQuery = q.Encode()
	return u.String()
}
