package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/BartekS5/retail-etl/internal/config"
	"github.com/BartekS5/retail-etl/internal/etl"
	"github.com/BartekS5/retail-etl/pkg/logger"
	"github.com/BartekS5/retail-etl/pkg/models"
)

func runETL(ctx context.Context, opts *RunOptions, entities []models.Entity, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if !opts.DryRun {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if err := initLogger(cfg, opts); err != nil {
		return err
	}
	defer logger.Close()

	src, err := etl.NewSource(ctx, cfg.DataDir)
	if err != nil {
		return err
	}

	pipeline := etl.NewPipeline(etl.NewExtractor(src), newLoader(cfg), cfg.Workers, opts.DryRun)
	orchestrator := etl.NewOrchestrator(pipeline, out)

	logger.Infof("Starting ETL. Driver: %s, Data: %s, Workers: %d, DryRun: %v", cfg.Driver, cfg.DataDir, cfg.Workers, opts.DryRun)
	if _, err := orchestrator.Run(ctx, entities); err != nil {
		logger.Errorf("ETL failed: %v", err)
		return err
	}
	logger.Infof("ETL finished successfully.")
	return nil
}

func runValidate(ctx context.Context, opts *RunOptions, entities []models.Entity, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := initLogger(cfg, opts); err != nil {
		return err
	}
	defer logger.Close()

	src, err := etl.NewSource(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	reports, err := etl.Inspect(ctx, etl.NewExtractor(src), entities)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tREAD\tKEPT\tDROPPED")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", r.Entity, r.Read, r.Kept, r.Read-r.Kept)
	}
	return tw.Flush()
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(opts *RunOptions) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.Workers != 0 {
		cfg.Workers = opts.Workers
	}
	if opts.Driver != "" {
		d, err := models.ParseDialect(opts.Driver)
		if err != nil {
			return nil, err
		}
		cfg.Driver = d
	}
	if opts.DSN != "" {
		cfg.DSN = opts.DSN
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	return cfg, nil
}

func initLogger(cfg *config.Config, opts *RunOptions) error {
	level := logger.INFO
	if opts.Verbose {
		level = logger.DEBUG
	}
	if err := logger.InitLogger(cfg.LogFile, level); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	return nil
}

func newLoader(cfg *config.Config) etl.Loader {
	if cfg.Driver == models.DialectMongo {
		return etl.NewMongoLoader(cfg.WarehouseDSN(), cfg.Database)
	}
	return etl.NewSQLLoader(cfg.Driver, cfg.WarehouseDSN())
}
