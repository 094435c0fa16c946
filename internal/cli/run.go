package cli

import (
	"github.com/spf13/cobra"

	"github.com/BartekS5/retail-etl/pkg/models"
)

// RunOptions holds flag values. Zero values leave the environment setting
// in place.
type RunOptions struct {
	DataDir string
	Workers int
	Driver  string
	DSN     string
	LogFile string
	DryRun  bool
	Verbose bool
}

func NewRunCmd() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:       "run [customers|transactions|products]...",
		Short:     "Run the ETL for all entities, or only the named ones",
		ValidArgs: []string{"customers", "transactions", "products"},
		RunE: func(c *cobra.Command, args []string) error {
			entities, err := parseEntities(args)
			if err != nil {
				return err
			}
			return runETL(c.Context(), opts, entities, c.OutOrStdout())
		},
	}

	addCommonFlags(cmd, opts)
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 0, "Parallel writers per entity (default ETL_WORKERS or 5)")
	cmd.Flags().StringVar(&opts.Driver, "driver", "", "Warehouse driver: sqlserver, postgres, sqlite or mongo (default WAREHOUSE_DRIVER or sqlserver)")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "Warehouse connection string (default WAREHOUSE_DSN, or built from SERVER and DATABASE)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Extract and transform only, log what would be loaded")

	return cmd
}

func NewValidateCmd() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "validate [customers|transactions|products]...",
		Short: "Check the source files and report how many rows would be loaded",
		RunE: func(c *cobra.Command, args []string) error {
			entities, err := parseEntities(args)
			if err != nil {
				return err
			}
			return runValidate(c.Context(), opts, entities, c.OutOrStdout())
		},
	}

	addCommonFlags(cmd, opts)
	return cmd
}

func addCommonFlags(cmd *cobra.Command, opts *RunOptions) {
	cmd.Flags().StringVarP(&opts.DataDir, "data-dir", "d", "", "Directory or s3://bucket/prefix holding the CSV files (default DATA_DIR or ./datasource)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Also append logs to this file (default LOG_FILE)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
}

func parseEntities(args []string) ([]models.Entity, error) {
	entities := make([]models.Entity, 0, len(args))
	for _, a := range args {
		e, err := models.ParseEntity(a)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}
