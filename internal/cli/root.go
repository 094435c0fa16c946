// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "retail-etl",
		Short: "retail-etl - batch load of customers, transactions and products into the warehouse",
		Long: `retail-etl reads customers.csv, transactions.csv and products.csv, drops
invalid rows, normalizes them and loads them into the warehouse dimension and
fact tables using parallel writers.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewRunCmd(), NewValidateCmd())

	return rootCmd
}
