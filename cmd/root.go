package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pennyledger/expense-ingest/internal/logger"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "expense-ingest",
	Short: "Ingest XLSX/XML transaction exports into normalized records",
	Long: `expense-ingest turns bank and credit-card exports (XLSX or XML) of
unknown internal layout into normalized transaction records.

It sniffs the sheet layout (CSV-wrapped-in-a-cell, sparse, tabular),
maps columns to canonical fields, decodes Excel serial dates and drops
unusable rows.

Examples:
  expense-ingest process statement.xlsx            # print transactions as JSON
  expense-ingest process --output out.csv jan.xml  # export as CSV
  expense-ingest serve                             # run the HTTP ingestion API`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return logger.New(level)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
