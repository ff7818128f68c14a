package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pennyledger/expense-ingest/internal/parser"
	"github.com/pennyledger/expense-ingest/internal/writer"
)

var (
	outputPath string
	noHeader   bool
)

var processCmd = &cobra.Command{
	Use:   "process <file.xlsx|file.xml> [more files...]",
	Short: "Ingest export files and print or write the normalized transactions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger()
		ing := &parser.Ingestor{Log: &log}

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Error().Err(err).Str("file", path).Msg("cannot read input")
				continue
			}

			txns, err := ing.Ingest(path, data)
			if err != nil {
				// Keep going: one bad file must not abort the batch.
				log.Error().Err(err).Str("file", path).Msg("ingestion failed")
				continue
			}

			log.Info().Str("file", path).Int("transactions", len(txns)).Msg("ingested")

			if outputPath != "" {
				w := &writer.CSVWriter{IncludeHeader: !noHeader}
				if err := w.WriteToFile(outputPath, txns); err != nil {
					log.Error().Err(err).Str("output", outputPath).Msg("CSV write failed")
					continue
				}
				log.Info().Str("output", outputPath).Msg("wrote CSV")
				continue
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(txns); err != nil {
				log.Error().Err(err).Msg("encoding transactions")
			}
		}
	},
}

func init() {
	processCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write CSV to this path instead of printing JSON")
	processCmd.Flags().BoolVar(&noHeader, "no-header", false, "omit the CSV header row")
	rootCmd.AddCommand(processCmd)
}
