package parser

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pennyledger/expense-ingest/internal/models"
)

// Ingestor orchestrates the full pipeline for one uploaded file:
// format dispatch, layout sniffing, parsing, normalization, provenance
// stamping and within-call duplicate removal. The zero value is ready
// to use.
type Ingestor struct {
	Excel ExcelParser
	XML   XMLParser
	Log   *zerolog.Logger
}

func (ing *Ingestor) logger() *zerolog.Logger {
	if ing.Log != nil {
		return ing.Log
	}
	nop := zerolog.Nop()
	return &nop
}

// Ingest turns raw file bytes into normalized transactions. The file
// name decides the format (.xlsx/.xlsm or .xml). Structural problems
// return an error and no transactions; bad individual rows are dropped
// or coerced silently.
func (ing *Ingestor) Ingest(fileName string, data []byte) ([]models.Transaction, error) {
	format, err := DetectFormat(fileName)
	if err != nil {
		return nil, err
	}

	var txns []models.Transaction
	switch format {
	case FormatXML:
		text := string(data)
		if !ing.XML.Validate(text) {
			return nil, ErrNotTransactionsXML
		}
		txns, err = ing.XML.Parse(text)
	case FormatXLSX:
		txns, err = ing.ingestWorkbook(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	txns = dedupe(txns)
	for i := range txns {
		txns[i].FileName = fileName
	}

	ing.logger().Debug().
		Str("file", fileName).
		Str("format", string(format)).
		Int("transactions", len(txns)).
		Msg("ingestion complete")

	return txns, nil
}

func (ing *Ingestor) ingestWorkbook(data []byte) ([]models.Transaction, error) {
	rows, err := ing.Excel.Parse(data)
	if err != nil {
		return nil, err
	}

	cls, err := Classify(rows)
	if err != nil {
		return nil, err
	}

	var mapping []string
	if cls.HeaderRowIndex >= 0 {
		mapping = DefaultMapping(cls.Rows[cls.HeaderRowIndex])
	} else {
		// Headerless sheets: assume date, description, amount in the
		// leading columns and ignore the rest.
		mapping = positionalMapping(maxColumns(cls.Rows))
	}

	txns := normalizeAt(cls.Rows[cls.DataStartIndex:], mapping, cls.DataStartIndex, false)
	if dropped := len(cls.Rows) - cls.DataStartIndex - len(txns); dropped > 0 {
		ing.logger().Debug().Int("rows", dropped).Msg("dropped unusable rows")
	}
	return txns, nil
}

func positionalMapping(width int) []string {
	mapping := make([]string, width)
	for i := range mapping {
		mapping[i] = models.FieldIgnore
	}
	fields := []string{models.FieldDate, models.FieldDescription, models.FieldAmount}
	for i, f := range fields {
		if i < width {
			mapping[i] = f
		}
	}
	return mapping
}

// dedupe drops repeats of the same transaction within a single
// ingestion call, keeping the first occurrence. Deduplication never
// spans calls.
func dedupe(txns []models.Transaction) []models.Transaction {
	seen := make(map[string]struct{}, len(txns))
	out := txns[:0]
	for _, t := range txns {
		key := fmt.Sprintf("%s|%s|%.2f|%.2f", t.Date, t.Description, t.Income, t.Expenses)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
