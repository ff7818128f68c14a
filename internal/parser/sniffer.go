package parser

import (
	"errors"
	"strings"

	"github.com/pennyledger/expense-ingest/internal/dates"
	"github.com/pennyledger/expense-ingest/internal/models"
)

// Layout identifies how a sheet's raw rows are organized.
type Layout string

const (
	// LayoutCSVInCell marks exports where an entire CSV line was
	// wrapped into a single spreadsheet cell per row.
	LayoutCSVInCell Layout = "csv-in-cell"
	// LayoutSparse marks sheets whose rows have inconsistent lengths
	// because the reader dropped trailing empty cells.
	LayoutSparse Layout = "sparse"
	// LayoutTabular is a normal sheet with a consistent column count.
	LayoutTabular Layout = "tabular"
)

// ErrInsufficientColumns is returned when no layout yields at least two
// columns: there is no way to map even a date/description pair.
var ErrInsufficientColumns = errors.New("insufficient columns: need at least two columns to map transaction fields")

// Classification is the sniffer's verdict on a raw row grid.
type Classification struct {
	Layout Layout
	// HeaderRowIndex is the index of the detected column-header row,
	// or -1 when the sheet starts directly with data.
	HeaderRowIndex int
	// DataStartIndex is the index of the first data row.
	DataStartIndex int
	// Rows holds the rows after layout repair: re-split for
	// csv-in-cell, padded to a uniform width for sparse.
	Rows [][]string
}

// Classify inspects raw parsed rows and decides which layout strategy
// applies, repairing the grid so every row has the same column count.
func Classify(rows [][]string) (Classification, error) {
	if len(rows) == 0 {
		return Classification{}, ErrInsufficientColumns
	}

	cls := Classification{HeaderRowIndex: -1}

	if isCSVInCell(rows[0]) {
		cls.Layout = LayoutCSVInCell
		cls.Rows = resplitCSVRows(rows)
	} else {
		cls.Rows = rows
		if uniformWidth(rows) {
			cls.Layout = LayoutTabular
		} else {
			cls.Layout = LayoutSparse
		}
	}

	max := maxColumns(cls.Rows)
	if max < 2 {
		return Classification{}, ErrInsufficientColumns
	}
	cls.Rows = padRows(cls.Rows, max)

	if looksLikeHeader(firstPopulated(cls.Rows)) {
		cls.HeaderRowIndex = firstPopulatedIndex(cls.Rows)
		cls.DataStartIndex = cls.HeaderRowIndex + 1
	}

	return cls, nil
}

// DefaultMapping builds a header mapping from a header row by matching
// known column-name aliases. Unrecognized columns map to FieldIgnore.
func DefaultMapping(headerRow []string) []string {
	mapping := make([]string, len(headerRow))
	for i, cell := range headerRow {
		mapping[i] = canonicalField(cell)
	}
	return mapping
}

var headerAliases = map[string]string{
	"date":             models.FieldDate,
	"transaction date": models.FieldDate,
	"posted":           models.FieldDate,
	"description":      models.FieldDescription,
	"details":          models.FieldDescription,
	"memo":             models.FieldDescription,
	"narrative":        models.FieldDescription,
	"payee":            models.FieldDescription,
	"amount":           models.FieldAmount,
	"value":            models.FieldAmount,
	"income":           models.FieldIncome,
	"credit":           models.FieldIncome,
	"paid in":          models.FieldIncome,
	"deposit":          models.FieldIncome,
	"expenses":         models.FieldExpenses,
	"expense":          models.FieldExpenses,
	"debit":            models.FieldExpenses,
	"paid out":         models.FieldExpenses,
	"withdrawal":       models.FieldExpenses,
	"category":         models.FieldCategory,
	"currency":         models.FieldCurrency,
	"ccy":              models.FieldCurrency,
}

func canonicalField(header string) string {
	if field, ok := headerAliases[strings.ToLower(strings.TrimSpace(header))]; ok {
		return field
	}
	return models.FieldIgnore
}

// isCSVInCell detects the single-populated-cell-with-commas shape some
// exporters produce for the first row.
func isCSVInCell(row []string) bool {
	if populatedCells(row) != 1 {
		return false
	}
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return strings.Contains(cell, ",")
		}
	}
	return false
}

// resplitCSVRows recovers a tabular structure by splitting each row's
// first populated cell on commas.
func resplitCSVRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		var text string
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				text = cell
				break
			}
		}
		if text == "" {
			out[i] = nil
			continue
		}
		parts := strings.Split(text, ",")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}
		out[i] = parts
	}
	return out
}

func uniformWidth(rows [][]string) bool {
	width := -1
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return false
		}
	}
	return true
}

func maxColumns(rows [][]string) int {
	max := 0
	for _, row := range rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

func padRows(rows [][]string, width int) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) >= width {
			out[i] = row
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		out[i] = padded
	}
	return out
}

// looksLikeHeader decides whether a row is a column-header row: at
// least two populated cells, none of which reads as a number or a date.
func looksLikeHeader(row []string) bool {
	if populatedCells(row) < 2 {
		return false
	}
	recognized := false
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if _, err := parseAmount(cell); err == nil {
			return false
		}
		if dates.IsDate(cell) {
			return false
		}
		if canonicalField(cell) != models.FieldIgnore {
			recognized = true
		}
	}
	return recognized
}

func firstPopulated(rows [][]string) []string {
	for _, row := range rows {
		if !isRowEmpty(row) {
			return row
		}
	}
	return nil
}

func firstPopulatedIndex(rows [][]string) int {
	for i, row := range rows {
		if !isRowEmpty(row) {
			return i
		}
	}
	return 0
}
