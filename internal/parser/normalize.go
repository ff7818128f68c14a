package parser

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/pennyledger/expense-ingest/internal/dates"
	"github.com/pennyledger/expense-ingest/internal/models"
)

// Normalize turns raw rows plus a header mapping into transactions.
// mapping[i] names the canonical field for column i (see models field
// constants); matching is case-insensitive and FieldIgnore columns are
// skipped.
//
// Every output row gets a fresh ID. Missing or unparsable numeric
// fields coerce to 0, missing currency to USD, missing category to
// Uncategorized. Rows that end up with neither a date nor a non-zero
// amount are dropped as noise.
func Normalize(rows [][]string, mapping []string) []models.Transaction {
	return normalizeAt(rows, mapping, 0, false)
}

// normalizeAt is Normalize with provenance and row filtering knobs:
// startRow offsets SourceRow so it stays 1-based relative to the
// original file, and requireDate additionally drops rows whose mapped
// date resolved to empty.
func normalizeAt(rows [][]string, mapping []string, startRow int, requireDate bool) []models.Transaction {
	out := make([]models.Transaction, 0, len(rows))

	for i, row := range rows {
		if isRowEmpty(row) {
			continue
		}

		t := models.Transaction{
			ID:        uuid.NewString(),
			Category:  models.DefaultCategory,
			Currency:  models.DefaultCurrency,
			SourceRow: startRow + i + 1,
		}

		for col, field := range mapping {
			cell := cellAt(row, col)
			switch strings.ToLower(strings.TrimSpace(field)) {
			case models.FieldDate:
				t.Date = coerceDate(cell)
			case models.FieldDescription:
				t.Description = cell
			case models.FieldCategory:
				if cell != "" {
					t.Category = cell
				}
			case models.FieldCurrency:
				if cell != "" {
					t.Currency = strings.ToUpper(cell)
				}
			case models.FieldIncome:
				t.Income = coerceAmount(cell)
			case models.FieldExpenses:
				t.Expenses = coerceAmount(cell)
			case models.FieldAmount:
				// Single signed amount: sign decides the side.
				if v, err := parseAmount(cell); err == nil {
					if v < 0 {
						t.Expenses += -v
					} else {
						t.Income += v
					}
				}
			}
		}

		if requireDate && t.Date == "" {
			continue
		}
		if t.Date == "" && t.Income == 0 && t.Expenses == 0 {
			continue
		}

		out = append(out, t)
	}

	return out
}

// coerceDate converts a raw cell to ISO form: plausible Excel serials
// are decoded, known string layouts are parsed, anything else passes
// through trimmed.
func coerceDate(cell string) string {
	if serial, ok := dates.ParseExcelSerial(cell); ok {
		iso, _ := dates.ExcelSerialToISO(serial)
		return iso
	}
	return dates.ToISO(cell, "")
}

// coerceAmount reads a dedicated income/expenses column. Debit columns
// often carry negative numbers, so the absolute value is taken; bad
// input coerces to 0.
func coerceAmount(cell string) float64 {
	v, err := parseAmount(cell)
	if err != nil {
		return 0
	}
	return math.Abs(v)
}
