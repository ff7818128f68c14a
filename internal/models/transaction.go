package models

// Transaction represents a single normalized financial record produced
// by the ingestion pipeline. Dates are ISO (YYYY-MM-DD) internally; the
// display layer renders DD/MM/YYYY.
type Transaction struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Currency    string  `json:"currency"`
	FileName    string  `json:"fileName,omitempty"`  // which import produced this record
	SourceRow   int     `json:"sourceRow,omitempty"` // 1-based row in the source file
}

// Defaults applied during normalization when the source provides no value.
const (
	DefaultCategory = "Uncategorized"
	DefaultCurrency = "USD"
)

// Canonical field names a header mapping may reference. Matching is
// case-insensitive; FieldIgnore marks a column that must be skipped.
const (
	FieldDate        = "date"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldIncome      = "income"
	FieldExpenses    = "expenses"
	FieldCurrency    = "currency"
	FieldIgnore      = "–"
)
