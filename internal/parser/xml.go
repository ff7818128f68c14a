package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/pennyledger/expense-ingest/internal/models"
)

// ErrNotTransactionsXML is returned when an XML upload fails the
// structural pre-check.
var ErrNotTransactionsXML = errors.New("not a transactions XML document: missing <transactions> root")

// XMLParser handles XML exports with a
// <transactions><transaction>...</transaction></transactions> shape.
// Stateless and safe for concurrent use.
type XMLParser struct{}

type xmlDocument struct {
	XMLName      xml.Name         `xml:"transactions"`
	Transactions []xmlTransaction `xml:"transaction"`
}

type xmlTransaction struct {
	Date        string `xml:"date"`
	Description string `xml:"description"`
	Amount      string `xml:"amount"`
}

// Validate is a cheap structural pre-check: non-empty text whose
// trimmed form starts with the <transactions> root tag. Full
// well-formedness errors surface from Parse, not here.
func (p *XMLParser) Validate(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<transactions>")
}

// Parse walks the transaction nodes and normalizes them. On malformed
// input it returns an empty (never nil) slice together with an error,
// so callers can tell "zero transactions" from "unparsable file".
func (p *XMLParser) Parse(text string) ([]models.Transaction, error) {
	var doc xmlDocument
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return []models.Transaction{}, fmt.Errorf("parsing failed: %w", err)
	}

	rows := make([][]string, 0, len(doc.Transactions))
	for _, txn := range doc.Transactions {
		rows = append(rows, []string{txn.Date, txn.Description, txn.Amount})
	}

	mapping := []string{models.FieldDate, models.FieldDescription, models.FieldAmount}
	return Normalize(rows, mapping), nil
}
