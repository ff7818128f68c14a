package parser

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pennyledger/expense-ingest/internal/models"
)

// Structural failures an XLSX upload can hit. Each carries a distinct
// user-facing message instead of a generic "parse error".
var (
	ErrNoWorksheets  = errors.New("workbook contains no worksheets")
	ErrSheetNotFound = errors.New("worksheet not found")
	ErrNoDataRows    = errors.New("insufficient data rows: worksheet has no rows below the header")
)

// ExcelParser reads XLSX workbooks into raw cell grids and mapped
// transactions. It holds no state and is safe for concurrent use.
type ExcelParser struct{}

// Parse reads the first worksheet of a workbook into a 2-D cell grid.
func (p *ExcelParser) Parse(data []byte) ([][]string, error) {
	f, err := p.open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, ErrNoWorksheets
	}
	return sheetRows(f, name)
}

// SheetNames lists the worksheets in a workbook.
func (p *ExcelParser) SheetNames(data []byte) ([]string, error) {
	f, err := p.open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, ErrNoWorksheets
	}
	return names, nil
}

// ParseSheet reads a worksheet selected by name.
func (p *ExcelParser) ParseSheet(data []byte, name string) ([][]string, error) {
	f, err := p.open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return sheetRows(f, name)
}

// ParseWithMapping reads the first worksheet and maps its rows straight
// to transactions. headerRow is skipped; data starts at dataRow. Rows
// that are empty or whose mapped date resolves to empty are not
// emitted.
func (p *ExcelParser) ParseWithMapping(data []byte, mapping []string, headerRow, dataRow int) ([]models.Transaction, error) {
	if headerRow >= dataRow {
		return nil, fmt.Errorf("header row %d must precede data row %d", headerRow, dataRow)
	}
	rows, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	if dataRow < 0 || len(rows) <= dataRow {
		return nil, ErrNoDataRows
	}
	return normalizeAt(rows[dataRow:], mapping, dataRow, true), nil
}

func (p *ExcelParser) open(data []byte) (*excelize.File, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	return f, nil
}

func sheetRows(f *excelize.File, name string) ([][]string, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("cannot convert sheet %q to rows: %w", name, err)
	}
	return rows, nil
}
