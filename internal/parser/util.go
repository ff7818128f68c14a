package parser

import (
	"strconv"
	"strings"
)

// parseAmount converts a string like "1,234.56" or "-$1,234.56" to a
// float64. Empty input and a bare "-" are zero, not errors.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	// Remove currency symbols and whitespace (including Unicode variants)
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00A0", "") // non-breaking space

	if s == "" || s == "-" {
		return 0, nil
	}

	return strconv.ParseFloat(s, 64)
}

// cellAt returns the trimmed cell at index i, or "" when the row is too
// short. Spreadsheet readers drop trailing empty cells, so short rows
// are normal.
func cellAt(row []string, i int) string {
	if i >= 0 && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// isRowEmpty reports whether a row has no populated cells.
func isRowEmpty(row []string) bool {
	return populatedCells(row) == 0
}

// populatedCells counts cells with non-blank content.
func populatedCells(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}
