// Package parser implements the transaction ingestion pipeline: format
// detection, layout sniffing, XLSX/XML parsing and normalization into
// canonical Transaction records.
//
// Parsers hold no cross-call state; concurrent ingestion calls do not
// interfere. Structural failures come back as wrapped sentinel errors.
// Row-level failures are coerced to safe defaults or drop the row;
// nothing raises past this boundary.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported input file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXML  Format = "xml"
)

// ErrUnsupportedFormat is returned for file types the pipeline cannot
// ingest.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// DetectFormat maps a file name to its ingestion format by extension.
func DetectFormat(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xml":
		return FormatXML, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .xlsx or .xml)", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}
