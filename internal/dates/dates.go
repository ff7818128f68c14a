// Package dates converts between the date representations that show up
// in transaction exports: ISO (YYYY-MM-DD), display (DD/MM/YYYY) and
// Excel day-count serials.
//
// All conversions are pure. Input that cannot be converted is returned
// unchanged so callers can always fall back to raw display.
package dates

import (
	"strconv"
	"strings"
	"time"
)

const (
	// ISOLayout is the canonical internal date form.
	ISOLayout = "2006-01-02"
	// DisplayLayout is what the UI renders.
	DisplayLayout = "02/01/2006"
)

// Serials outside this window (~1968 to ~2173) are treated as plain
// numbers rather than dates, so amounts never get mis-decoded.
const (
	MinExcelSerial = 25000
	MaxExcelSerial = 100000
)

// excelEpoch is one day before 1900-01-01, so serial 1 maps to
// 1900-01-01. Excel's phantom 1900 leap day means naive decoders
// subtract two days; the corrected offset subtracts one.
var excelEpoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC)

// layouts tried when the caller gives no source layout, in order.
var fallbackLayouts = []string{
	ISOLayout,
	DisplayLayout,
	"2006/01/02",
	"02-01-2006",
	"2 Jan 2006",
	"2 Jan 06",
}

// ToISO converts a date string in the given layout to ISO form. With an
// empty layout a small set of common layouts is tried. Input that does
// not parse is returned unchanged.
func ToISO(value, layout string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return value
	}
	if layout != "" {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(ISOLayout)
		}
		return value
	}
	for _, l := range fallbackLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return t.Format(ISOLayout)
		}
	}
	return value
}

// ToDisplay renders an ISO date as DD/MM/YYYY. Non-ISO input is
// returned unchanged.
func ToDisplay(isoDate string) string {
	t, err := time.Parse(ISOLayout, strings.TrimSpace(isoDate))
	if err != nil {
		return isoDate
	}
	return t.Format(DisplayLayout)
}

// IsDate reports whether value matches any of the known date layouts.
func IsDate(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	for _, l := range fallbackLayouts {
		if _, err := time.Parse(l, v); err == nil {
			return true
		}
	}
	return false
}

// ExcelSerialToISO converts an Excel day-count serial to an ISO date.
// Serials outside the plausible window are rejected.
func ExcelSerialToISO(serial float64) (string, bool) {
	if serial < MinExcelSerial || serial > MaxExcelSerial {
		return "", false
	}
	return excelEpoch.AddDate(0, 0, int(serial)).Format(ISOLayout), true
}

// ParseExcelSerial reports whether a raw cell value looks like an Excel
// date serial within the plausible window, and returns it if so.
func ParseExcelSerial(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	if n < MinExcelSerial || n > MaxExcelSerial {
		return 0, false
	}
	return n, true
}
