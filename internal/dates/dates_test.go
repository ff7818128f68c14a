package dates

import (
	"testing"
)

func TestExcelSerialToISO(t *testing.T) {
	tests := []struct {
		name     string
		serial   float64
		expected string
		ok       bool
	}{
		{"known serial 45000", 45000, "2023-03-16", true},
		{"known serial 44927", 44927, "2023-01-02", true},
		{"window lower bound", 25000, "1968-06-12", true},
		{"below window", 24999, "", false},
		{"above window", 100001, "", false},
		{"zero", 0, "", false},
		{"negative", -5, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExcelSerialToISO(tt.serial)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSerialRoundTripStable(t *testing.T) {
	// Converting serial → ISO → display → ISO must be idempotent across
	// the plausible window.
	for _, serial := range []float64{25000, 30000, 45000, 60000, 99999} {
		iso, ok := ExcelSerialToISO(serial)
		if !ok {
			t.Fatalf("serial %.0f unexpectedly rejected", serial)
		}
		if got := ToISO(ToDisplay(iso), ""); got != iso {
			t.Errorf("serial %.0f: round trip %q -> %q", serial, iso, got)
		}
	}
}

func TestParseExcelSerial(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"45000", 45000, true},
		{" 45000 ", 45000, true},
		{"45000.5", 45000.5, true},
		{"42.50", 0, false}, // plain amount, not a date
		{"2024-01-15", 0, false},
		{"", 0, false},
		{"999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseExcelSerial(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("got %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestToISO(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		layout   string
		expected string
	}{
		{"display form", "15/01/2024", "", "2024-01-15"},
		{"already ISO", "2024-01-15", "", "2024-01-15"},
		{"slash year first", "2024/01/15", "", "2024-01-15"},
		{"textual month", "15 Jan 2024", "", "2024-01-15"},
		{"explicit layout", "01-15-2024", "01-02-2006", "2024-01-15"},
		{"invalid passes through", "not a date", "", "not a date"},
		{"explicit layout mismatch passes through", "15/01/2024", "2006-01-02", "15/01/2024"},
		{"empty passes through", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToISO(tt.value, tt.layout); got != tt.expected {
				t.Errorf("ToISO(%q, %q): got %q, want %q", tt.value, tt.layout, got, tt.expected)
			}
		})
	}
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2024-01-15", "15/01/2024"},
		{"1999-12-31", "31/12/1999"},
		{"garbage", "garbage"},
		{"15/01/2024", "15/01/2024"}, // already display form, unchanged
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToDisplay(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}
