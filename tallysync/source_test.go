package tallysync

import (
	"testing"
	"time"

	"github.com/rneelappa/vyaapari-nexus-sub000/utils"
)

func TestSourceRow_Str(t *testing.T) {
	row := SourceRow{
		"plain":   "Assets",
		"padded":  "  Cash-in-Hand  ",
		"bytes":   []byte("Sundry Debtors"),
		"number":  42,
		"nothing": nil,
	}
	cases := []struct {
		key      string
		expected string
	}{
		{"plain", "Assets"},
		{"padded", "Cash-in-Hand"},
		{"bytes", "Sundry Debtors"},
		{"number", "42"},
		{"nothing", ""},
		{"absent", ""},
	}
	for _, tc := range cases {
		if got := row.Str(tc.key); got != tc.expected {
			t.Fatalf("Str(%q) = %q, want %q", tc.key, got, tc.expected)
		}
	}
}

func TestSourceRow_StrPtr(t *testing.T) {
	row := SourceRow{"name": "HDFC Bank", "empty": "", "blank": "   "}
	if got := row.StrPtr("name"); got == nil || *got != "HDFC Bank" {
		t.Fatalf("StrPtr(name) = %v", got)
	}
	for _, key := range []string{"empty", "blank", "absent"} {
		if got := row.StrPtr(key); got != nil {
			t.Fatalf("StrPtr(%q) should be nil, got %q", key, *got)
		}
	}
}

func TestSourceRow_DecimalToleratesStringsAndDefaultsToZero(t *testing.T) {
	row := SourceRow{
		"asString": "12345.67",
		"asFloat":  98.5,
		"asInt":    7,
		"garbage":  "not-a-number",
		"empty":    "",
	}
	cases := []struct {
		key      string
		expected string
	}{
		{"asString", "12345.67"},
		{"asFloat", "98.5"},
		{"asInt", "7"},
		{"garbage", "0"},
		{"empty", "0"},
		{"absent", "0"},
	}
	for _, tc := range cases {
		if got := row.Decimal(tc.key).String(); got != tc.expected {
			t.Fatalf("Decimal(%q) = %s, want %s", tc.key, got, tc.expected)
		}
	}
}

func TestSourceRow_BoolNormalizesFlags(t *testing.T) {
	row := SourceRow{
		"native": true,
		"one":    "1",
		"zero":   0,
		"yes":    "Yes",
		"no":     "no",
	}
	cases := []struct {
		key      string
		expected *bool
	}{
		{"native", utils.NewTrue()},
		{"one", utils.NewTrue()},
		{"zero", utils.NewFalse()},
		{"yes", utils.NewTrue()},
		{"no", utils.NewFalse()},
		{"absent", nil},
	}
	for _, tc := range cases {
		got := row.Bool(tc.key)
		if (got == nil) != (tc.expected == nil) {
			t.Fatalf("Bool(%q) nil mismatch: got %v want %v", tc.key, got, tc.expected)
		}
		if got != nil && *got != *tc.expected {
			t.Fatalf("Bool(%q) = %v, want %v", tc.key, *got, *tc.expected)
		}
	}
}

func TestSourceRow_TimeParsesCommonLayouts(t *testing.T) {
	native := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	row := SourceRow{
		"native":  native,
		"dateStr": "2025-04-01",
		"rfc":     "2025-04-01T10:30:00Z",
		"garbage": "yesterday",
	}
	if got := row.Time("native"); got == nil || !got.Equal(native) {
		t.Fatalf("Time(native) = %v", got)
	}
	if got := row.Time("dateStr"); got == nil || got.Year() != 2025 || got.Month() != time.April {
		t.Fatalf("Time(dateStr) = %v", got)
	}
	if got := row.Time("rfc"); got == nil || got.Hour() != 10 {
		t.Fatalf("Time(rfc) = %v", got)
	}
	for _, key := range []string{"garbage", "absent"} {
		if got := row.Time(key); got != nil {
			t.Fatalf("Time(%q) should be nil, got %v", key, got)
		}
	}
}

func TestSourceRow_Int(t *testing.T) {
	row := SourceRow{"n": "15", "dec": "3.0", "bad": "x"}
	if got := row.Int("n"); got != 15 {
		t.Fatalf("Int(n) = %d", got)
	}
	if got := row.Int("dec"); got != 3 {
		t.Fatalf("Int(dec) = %d", got)
	}
	if got := row.Int("bad"); got != 0 {
		t.Fatalf("Int(bad) = %d", got)
	}
	if got := row.Int("absent"); got != 0 {
		t.Fatalf("Int(absent) = %d", got)
	}
}
