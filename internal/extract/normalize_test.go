package extract

import (
	"testing"
	"time"
)

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"50k", 50_000},
		{"80k", 80_000},
		{"2m", 2_000_000},
		{"1.5m", 1_500_000},
		{"$1,200,000", 1_200_000},
		{"$95,000", 95_000},
		{"250000", 250_000},
		{"100 k", 100_000},
	}

	for _, tt := range tests {
		v, ok := normalizeValue(normCurrency, tt.raw, time.Time{})
		if !ok {
			t.Errorf("normalizeCurrency(%q) failed to parse", tt.raw)
			continue
		}
		if v.Number != tt.want {
			t.Errorf("normalizeCurrency(%q) = %v, want %v", tt.raw, v.Number, tt.want)
		}
	}

	if _, ok := normalizeValue(normCurrency, "a lot", time.Time{}); ok {
		t.Error("normalizeCurrency accepted non-numeric input")
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"5125550198", "(512) 555-0198"},
		{"512-555-0198", "(512) 555-0198"},
		{"(512) 555-0198", "(512) 555-0198"},
		{"512.555.0198", "(512) 555-0198"},
		// Not exactly ten digits: passes through untouched.
		{"555-0198", "555-0198"},
		{"+1 512 555 0198", "+1 512 555 0198"},
	}

	for _, tt := range tests {
		v, ok := normalizeValue(normPhone, tt.raw, time.Time{})
		if !ok {
			t.Errorf("normalizePhone(%q) failed", tt.raw)
			continue
		}
		if v.Text != tt.want {
			t.Errorf("normalizePhone(%q) = %q, want %q", tt.raw, v.Text, tt.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	v, ok := normalizeValue(normDate, "3/14/1982", now)
	if !ok || !v.Date.Equal(time.Date(1982, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("slash date = %v ok=%v", v.Date, ok)
	}

	v, ok = normalizeValue(normDate, "3-14-1982", now)
	if !ok || v.Date.Year() != 1982 {
		t.Errorf("dash date = %v ok=%v", v.Date, ok)
	}

	// Age phrase approximates to January 1 of current year minus age.
	v, ok = normalizeValue(normDate, "42 years old", now)
	if !ok {
		t.Fatal("age phrase failed to parse")
	}
	want := time.Date(1984, 1, 1, 0, 0, 0, 0, time.UTC)
	if !v.Date.Equal(want) {
		t.Errorf("age phrase date = %v, want %v", v.Date, want)
	}

	if _, ok := normalizeValue(normDate, "sometime in spring", now); ok {
		t.Error("normalizeDate accepted unparseable input")
	}
}

func TestNormalizeName(t *testing.T) {
	v, ok := normalizeValue(normName, "dan", time.Time{})
	if !ok || v.Text != "Dan" {
		t.Errorf("name normalization = %q ok=%v", v.Text, ok)
	}
	v, _ = normalizeValue(normName, "VAN DER BERG", time.Time{})
	if v.Text != "Van Der Berg" {
		t.Errorf("multi-word name = %q", v.Text)
	}
}

func TestNormalizeEmail(t *testing.T) {
	v, ok := normalizeValue(normEmail, " Dan@Example.COM ", time.Time{})
	if !ok || v.Text != "dan@example.com" {
		t.Errorf("email normalization = %q ok=%v", v.Text, ok)
	}
}
