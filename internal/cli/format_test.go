package cli

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{-1234.56, "-$1,234.56"},
		{999, "$999.00"},
		{1000000, "$1,000,000.00"},
		{0.005, "$0.01"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(250); got != "+$250.00" {
		t.Errorf("FormatPnL(250) = %q", got)
	}
	if got := FormatPnL(-250); got != "-$250.00" {
		t.Errorf("FormatPnL(-250) = %q", got)
	}
	if got := FormatPnL(0); got != "$0.00" {
		t.Errorf("FormatPnL(0) = %q", got)
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2026-03-02") {
		t.Error("valid date rejected")
	}
	for _, bad := range []string{"2026-3-2", "03/02/2026", "2026-13-01", "yesterday", ""} {
		if ValidDate(bad) {
			t.Errorf("ValidDate(%q) = true", bad)
		}
	}
}

func TestValidClockTime(t *testing.T) {
	if !ValidClockTime("09:45") || !ValidClockTime("23:59") {
		t.Error("valid time rejected")
	}
	for _, bad := range []string{"9:45am", "24:00", "0945", ""} {
		if ValidClockTime(bad) {
			t.Errorf("ValidClockTime(%q) = true", bad)
		}
	}
}

func TestShortID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3f8a2c1d-9b4e-4f6a-8d2c-1e7b5a9c3d0f", "3f8a2c1d"},
		{"t1", "t1"}, // imported CSV rows keep caller-supplied ids
		{"exactly8", "exactly8"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ShortID(tc.in); got != tc.want {
			t.Errorf("ShortID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString = %q", got)
	}
	if got := TruncateString("a longer note about a trade", 10); got != "a longe..." {
		t.Errorf("TruncateString = %q", got)
	}
}
