package jalali

import (
	"testing"
	"time"
)

func TestNormalizeDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"۱۴۰۲/۰۵/۱۲", "1402/05/12"},
		{"١٣٩٩/١٢/٣٠", "1399/12/30"},
		{"1400/01/01", "1400/01/01"},
		{"mixed ۱2۳", "mixed 123"},
	}

	for _, tc := range cases {
		if got := NormalizeDigits(tc.in); got != tc.want {
			t.Errorf("NormalizeDigits(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseConvertsYearAtNowruzBoundary(t *testing.T) {
	// Before 21 Farvardin-equivalent boundary: previous Gregorian year.
	early, err := Parse("1402/01/15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if early.Year() != 2022 {
		t.Fatalf("expected year 2022, got %d", early.Year())
	}

	late, err := Parse("1402/06/10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if late.Year() != 2023 {
		t.Fatalf("expected year 2023, got %d", late.Year())
	}
}

func TestParsePersianDigits(t *testing.T) {
	got, err := Parse("۱۴۰۲/۰۵/۱۲")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2023, time.May, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{
		"",
		"1402-05-12",
		"1402/05",
		"1402/13/01",
		"1402/00/10",
		"1402/05/32",
		"abcd/05/12",
	} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected error, got nil", in)
		}
	}
}
