package money

import (
	"errors"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormat_ARSProfile(t *testing.T) {
	formatter := NewARSFormatter()

	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{5, "$5"},
		{999, "$999"},
		{1000, "$1.000"},
		{110000, "$110.000"},
		{1234567, "$1.234.567"},
		{41426, "$41.426"},
		{-1500, "-$1.500"},
		{110000.4, "$110.000"},
		{110000.5, "$110.001"}, // half rounds away from zero
	}

	for _, tc := range cases {
		if got := formatter.Format(tc.amount); got != tc.want {
			t.Errorf("Format(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormat_TwoFractionDigits(t *testing.T) {
	formatter := NewFormatter("$", ".", ",", 2)

	cases := []struct {
		amount float64
		want   string
	}{
		{1234.5, "$1.234,50"},
		{0.125, "$0,13"},
		{1000000, "$1.000.000,00"},
	}

	for _, tc := range cases {
		if got := formatter.Format(tc.amount); got != tc.want {
			t.Errorf("Format(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

// Feature: quotation-platform, Property 7: Parse inverts Format for whole amounts
// Validates: Requirements 1.2
func TestProperty_ParseInvertsFormat(t *testing.T) {
	properties := gopter.NewProperties(nil)
	formatter := NewARSFormatter()

	properties.Property("parse(format(n)) == n for non-negative whole amounts", prop.ForAll(
		func(n int64) bool {
			formatted := formatter.Format(float64(n))
			parsed, err := formatter.Parse(formatted)
			if err != nil {
				return false
			}
			return parsed == float64(n)
		},
		gen.Int64Range(0, 1_000_000_000),
	))

	properties.TestingRun(t)
}

func TestParse(t *testing.T) {
	formatter := NewARSFormatter()

	cases := []struct {
		text string
		want float64
	}{
		{"$110.000", 110000},
		{"110.000", 110000},
		{"110000", 110000},
		{" $ 1.234.567 ", 1234567},
		{"$1.500,25", 1500.25},
		{"0", 0},
	}

	for _, tc := range cases {
		got, err := formatter.Parse(tc.text)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tc.text, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestParse_MalformedAmounts(t *testing.T) {
	formatter := NewARSFormatter()

	for _, text := range []string{"", "$", "abc", "$ ,.", "..."} {
		_, err := formatter.Parse(text)
		if !errors.Is(err, ErrMalformedAmount) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformedAmount", text, err)
		}
	}
}

func TestFormatInputDigits(t *testing.T) {
	formatter := NewARSFormatter()

	cases := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"abc", ""},
		{"$", ""},
		{"110000", "$110.000"},
		{"$1a1b0c000", "$110.000"},
		{"  9 9 9 ", "$999"},
		{"0", "$0"},
	}

	for _, tc := range cases {
		if got := formatter.FormatInputDigits(tc.raw); got != tc.want {
			t.Errorf("FormatInputDigits(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

// Feature: quotation-platform, Property 8: Digit normalization is idempotent
// Validates: Requirements 1.4
func TestProperty_FormatInputDigitsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)
	formatter := NewARSFormatter()

	properties.Property("re-normalizing formatted input does not change it", prop.ForAll(
		func(n int64) bool {
			once := formatter.FormatInputDigits(strconv.FormatInt(n, 10))
			twice := formatter.FormatInputDigits(once)
			return once == twice
		},
		gen.Int64Range(0, 1_000_000_000),
	))

	properties.TestingRun(t)
}
