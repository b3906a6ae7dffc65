package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedAmount is returned by Parse when the input contains no numeric
// content after stripping currency symbols and separators. Callers treat it as
// "field not yet filled" rather than a hard failure.
var ErrMalformedAmount = errors.New("amount has no numeric content")

// Formatter converts between numeric amounts and their locale-formatted
// textual representation. The zero fraction-digit profile matches how the
// business displays Argentine pesos: "$110.000".
type Formatter struct {
	Symbol           string
	GroupSeparator   string
	DecimalSeparator string
	FractionDigits   int
}

// NewFormatter creates a Formatter with an explicit locale profile.
func NewFormatter(symbol, groupSeparator, decimalSeparator string, fractionDigits int) *Formatter {
	return &Formatter{
		Symbol:           symbol,
		GroupSeparator:   groupSeparator,
		DecimalSeparator: decimalSeparator,
		FractionDigits:   fractionDigits,
	}
}

// NewARSFormatter creates a Formatter with the es-AR / ARS profile used by
// the quotation messages.
func NewARSFormatter() *Formatter {
	return NewFormatter("$", ".", ",", 0)
}

// Format renders an amount as a currency string, rounding to the configured
// minor-unit precision (half away from zero, matching Intl.NumberFormat) and
// inserting grouping separators.
func (f *Formatter) Format(amount float64) string {
	return f.formatDecimal(decimal.NewFromFloat(amount))
}

// FormatInputDigits normalizes raw keystroke input: every non-digit character
// is dropped, the remaining digits are read as whole currency units and
// re-formatted. Input without digits yields an empty string, not "$0".
func (f *Formatter) FormatInputDigits(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}

	d, err := decimal.NewFromString(digits.String())
	if err != nil {
		return ""
	}
	return f.formatDecimal(d)
}

// Parse converts a formatted currency string back to a number. It is the
// exact left inverse of Format for non-negative integer amounts.
func (f *Formatter) Parse(text string) (float64, error) {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, f.Symbol, "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, f.GroupSeparator, "")
	s = strings.ReplaceAll(s, f.DecimalSeparator, ".")

	if !strings.ContainsAny(s, "0123456789") {
		return 0, ErrMalformedAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, text)
	}

	return d.InexactFloat64(), nil
}

func (f *Formatter) formatDecimal(d decimal.Decimal) string {
	d = d.Round(int32(f.FractionDigits))

	fixed := d.StringFixed(int32(f.FractionDigits))

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart := fixed
	fracPart := ""
	if idx := strings.IndexByte(fixed, '.'); idx >= 0 {
		intPart = fixed[:idx]
		fracPart = fixed[idx+1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(f.Symbol)

	// Insert grouping separators every three digits from the right.
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.GroupSeparator)
		}
		b.WriteRune(r)
	}

	if fracPart != "" {
		b.WriteString(f.DecimalSeparator)
		b.WriteString(fracPart)
	}

	return b.String()
}
