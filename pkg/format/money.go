// Package format renders money, quantity, and date values for display.
//
// Separators and fraction digits are injected through Config rather than
// taken from the runtime locale, so output is identical across host
// environments.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Config holds the separators and precision used for money and quantity
// rendering.
type Config struct {
	// DecimalSeparator sits between the integer and fractional parts.
	DecimalSeparator string
	// ThousandsSeparator groups the integer part in blocks of three.
	ThousandsSeparator string
	// FractionDigits is the fixed precision used by Currency.
	FractionDigits int32
}

// Default is the en-GB rendering used by the order form pages.
var Default = Config{
	DecimalSeparator:   ".",
	ThousandsSeparator: ",",
	FractionDigits:     2,
}

// Currency renders d with exactly FractionDigits fractional digits and
// thousands grouping. Rounding is half away from zero, so 1981.028 becomes
// "1,981.03".
func (c Config) Currency(d decimal.Decimal) string {
	fixed := d.StringFixed(c.FractionDigits)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(c.group(intPart))
	if fracPart != "" {
		b.WriteString(c.DecimalSeparator)
		b.WriteString(fracPart)
	}
	return b.String()
}

// CurrencyOrZero renders d like Currency, or a zero amount ("0.00" with the
// default config) when d is null. Order totals arrive as nullable decimals
// and an absent total displays as zero.
func (c Config) CurrencyOrZero(d decimal.NullDecimal) string {
	if !d.Valid {
		return c.Currency(decimal.Zero)
	}
	return c.Currency(d.Decimal)
}

// Plain renders d preserving its source precision: "1.26" stays "1.26",
// "500.261" stays "500.261", "585.00" stays "585.00". Used for unit prices,
// where the fed-in precision is meaningful and must not be forced to two
// decimal places.
func (c Config) Plain(d decimal.Decimal) string {
	// String trims trailing zeros; the exponent still carries the parsed
	// scale, so render at that scale to keep "585.00" intact.
	s := d.String()
	if exp := d.Exponent(); exp < 0 {
		s = d.StringFixed(-exp)
	}
	if c.DecimalSeparator != "." {
		s = strings.Replace(s, ".", c.DecimalSeparator, 1)
	}
	return s
}

// Quantity renders n with thousands grouping.
func (c Config) Quantity(n int) string {
	d := decimal.NewFromInt(int64(n))
	s := d.String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if neg {
		return "-" + c.group(s)
	}
	return c.group(s)
}

// group inserts ThousandsSeparator into a bare digit string.
func (c Config) group(digits string) string {
	if len(digits) <= 3 || c.ThousandsSeparator == "" {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(c.ThousandsSeparator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
