package decimal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

var hundred = decimal.NewFromInt(100)

// FromCents parses a fixed-width digit field holding an amount in cents
func FromCents(digits string) (decimal.Decimal, error) {
	if digits == "" {
		return Zero, fmt.Errorf("empty amount field")
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Zero, fmt.Errorf("amount field %q is not numeric", digits)
		}
	}
	cents, err := decimal.NewFromString(digits)
	if err != nil {
		return Zero, err
	}
	return cents.Div(hundred).Round(2), nil
}

// ToCents renders d as a zero-padded digit field of the given width
func ToCents(d decimal.Decimal, width int) (string, error) {
	if d.IsNegative() {
		return "", fmt.Errorf("negative amount %s", d)
	}
	cents := d.Mul(hundred).Round(0).String()
	if len(cents) > width {
		return "", fmt.Errorf("amount %s does not fit %d digits", d, width)
	}
	return strings.Repeat("0", width-len(cents)) + cents, nil
}

// FormatBRL renders d as Brazilian currency, e.g. R$ 1.234,56
func FormatBRL(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	return sign + "R$ " + b.String() + "," + frac
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// IsPositive returns true if decimal is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}
