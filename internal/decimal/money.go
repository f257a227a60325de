// Package decimal wraps shopspring/decimal with the monetary conventions used
// across the invoicing pipeline: two decimal places and an absolute 0.01
// tolerance when comparing stated vs computed totals.
package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Tolerance is the absolute slack allowed when comparing monetary totals.
var Tolerance = decimal.New(1, -2)

// FromInt creates decimal from int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromFloat creates decimal from float with rounding to 2 places
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FromString parses decimal from string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// Mul multiplies two decimals, rounds to 2 places
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b).Round(2)
}

// CalculateTax computes: amount * (ratePercent/100), rounded to 2 places
func CalculateTax(amount, ratePercent decimal.Decimal) decimal.Decimal {
	if ratePercent.IsZero() {
		return Zero
	}
	hundred := decimal.NewFromInt(100)
	return amount.Mul(ratePercent).Div(hundred).Round(2)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// WithinTolerance reports whether |a - b| <= Tolerance
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// IsPositive returns true if decimal is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}

// Format renders a monetary amount with exactly two decimal digits
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatRate renders a percentage as a plain decimal string, no percent sign
func FormatRate(d decimal.Decimal) string {
	return d.String()
}
