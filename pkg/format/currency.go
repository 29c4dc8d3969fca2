// Package format renders amounts the way the calculators display them: rupee
// symbol, no fractional digits, and Indian digit grouping (lakh/crore).
package format

import (
	"strings"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Currency returns a rupee string with Indian separators and no fractional
// digits (e.g., "₹12,34,568", "-₹1,234"). Non-finite amounts render as
// "₹NaN" or "₹∞".
func Currency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return constants.CurrencySymbol + nonFinite(amount)
	}
	sign, digits := roundedDigits(amount)
	return sign + constants.CurrencySymbol + groupIndian(digits)
}

// Number returns the amount rounded to the nearest integer with Indian
// separators and no currency symbol (e.g., "10,41,388").
func Number(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return nonFinite(amount)
	}
	sign, digits := roundedDigits(amount)
	return sign + groupIndian(digits)
}

// AxisCurrency is the chart axis label form: the symbol glued to Number.
func AxisCurrency(amount float64) string {
	return constants.CurrencySymbol + Number(amount)
}

func roundedDigits(amount float64) (string, string) {
	rounded := decimal.NewFromFloat(amount).Round(0)
	if rounded.IsZero() {
		return "", "0"
	}
	if rounded.IsNegative() {
		return "-", rounded.Abs().String()
	}
	return "", rounded.String()
}

// groupIndian inserts separators after the last three digits and then after
// every two: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var builder strings.Builder
	for i, digit := range head {
		if i > 0 && (len(head)-i)%2 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	builder.WriteByte(',')
	builder.WriteString(tail)
	return builder.String()
}

func nonFinite(amount float64) string {
	switch {
	case amount > 0:
		return "∞"
	case amount < 0:
		return "-∞"
	default:
		return "NaN"
	}
}
