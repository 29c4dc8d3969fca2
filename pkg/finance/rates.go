// Package finance implements the closed-form time-value-of-money formulas
// behind the calculators. Every function is pure; rates are annual
// percentages as the user types them (8.5 means 8.5%).
package finance

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
)

func percentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// MonthlyRate converts an annual percentage into the monthly rate fraction
// r = R/12/100.
func MonthlyRate(annualPercent float64) float64 {
	return percentToDecimal(annualPercent) / constants.MonthsPerYear
}

// YearsToMonths converts a duration in years to a month count.
func YearsToMonths(years float64) float64 {
	return years * constants.MonthsPerYear
}

// growthFactor returns (1+r)^n.
func growthFactor(rate, periods float64) float64 {
	return math.Pow(1+rate, periods)
}

// growthMinusOne returns (1+r)^n - 1 without the cancellation that
// growthFactor(r, n) - 1 suffers once 1+r rounds to 1.
func growthMinusOne(rate, periods float64) float64 {
	if rate <= -1 {
		return growthFactor(rate, periods) - 1
	}
	return math.Expm1(periods * math.Log1p(rate))
}

// annuityDueFactor returns [((1+r)^n - 1)/r]·(1+r), the future value of n
// payments of one made at the start of each period. When r is zero, or too
// small to move (1+r)^n off one, the limit n is used.
func annuityDueFactor(rate, periods float64) float64 {
	if rate == 0 {
		return periods
	}
	growth := growthMinusOne(rate, periods)
	if growth == 0 {
		return periods
	}
	return growth / rate * (1 + rate)
}
