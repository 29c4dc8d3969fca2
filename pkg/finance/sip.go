package finance

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
)

// MaxSeriesYears bounds the horizon of the SIP growth series.
const MaxSeriesYears = MaxScheduleMonths / constants.MonthsPerYear

// SIPResult holds the projection for a systematic investment plan.
type SIPResult struct {
	FutureValue   float64
	TotalInvested float64
	WealthGain    float64
}

// YearPoint is one horizon of the SIP growth chart.
type YearPoint struct {
	Year     int
	Invested float64
	Value    float64
}

// SIPFutureValue compounds a monthly contribution as an annuity-due:
// M·[((1+r)^n - 1)/r]·(1+r). A zero rate yields M·n.
func SIPFutureValue(monthlyInvestment, annualReturn, months float64) float64 {
	return monthlyInvestment * annuityDueFactor(MonthlyRate(annualReturn), months)
}

// SIP evaluates the investment calculator over the given number of years.
func SIP(monthlyInvestment, annualReturn, years float64) SIPResult {
	months := YearsToMonths(years)
	futureValue := SIPFutureValue(monthlyInvestment, annualReturn, months)
	invested := monthlyInvestment * months
	return SIPResult{
		FutureValue:   futureValue,
		TotalInvested: invested,
		WealthGain:    futureValue - invested,
	}
}

// SIPSeries evaluates the closed form independently at each whole-year
// horizon 1..floor(years), stopping at MaxSeriesYears. Points are not
// accumulated from one another.
func SIPSeries(monthlyInvestment, annualReturn, years float64) []YearPoint {
	horizon := math.Min(years, MaxSeriesYears)
	var points []YearPoint
	for year := 1; float64(year) <= horizon; year++ {
		months := float64(year * constants.MonthsPerYear)
		points = append(points, YearPoint{
			Year:     year,
			Invested: monthlyInvestment * months,
			Value:    SIPFutureValue(monthlyInvestment, annualReturn, months),
		})
	}
	return points
}
