package finance

import (
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
)

// FDResult holds the outcome of a fixed deposit calculation.
type FDResult struct {
	MaturityValue  float64
	InterestEarned float64
	Principal      float64
}

// FDMaturity compounds principal quarterly: P·(1 + r/4)^(4Y).
func FDMaturity(principal, annualRate, years float64) float64 {
	perPeriod := percentToDecimal(annualRate) / constants.QuarterlyCompounding
	return principal * math.Pow(1+perPeriod, constants.QuarterlyCompounding*years)
}

// FD evaluates the fixed deposit calculator.
func FD(principal, annualRate, years float64) FDResult {
	maturity := FDMaturity(principal, annualRate, years)
	return FDResult{
		MaturityValue:  maturity,
		InterestEarned: maturity - principal,
		Principal:      principal,
	}
}
