package finance

// SavingsResult holds the plan for reaching a savings target.
type SavingsResult struct {
	MonthlyPayment float64
	TotalInvested  float64
	InterestEarned float64
}

// SavingsMonthlyPayment solves the SIP future value for its payment:
// FV·r / [((1+r)^n - 1)·(1+r)]. A zero rate yields FV/n.
func SavingsMonthlyPayment(target, annualReturn, months float64) float64 {
	factor := annuityDueFactor(MonthlyRate(annualReturn), months)
	if factor == 0 {
		return 0
	}
	return target / factor
}

// SavingsGoal evaluates the savings goal calculator.
func SavingsGoal(target, years, annualReturn float64) SavingsResult {
	months := YearsToMonths(years)
	payment := SavingsMonthlyPayment(target, annualReturn, months)
	invested := payment * months
	return SavingsResult{
		MonthlyPayment: payment,
		TotalInvested:  invested,
		InterestEarned: target - invested,
	}
}
