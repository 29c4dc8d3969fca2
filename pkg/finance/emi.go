package finance

import (
	"fmt"
	"math"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"go.uber.org/zap"
)

// MaxScheduleMonths bounds the length of a generated amortization schedule.
const MaxScheduleMonths = 100 * constants.MonthsPerYear

// EMIResult holds the outcome of an equated monthly installment calculation.
type EMIResult struct {
	MonthlyPayment float64
	TotalInterest  float64
	TotalPayment   float64
	Months         float64
	MonthlyRate    float64
}

// TenureMonths normalizes a tenure to months. Only the "years" unit is
// scaled; anything else is taken as a month count.
func TenureMonths(tenure float64, unit string) float64 {
	if unit == constants.TenureYears {
		return YearsToMonths(tenure)
	}
	return tenure
}

// CalculateMonthlyPayment calculates the installment that amortizes principal
// over the given number of months using the standard formula
// P·r·(1+r)^n / ((1+r)^n - 1).
func CalculateMonthlyPayment(principal, annualInterestRate, months float64) float64 {
	if months == 0 {
		return 0
	}
	periodicInterestRate := MonthlyRate(annualInterestRate)
	if periodicInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / months
	}

	growth := growthMinusOne(periodicInterestRate, months)
	switch {
	case growth == 0:
		return principal / months
	case math.IsInf(growth, 1):
		// Only interest is ever paid off.
		return principal * periodicInterestRate
	}
	return principal * (periodicInterestRate / growth) * (1 + growth)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * MonthlyRate(annualInterestRate)
}

// EMI evaluates the loan calculator.
func EMI(principal, annualInterestRate, months float64) EMIResult {
	payment := CalculateMonthlyPayment(principal, annualInterestRate, months)
	total := payment * months
	return EMIResult{
		MonthlyPayment: payment,
		TotalInterest:  total - principal,
		TotalPayment:   total,
		Months:         months,
		MonthlyRate:    MonthlyRate(annualInterestRate),
	}
}

// Installment holds the values for a given month of an amortization schedule.
type Installment struct {
	Month              int     `json:"month" yaml:"month"`
	Payment            float64 `json:"payment" yaml:"payment"`
	Principal          float64 `json:"principal" yaml:"principal"`
	Interest           float64 `json:"interest" yaml:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal" yaml:"remainingPrincipal"`
}

// YearSummary rolls a year of installments up into totals.
type YearSummary struct {
	Year             int     `json:"year" yaml:"year"`
	Payment          float64 `json:"payment" yaml:"payment"`
	Principal        float64 `json:"principal" yaml:"principal"`
	Interest         float64 `json:"interest" yaml:"interest"`
	ClosingPrincipal float64 `json:"closingPrincipal" yaml:"closingPrincipal"`
}

// ScheduleGenerator produces month-by-month amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate creates the amortization schedule for a loan. A fractional month
// count is rounded up; the final installment settles whatever principal is
// left.
func (g *ScheduleGenerator) Generate(principal, annualInterestRate, months float64) ([]Installment, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("principal must be positive, got %.2f", principal)
	}
	if months <= 0 {
		return nil, fmt.Errorf("tenure must be positive, got %.2f months", months)
	}
	count := int(math.Ceil(months))
	if count > MaxScheduleMonths {
		return nil, fmt.Errorf("tenure of %d months exceeds the %d month limit", count, MaxScheduleMonths)
	}

	monthlyPayment := CalculateMonthlyPayment(principal, annualInterestRate, months)
	schedule := make([]Installment, 0, count)
	remaining := principal

	for month := 1; month <= count; month++ {
		current := Installment{Month: month}
		current.Interest = CalculateInterestPayment(remaining, annualInterestRate)
		current.Principal = monthlyPayment - current.Interest

		if month == count || mathutil.Round(remaining-current.Principal) <= 0 {
			// We will get machine error otherwise so just settle the balance.
			current.Principal = remaining
			current.Payment = current.Principal + current.Interest
			current.RemainingPrincipal = 0
			schedule = append(schedule, current)
			if month < count {
				g.logger.Debug(fmt.Sprintf("loan settled early at month %d of %d", month, count),
					zap.String("op", "finance.Generate"),
				)
			}
			break
		}

		current.Payment = monthlyPayment
		current.RemainingPrincipal = remaining - current.Principal
		remaining = current.RemainingPrincipal
		schedule = append(schedule, current)
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "finance.Generate"),
		zap.Int("installments", len(schedule)),
		zap.Float64("monthlyPayment", monthlyPayment),
	)
	return schedule, nil
}

// SummarizeByYear rolls a schedule up into 12-month buckets.
func SummarizeByYear(schedule []Installment) []YearSummary {
	var summaries []YearSummary
	for _, installment := range schedule {
		year := (installment.Month-1)/constants.MonthsPerYear + 1
		if len(summaries) == 0 || summaries[len(summaries)-1].Year != year {
			summaries = append(summaries, YearSummary{Year: year})
		}
		current := &summaries[len(summaries)-1]
		current.Payment += installment.Payment
		current.Principal += installment.Principal
		current.Interest += installment.Interest
		current.ClosingPrincipal = installment.RemainingPrincipal
	}
	return summaries
}
