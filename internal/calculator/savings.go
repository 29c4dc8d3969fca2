package calculator

import (
	"github.com/iwvelando/fincalc/internal/chart"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/input"
)

// Savings is the savings goal calculator.
type Savings struct{}

var savingsFields = []input.Field{
	{ID: constants.FieldSavingsTarget, Label: "Target Amount", Kind: input.Amount, Default: constants.DefaultSavingsTarget},
	{ID: constants.FieldSavingsPeriod, Label: "Time Period (years)", Kind: input.Duration, Default: constants.DefaultSavingsPeriod},
	{ID: constants.FieldSavingsRate, Label: "Expected Return (% p.a.)", Kind: input.Rate, Default: constants.DefaultSavingsRate},
}

// ID implements Calculator.
func (Savings) ID() string { return constants.CalculatorSavings }

// Name implements Calculator.
func (Savings) Name() string { return "Savings Goal Calculator" }

// Fields implements Calculator.
func (Savings) Fields() []input.Field { return savingsFields }

// Compute implements Calculator.
func (s Savings) Compute(values Values) Result {
	resolved := resolve(savingsFields, values)
	result := finance.SavingsGoal(
		resolved[constants.FieldSavingsTarget],
		resolved[constants.FieldSavingsPeriod],
		resolved[constants.FieldSavingsRate],
	)

	return Result{
		ID:     s.ID(),
		Inputs: resolved,
		Outputs: []Output{
			currencyOutput("savings-monthly", "Monthly Investment Needed", result.MonthlyPayment),
			currencyOutput("savings-invested", "Total Investment", result.TotalInvested),
			currencyOutput("savings-interest", "Interest Earned", result.InterestEarned),
		},
		Chart: split(chart.Doughnut, "Goal Breakdown",
			[2]string{"Amount Invested", "Interest Earned"},
			[2]float64{result.TotalInvested, result.InterestEarned},
			[2]string{colorBlue, colorGreen}),
	}
}
