package calculator

import (
	"github.com/iwvelando/fincalc/internal/chart"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/input"
)

// FD is the fixed deposit calculator.
type FD struct{}

var fdFields = []input.Field{
	{ID: constants.FieldFDPrincipal, Label: "Deposit Amount", Kind: input.Amount, Default: constants.DefaultFDPrincipal},
	{ID: constants.FieldFDRate, Label: "Interest Rate (% p.a.)", Kind: input.Rate, Default: constants.DefaultFDRate},
	{ID: constants.FieldFDPeriod, Label: "Deposit Period (years)", Kind: input.Duration, Default: constants.DefaultFDPeriod},
}

// ID implements Calculator.
func (FD) ID() string { return constants.CalculatorFD }

// Name implements Calculator.
func (FD) Name() string { return "FD Calculator" }

// Fields implements Calculator.
func (FD) Fields() []input.Field { return fdFields }

// Compute implements Calculator.
func (f FD) Compute(values Values) Result {
	resolved := resolve(fdFields, values)
	result := finance.FD(
		resolved[constants.FieldFDPrincipal],
		resolved[constants.FieldFDRate],
		resolved[constants.FieldFDPeriod],
	)

	return Result{
		ID:     f.ID(),
		Inputs: resolved,
		Outputs: []Output{
			currencyOutput("fd-maturity", "Maturity Value", result.MaturityValue),
			currencyOutput("fd-interest", "Interest Earned", result.InterestEarned),
			currencyOutput("fd-principal-display", "Principal Amount", result.Principal),
		},
		Chart: split(chart.Bar, "Deposit Growth",
			[2]string{"Principal", "Interest Earned"},
			[2]float64{result.Principal, result.InterestEarned},
			[2]string{colorBlue, colorGreen}),
	}
}
