package calculator

import (
	"github.com/iwvelando/fincalc/internal/chart"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/input"
)

// EMI is the loan installment calculator.
type EMI struct{}

var tenureUnitField = input.Field{
	ID:            constants.FieldEMITenureType,
	Label:         "Tenure Unit",
	Kind:          input.Select,
	Options:       []string{constants.TenureYears, constants.TenureMonths},
	DefaultOption: constants.DefaultEMITenureType,
}

var emiFields = []input.Field{
	{ID: constants.FieldEMIAmount, Label: "Loan Amount", Kind: input.Amount, Default: constants.DefaultEMIAmount},
	{ID: constants.FieldEMIRate, Label: "Interest Rate (% p.a.)", Kind: input.Rate, Default: constants.DefaultEMIRate},
	{ID: constants.FieldEMITenure, Label: "Loan Tenure", Kind: input.Duration, Default: constants.DefaultEMITenure},
	tenureUnitField,
}

// LoanTerms are the resolved EMI inputs.
type LoanTerms struct {
	Principal  float64
	AnnualRate float64
	Tenure     float64
	TenureUnit string
}

// Months returns the tenure normalized to months.
func (t LoanTerms) Months() float64 {
	return finance.TenureMonths(t.Tenure, t.TenureUnit)
}

// ID implements Calculator.
func (EMI) ID() string { return constants.CalculatorEMI }

// Name implements Calculator.
func (EMI) Name() string { return "EMI Calculator" }

// Fields implements Calculator.
func (EMI) Fields() []input.Field { return emiFields }

// Terms resolves the loan terms from raw values.
func (e EMI) Terms(values Values) LoanTerms {
	resolved := resolve(emiFields, values)
	return LoanTerms{
		Principal:  resolved[constants.FieldEMIAmount],
		AnnualRate: resolved[constants.FieldEMIRate],
		Tenure:     resolved[constants.FieldEMITenure],
		TenureUnit: tenureUnitField.Option(values[constants.FieldEMITenureType]),
	}
}

// Compute implements Calculator.
func (e EMI) Compute(values Values) Result {
	terms := e.Terms(values)
	result := finance.EMI(terms.Principal, terms.AnnualRate, terms.Months())

	return Result{
		ID: e.ID(),
		Inputs: map[string]float64{
			constants.FieldEMIAmount: terms.Principal,
			constants.FieldEMIRate:   terms.AnnualRate,
			constants.FieldEMITenure: terms.Tenure,
		},
		Options: map[string]string{
			constants.FieldEMITenureType: terms.TenureUnit,
		},
		Outputs: []Output{
			currencyOutput("emi-result", "Monthly EMI", result.MonthlyPayment),
			currencyOutput("emi-total-interest", "Total Interest", result.TotalInterest),
			currencyOutput("emi-total-payment", "Total Payment", result.TotalPayment),
		},
		Chart: split(chart.Doughnut, "Loan Breakdown",
			[2]string{"Principal Amount", "Total Interest"},
			[2]float64{terms.Principal, result.TotalInterest},
			[2]string{colorBlue, colorRed}),
	}
}

// Schedule builds the month-by-month amortization of the loan described by
// values. A nil generator logs nothing.
func (e EMI) Schedule(values Values, generator *finance.ScheduleGenerator) (LoanTerms, []finance.Installment, error) {
	if generator == nil {
		generator = finance.NewScheduleGenerator(nil)
	}
	terms := e.Terms(values)
	schedule, err := generator.Generate(terms.Principal, terms.AnnualRate, terms.Months())
	if err != nil {
		return terms, nil, err
	}
	return terms, schedule, nil
}
