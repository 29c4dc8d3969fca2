package calculator

import (
	"fmt"

	"github.com/iwvelando/fincalc/internal/chart"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/input"
)

// SIP is the systematic investment plan calculator.
type SIP struct{}

var sipFields = []input.Field{
	{ID: constants.FieldSIPAmount, Label: "Monthly Investment", Kind: input.Amount, Default: constants.DefaultSIPAmount},
	{ID: constants.FieldSIPRate, Label: "Expected Return (% p.a.)", Kind: input.Rate, Default: constants.DefaultSIPRate},
	{ID: constants.FieldSIPPeriod, Label: "Investment Period (years)", Kind: input.Duration, Default: constants.DefaultSIPPeriod},
}

// ID implements Calculator.
func (SIP) ID() string { return constants.CalculatorSIP }

// Name implements Calculator.
func (SIP) Name() string { return "SIP Calculator" }

// Fields implements Calculator.
func (SIP) Fields() []input.Field { return sipFields }

// Compute implements Calculator.
func (s SIP) Compute(values Values) Result {
	resolved := resolve(sipFields, values)
	monthly := resolved[constants.FieldSIPAmount]
	rate := resolved[constants.FieldSIPRate]
	years := resolved[constants.FieldSIPPeriod]

	result := finance.SIP(monthly, rate, years)

	return Result{
		ID:     s.ID(),
		Inputs: resolved,
		Outputs: []Output{
			currencyOutput("sip-final-value", "Future Value", result.FutureValue),
			currencyOutput("sip-invested", "Total Invested", result.TotalInvested),
			currencyOutput("sip-gain", "Wealth Gain", result.WealthGain),
		},
		Chart: growthChart(finance.SIPSeries(monthly, rate, years)),
	}
}

func growthChart(points []finance.YearPoint) chart.Spec {
	labels := make([]string, len(points))
	invested := make([]float64, len(points))
	value := make([]float64, len(points))
	for i, point := range points {
		labels[i] = fmt.Sprintf("Year %d", point.Year)
		invested[i] = point.Invested
		value[i] = point.Value
	}

	return chart.Spec{
		Type:   chart.Line,
		Title:  "Investment Growth",
		Labels: labels,
		Datasets: []chart.Dataset{
			{Label: "Amount Invested", Data: invested, Colors: []string{colorSlate}},
			{Label: "Future Value", Data: value, Colors: []string{colorGreen}},
		},
		CurrencyAxis: true,
	}
}
