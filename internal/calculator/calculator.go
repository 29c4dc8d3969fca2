// Package calculator wires the finance formulas to form fields: each
// calculator parses raw field text, evaluates its formula, and returns three
// display values plus the data for its chart.
package calculator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iwvelando/fincalc/internal/chart"
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/input"
)

// ErrUnknownCalculator is returned when looking up an unregistered ID.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Chart colors shared by the calculators.
const (
	colorBlue  = "2563eb"
	colorRed   = "ef4444"
	colorSlate = "64748b"
	colorGreen = "059669"
)

// Values holds raw field text keyed by field ID, exactly as typed.
type Values map[string]string

// Output is one displayed result.
type Output struct {
	ElementID string  `json:"elementId" yaml:"elementId"`
	Label     string  `json:"label" yaml:"label"`
	Value     float64 `json:"value" yaml:"value"`
	Formatted string  `json:"formatted" yaml:"formatted"`
}

// Result is the outcome of one computation.
type Result struct {
	ID string `json:"id" yaml:"id"`
	// Inputs holds the numeric value each field resolved to after defaults.
	Inputs map[string]float64 `json:"inputs" yaml:"inputs"`
	// Options holds the resolved value of select fields.
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
	Outputs []Output          `json:"outputs" yaml:"outputs"`
	Chart   chart.Spec        `json:"chart" yaml:"chart"`
}

// Output returns the output displayed in elementID.
func (r Result) Output(elementID string) (Output, bool) {
	for _, output := range r.Outputs {
		if output.ElementID == elementID {
			return output, true
		}
	}
	return Output{}, false
}

// Calculator is one calculator panel.
type Calculator interface {
	ID() string
	Name() string
	Fields() []input.Field
	Compute(values Values) Result
}

// PanelID is the element ID of a calculator's panel.
func PanelID(id string) string { return id + "-calc" }

// NavID is the element ID of a calculator's navigation item.
func NavID(id string) string { return "nav-" + id }

// CanvasID is the element ID of a calculator's chart canvas.
func CanvasID(id string) string { return id + "-chart" }

// Set is a lookup of calculators by ID, kept in navigation order.
type Set struct {
	order []string
	byID  map[string]Calculator
}

// NewSet creates a set from the given calculators.
func NewSet(calculators ...Calculator) *Set {
	s := &Set{byID: make(map[string]Calculator, len(calculators))}
	for _, c := range calculators {
		if _, exists := s.byID[c.ID()]; !exists {
			s.order = append(s.order, c.ID())
		}
		s.byID[c.ID()] = c
	}
	return s
}

// Default returns the four built-in calculators.
func Default() *Set {
	return NewSet(EMI{}, SIP{}, FD{}, Savings{})
}

// Get returns the calculator registered under id.
func (s *Set) Get(id string) (Calculator, error) {
	c, ok := s.byID[id]
	if !ok {
		known := append([]string(nil), s.order...)
		sort.Strings(known)
		return nil, fmt.Errorf("%w %q (expected one of %v)", ErrUnknownCalculator, id, known)
	}
	return c, nil
}

// IDs returns calculator IDs in navigation order.
func (s *Set) IDs() []string {
	return append([]string(nil), s.order...)
}

// All returns the calculators in navigation order.
func (s *Set) All() []Calculator {
	all := make([]Calculator, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.byID[id])
	}
	return all
}

// resolve parses every numeric field of fields from values.
func resolve(fields []input.Field, values Values) map[string]float64 {
	resolved := make(map[string]float64, len(fields))
	for _, field := range fields {
		if field.Kind == input.Select {
			continue
		}
		resolved[field.ID] = field.Parse(values[field.ID])
	}
	return resolved
}

func currencyOutput(elementID, label string, value float64) Output {
	return Output{
		ElementID: elementID,
		Label:     label,
		Value:     value,
		Formatted: format.Currency(value),
	}
}

// split builds the two-value chart used by the doughnut and bar charts.
func split(kind chart.Type, title string, labels [2]string, values [2]float64, colors [2]string) chart.Spec {
	return chart.Spec{
		Type:   kind,
		Title:  title,
		Labels: labels[:],
		Datasets: []chart.Dataset{{
			Data:   values[:],
			Colors: colors[:],
		}},
		CurrencyAxis: kind != chart.Doughnut,
	}
}
