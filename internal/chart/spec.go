// Package chart describes calculator charts independently of how they are
// drawn, renders them with go-chart, and keeps at most one live chart per
// canvas.
package chart

import (
	"errors"
	"fmt"

	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// Type names the kind of chart a calculator asks for.
type Type string

// Chart types used by the calculators.
const (
	Doughnut Type = "doughnut"
	Line     Type = "line"
	Bar      Type = "bar"
)

var (
	// ErrUnsupportedType is returned for chart types the renderer cannot draw.
	ErrUnsupportedType = errors.New("unsupported chart type")

	// ErrEmptyChart is returned when a spec has nothing to draw.
	ErrEmptyChart = errors.New("chart has no positive values to draw")

	// ErrNonFinite is returned when a dataset holds an infinite or NaN value.
	ErrNonFinite = errors.New("chart value is not finite")

	// ErrUnknownHandle is returned when destroying a chart the library does
	// not own.
	ErrUnknownHandle = errors.New("unknown chart handle")
)

// Dataset is one series of values. Slices and bars take one color per value;
// a line takes the first color.
type Dataset struct {
	Label  string    `json:"label" yaml:"label"`
	Data   []float64 `json:"data" yaml:"data"`
	Colors []string  `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// Spec is the chart-ready data a calculator produces.
type Spec struct {
	Type     Type      `json:"type" yaml:"type"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Labels   []string  `json:"labels" yaml:"labels"`
	Datasets []Dataset `json:"datasets" yaml:"datasets"`
	// CurrencyAxis marks a value axis whose ticks are rupee amounts.
	CurrencyAxis bool `json:"currencyAxis,omitempty" yaml:"currencyAxis,omitempty"`
}

// Validate checks the spec has a known type and one finite value per label in
// every dataset.
func (s Spec) Validate() error {
	switch s.Type {
	case Doughnut, Line, Bar:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedType, s.Type)
	}
	if len(s.Datasets) == 0 {
		return fmt.Errorf("%s chart: %w", s.Type, ErrEmptyChart)
	}
	for _, dataset := range s.Datasets {
		if len(dataset.Data) != len(s.Labels) {
			return fmt.Errorf("%s chart dataset %q has %d values for %d labels",
				s.Type, dataset.Label, len(dataset.Data), len(s.Labels))
		}
		for i, value := range dataset.Data {
			if !mathutil.IsFinite(value) {
				return fmt.Errorf("%s chart dataset %q value %d: %w", s.Type, dataset.Label, i, ErrNonFinite)
			}
		}
	}
	return nil
}
