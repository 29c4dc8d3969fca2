// Package dashboard holds the state of the calculator dashboard: which
// calculator is active, the current field text of every calculator, and the
// live chart of each. Input changes recompute the owning calculator whether
// or not it is the active one.
package dashboard

import (
	"fmt"

	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/internal/chart"
	"go.uber.org/zap"
)

// Observer is called with the new text of a field after it changes.
type Observer func(value string) error

// Dashboard dispatches input events and page switches to the calculators.
// It is not safe for concurrent use; events are expected one at a time.
type Dashboard struct {
	calculators *calculator.Set
	display     Display
	charts      *chart.Registry
	logger      *zap.Logger

	active    string
	inputs    map[string]calculator.Values
	results   map[string]calculator.Result
	observers map[string][]Observer
}

// New creates a dashboard over the given calculators. Every field of every
// calculator gets an observer that recomputes its calculator.
func New(calculators *calculator.Set, display Display, library chart.Library, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dashboard{
		calculators: calculators,
		display:     display,
		charts:      chart.NewRegistry(library, logger),
		logger:      logger,
		inputs:      make(map[string]calculator.Values),
		results:     make(map[string]calculator.Result),
		observers:   make(map[string][]Observer),
	}

	for _, c := range calculators.All() {
		id := c.ID()
		d.inputs[id] = make(calculator.Values)
		for _, field := range c.Fields() {
			d.observers[observerKey(id, field.ID)] = []Observer{
				func(string) error {
					_, err := d.Recompute(id)
					return err
				},
			}
		}
	}
	return d
}

func observerKey(calculatorID, fieldID string) string {
	return calculatorID + "/" + fieldID
}

// Init computes every calculator once, in navigation order.
func (d *Dashboard) Init() error {
	for _, id := range d.calculators.IDs() {
		if _, err := d.Recompute(id); err != nil {
			return err
		}
	}
	return nil
}

// Active returns the active calculator ID, or "" before the first switch.
func (d *Dashboard) Active() string {
	return d.active
}

// ShowDashboard leaves the landing page and switches to calculatorID.
func (d *Dashboard) ShowDashboard(calculatorID string) error {
	if _, err := d.calculators.Get(calculatorID); err != nil {
		return err
	}
	d.display.SetActive(LandingPage, false)
	d.display.SetActive(DashboardPage, true)
	return d.Switch(calculatorID)
}

// ShowLanding returns to the landing page. The active calculator is kept.
func (d *Dashboard) ShowLanding() {
	d.display.SetActive(DashboardPage, false)
	d.display.SetActive(LandingPage, true)
}

// Switch makes calculatorID the only active panel and navigation item, then
// recomputes and redisplays it.
func (d *Dashboard) Switch(calculatorID string) error {
	if _, err := d.calculators.Get(calculatorID); err != nil {
		return err
	}

	for _, id := range d.calculators.IDs() {
		d.display.SetActive(calculator.PanelID(id), false)
		d.display.SetActive(calculator.NavID(id), false)
	}
	d.display.SetActive(calculator.PanelID(calculatorID), true)
	d.display.SetActive(calculator.NavID(calculatorID), true)
	d.active = calculatorID

	d.logger.Debug("switched calculator",
		zap.String("op", "dashboard.Switch"),
		zap.String("calculator", calculatorID),
	)

	_, err := d.Recompute(calculatorID)
	return err
}

// SetInput records new text for a field and notifies its observers.
func (d *Dashboard) SetInput(calculatorID, fieldID, value string) error {
	key := observerKey(calculatorID, fieldID)
	observers, ok := d.observers[key]
	if !ok {
		if _, err := d.calculators.Get(calculatorID); err != nil {
			return err
		}
		return fmt.Errorf("calculator %s has no field %q", calculatorID, fieldID)
	}

	d.inputs[calculatorID][fieldID] = value
	for _, observer := range observers {
		if err := observer(value); err != nil {
			return err
		}
	}
	return nil
}

// Observe registers an extra observer on a field. Observers run in
// registration order after the built-in recompute.
func (d *Dashboard) Observe(calculatorID, fieldID string, observer Observer) error {
	key := observerKey(calculatorID, fieldID)
	if _, ok := d.observers[key]; !ok {
		if _, err := d.calculators.Get(calculatorID); err != nil {
			return err
		}
		return fmt.Errorf("calculator %s has no field %q", calculatorID, fieldID)
	}
	d.observers[key] = append(d.observers[key], observer)
	return nil
}

// Inputs returns a copy of the current field text of a calculator.
func (d *Dashboard) Inputs(calculatorID string) calculator.Values {
	values := make(calculator.Values, len(d.inputs[calculatorID]))
	for k, v := range d.inputs[calculatorID] {
		values[k] = v
	}
	return values
}

// Recompute evaluates calculatorID with its current inputs, writes the
// formatted outputs to the display, and replaces its chart. A chart that
// cannot be drawn is logged and leaves the canvas empty; it does not fail the
// computation.
func (d *Dashboard) Recompute(calculatorID string) (calculator.Result, error) {
	c, err := d.calculators.Get(calculatorID)
	if err != nil {
		return calculator.Result{}, err
	}

	result := c.Compute(d.inputs[calculatorID])
	for _, output := range result.Outputs {
		d.display.SetText(output.ElementID, output.Formatted)
	}
	d.results[calculatorID] = result

	if _, err := d.charts.Replace(calculator.CanvasID(calculatorID), result.Chart); err != nil {
		d.logger.Warn("failed to draw chart",
			zap.String("op", "dashboard.Recompute"),
			zap.String("calculator", calculatorID),
			zap.Error(err),
		)
	}

	d.logger.Debug("recomputed calculator",
		zap.String("op", "dashboard.Recompute"),
		zap.String("calculator", calculatorID),
		zap.Bool("active", calculatorID == d.active),
	)
	return result, nil
}

// Result returns the most recent result of a calculator.
func (d *Dashboard) Result(calculatorID string) (calculator.Result, bool) {
	result, ok := d.results[calculatorID]
	return result, ok
}

// Chart returns the live chart of a calculator.
func (d *Dashboard) Chart(calculatorID string) (chart.Handle, bool) {
	return d.charts.Get(calculator.CanvasID(calculatorID))
}

// LiveCharts reports how many charts are currently live.
func (d *Dashboard) LiveCharts() int {
	return d.charts.Len()
}

// Close destroys every live chart.
func (d *Dashboard) Close() error {
	return d.charts.Close()
}
