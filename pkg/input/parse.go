// Package input turns raw field text into numbers. Invalid text never
// produces an error; the field's default is substituted instead.
package input

import (
	"strconv"
	"strings"

	"github.com/iwvelando/fincalc/pkg/mathutil"
)

// Kind selects how zero is treated when parsing a field.
type Kind int

const (
	// Amount fields (principal, investment, target) fall back to their
	// default on zero.
	Amount Kind = iota
	// Duration fields (tenure, years) fall back to their default on zero.
	Duration
	// Rate fields accept zero; the formulas take their r -> 0 limit.
	Rate
	// Select fields pick one of a fixed set of options.
	Select
)

// String returns the kind name used in field listings.
func (k Kind) String() string {
	switch k {
	case Amount:
		return "amount"
	case Duration:
		return "duration"
	case Rate:
		return "rate"
	case Select:
		return "select"
	default:
		return "unknown"
	}
}

// Field describes an input and its fallback value. Numeric fields use
// Default; select fields use Options and DefaultOption.
type Field struct {
	ID            string
	Label         string
	Kind          Kind
	Default       float64
	Options       []string
	DefaultOption string
}

// Parse parses text for the given field, returning the field default when
// the text is empty, not a number, not finite, or zero for a non-rate field.
func (f Field) Parse(text string) float64 {
	return Float(text, f.Default, f.Kind == Rate)
}

// Option returns the option text names, or DefaultOption when text matches
// none of the field's options.
func (f Field) Option(text string) string {
	return Choice(text, f.DefaultOption, f.Options...)
}

// DefaultText is the text a pristine form shows for the field.
func (f Field) DefaultText() string {
	if f.Kind == Select {
		return f.DefaultOption
	}
	return strconv.FormatFloat(f.Default, 'f', -1, 64)
}

// Float parses text as a float64, substituting def on failure. When
// allowZero is false a parsed zero is also replaced by def.
func Float(text string, def float64, allowZero bool) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return def
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !mathutil.IsFinite(value) {
		return def
	}
	if value == 0 && !allowZero {
		return def
	}
	return value
}

// Choice returns text when it is one of the allowed options, otherwise def.
func Choice(text string, def string, options ...string) string {
	trimmed := strings.TrimSpace(text)
	for _, option := range options {
		if strings.EqualFold(trimmed, option) {
			return option
		}
	}
	return def
}
