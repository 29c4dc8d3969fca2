package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		def       float64
		allowZero bool
		expected  float64
	}{
		{"Plain integer", "500000", 1, false, 500000},
		{"Decimal", "8.5", 1, false, 8.5},
		{"Surrounding whitespace", "  12 ", 1, false, 12},
		{"Exponent form", "1e3", 1, false, 1000},
		{"Empty uses default", "", 42, false, 42},
		{"Whitespace only uses default", "   ", 42, false, 42},
		{"Non numeric uses default", "abc", 42, false, 42},
		{"Trailing garbage uses default", "12abc", 42, false, 42},
		{"NaN text uses default", "NaN", 42, true, 42},
		{"Infinity text uses default", "Inf", 42, true, 42},
		{"Overflow uses default", "1e400", 42, true, 42},
		{"Zero uses default when not allowed", "0", 42, false, 42},
		{"Zero kept when allowed", "0", 42, true, 0},
		{"Negative kept", "-5", 42, false, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Float(tt.text, tt.def, tt.allowZero))
		})
	}
}

func TestFieldParse(t *testing.T) {
	rate := Field{ID: "emi-rate", Kind: Rate, Default: 8.5}
	amount := Field{ID: "emi-amount", Kind: Amount, Default: 500000}
	tenure := Field{ID: "emi-tenure", Kind: Duration, Default: 20}

	assert.Equal(t, 0.0, rate.Parse("0"))
	assert.Equal(t, 8.5, rate.Parse("x"))
	assert.Equal(t, 500000.0, amount.Parse("0"))
	assert.Equal(t, 20.0, tenure.Parse(""))
	assert.Equal(t, 36.0, tenure.Parse("36"))
}

func TestChoice(t *testing.T) {
	assert.Equal(t, "years", Choice("years", "years", "years", "months"))
	assert.Equal(t, "months", Choice(" MONTHS ", "years", "years", "months"))
	assert.Equal(t, "years", Choice("weeks", "years", "years", "months"))
	assert.Equal(t, "years", Choice("", "years", "years", "months"))
}

func TestFieldOption(t *testing.T) {
	unit := Field{ID: "emi-tenure-type", Kind: Select, Options: []string{"years", "months"}, DefaultOption: "years"}

	assert.Equal(t, "months", unit.Option("months"))
	assert.Equal(t, "years", unit.Option("fortnights"))
	assert.Equal(t, "years", unit.DefaultText())
}

func TestFieldDefaultText(t *testing.T) {
	assert.Equal(t, "8.5", Field{Kind: Rate, Default: 8.5}.DefaultText())
	assert.Equal(t, "500000", Field{Kind: Amount, Default: 500000}.DefaultText())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "amount", Amount.String())
	assert.Equal(t, "duration", Duration.String())
	assert.Equal(t, "rate", Rate.String())
	assert.Equal(t, "select", Select.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
