package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "₹0"},
		{"Below a thousand", 999, "₹999"},
		{"One thousand", 1000, "₹1,000"},
		{"EMI worked example", 4339.116166827671, "₹4,339"},
		{"Ten thousand", 10000, "₹10,000"},
		{"One lakh", 100000, "₹1,00,000"},
		{"FD maturity", 138041.97748630028, "₹1,38,042"},
		{"Ten lakh", 1000000, "₹10,00,000"},
		{"EMI total payment", 1041387.880038641, "₹10,41,388"},
		{"One crore", 10000000, "₹1,00,00,000"},
		{"Hundred crore", 1234567890, "₹1,23,45,67,890"},
		{"Midpoint rounds away from zero", 2.5, "₹3"},
		{"Negative", -1234.4, "-₹1,234"},
		{"Negative rounding to zero", -0.4, "₹0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Currency(tt.amount))
		})
	}
}

func TestCurrencyNonFinite(t *testing.T) {
	assert.Equal(t, "₹NaN", Currency(math.NaN()))
	assert.Equal(t, "₹∞", Currency(math.Inf(1)))
	assert.Equal(t, "₹-∞", Currency(math.Inf(-1)))
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "0"},
		{"Rounds half up", 599.5, "600"},
		{"Rounds down", 599.49, "599"},
		{"Lakh grouping", 561695.38, "5,61,695"},
		{"Crore grouping", 11616953.8, "1,16,16,954"},
		{"Negative", -100000, "-1,00,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Number(tt.amount))
		})
	}
}

func TestAxisCurrency(t *testing.T) {
	assert.Equal(t, "₹60,000", AxisCurrency(60000))
	assert.Equal(t, "₹-60,000", AxisCurrency(-60000))
}
