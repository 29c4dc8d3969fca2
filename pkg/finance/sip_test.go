package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSIPDefaultScenario(t *testing.T) {
	result := SIP(5000, 12, 10)

	assert.InDelta(t, 1161695.3817597027, result.FutureValue, 1e-4)
	assert.Equal(t, 600000.0, result.TotalInvested)
	assert.InDelta(t, 561695.3817597027, result.WealthGain, 1e-4)
}

func TestSIPZeroRate(t *testing.T) {
	result := SIP(5000, 0, 10)

	assert.Equal(t, 600000.0, result.FutureValue)
	assert.Equal(t, 600000.0, result.TotalInvested)
	assert.Equal(t, 0.0, result.WealthGain)
}

func TestSIPYearOverYear(t *testing.T) {
	tests := []struct {
		name    string
		monthly float64
		rate    float64
		years   float64
	}{
		{"Default plan", 5000, 12, 10},
		{"Low return", 2500, 4, 5},
		{"Long horizon", 10000, 15, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MonthlyRate(tt.rate)
			current := SIP(tt.monthly, tt.rate, tt.years).FutureValue
			previous := SIP(tt.monthly, tt.rate, tt.years-1).FutureValue
			lastYear := current - previous*math.Pow(1+r, 12)

			// The final year's twelve contributions, each compounding for
			// between one and twelve months.
			assert.Greater(t, lastYear, 12*tt.monthly)
			assert.Less(t, lastYear, 12*tt.monthly*math.Pow(1+r, 12))
			assert.InDelta(t, SIP(tt.monthly, tt.rate, 1).FutureValue, lastYear, 1e-6*current)
		})
	}
}

func TestSIPSeries(t *testing.T) {
	points := SIPSeries(5000, 12, 10)
	require.Len(t, points, 10)

	for i, point := range points {
		year := i + 1
		assert.Equal(t, year, point.Year)
		assert.Equal(t, 5000*float64(year*12), point.Invested)
		assert.Equal(t, SIP(5000, 12, float64(year)).FutureValue, point.Value)
	}
	assert.Equal(t, SIP(5000, 12, 10).FutureValue, points[9].Value)
}

func TestSIPSeriesFractionalYears(t *testing.T) {
	assert.Len(t, SIPSeries(5000, 12, 2.5), 2)
	assert.Empty(t, SIPSeries(5000, 12, 0.5))
	assert.Empty(t, SIPSeries(5000, 12, -3))
}

func TestSIPSeriesZeroRate(t *testing.T) {
	for _, point := range SIPSeries(1000, 0, 3) {
		assert.Equal(t, point.Invested, point.Value)
	}
}

func TestSIPSeriesCapsHorizon(t *testing.T) {
	points := SIPSeries(5000, 0, 1e9)
	require.Len(t, points, MaxSeriesYears)
	assert.Equal(t, MaxSeriesYears, points[len(points)-1].Year)

	assert.Len(t, SIPSeries(5000, 12, MaxSeriesYears+0.5), MaxSeriesYears)
	assert.Len(t, SIPSeries(5000, 12, 40), 40)
}
