// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/fincalc/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, supported := range constants.OutputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s",
		strings.Join(constants.OutputFormats, ", "), format)
}

// ValidateChartFormat checks if the chart image format is supported.
func ValidateChartFormat(format string) error {
	if format != constants.ChartFormatPNG && format != constants.ChartFormatSVG {
		return fmt.Errorf("expected chart format of %s or %s, got %s",
			constants.ChartFormatPNG, constants.ChartFormatSVG, format)
	}
	return nil
}

// ValidateChartSize checks that both chart dimensions are positive and not
// larger than maxDimension.
func ValidateChartSize(width, height, maxDimension int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", width, height)
	}
	if width > maxDimension || height > maxDimension {
		return fmt.Errorf("chart size %dx%d exceeds the %d pixel limit", width, height, maxDimension)
	}
	return nil
}

// ValidateCalculatorID checks that id names one of the calculators.
func ValidateCalculatorID(id string) error {
	for _, known := range constants.Calculators {
		if id == known {
			return nil
		}
	}
	return fmt.Errorf("expected calculator of %s, got %q",
		strings.Join(constants.Calculators, ", "), id)
}
