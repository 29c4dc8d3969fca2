// Package output provides utilities for formatting and displaying calculator results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/input"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Write renders result in the given output format.
func Write(w io.Writer, outputFormat string, c calculator.Calculator, result calculator.Result) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, c, result)
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	case constants.OutputFormatCSV:
		return CsvFormat(w, c, result)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, result)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, c calculator.Calculator, result calculator.Result) error {
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprintf(w, "--- %s ---\n", c.Name()); err != nil {
		return err
	}
	for _, field := range c.Fields() {
		if _, err := fmt.Fprintf(w, "%-24s | %s\n", field.Label, inputText(p, field, result)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s\n", "________________________ | _____________"); err != nil {
		return err
	}
	for _, out := range result.Outputs {
		if _, err := fmt.Fprintf(w, "%-24s | %s\n", out.Label, out.Formatted); err != nil {
			return err
		}
	}
	return nil
}

func inputText(p *message.Printer, field input.Field, result calculator.Result) string {
	if field.Kind == input.Select {
		return result.Options[field.ID]
	}
	value := result.Inputs[field.ID]
	switch field.Kind {
	case input.Amount:
		return format.Currency(value)
	case input.Rate:
		return p.Sprintf("%.2f%%", value)
	default:
		return p.Sprintf("%v", value)
	}
}

// JSONFormat outputs the full result, chart data included, as indented JSON.
func JSONFormat(w io.Writer, result calculator.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// YAMLFormat outputs the full result as YAML.
func YAMLFormat(w io.Writer, result calculator.Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return err
	}
	return encoder.Close()
}

// CsvFormat outputs in comma-separated value format: every resolved input
// followed by every output.
func CsvFormat(w io.Writer, c calculator.Calculator, result calculator.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"kind", "id", "label", "value", "formatted"}); err != nil {
		return err
	}

	for _, field := range c.Fields() {
		var value string
		if field.Kind == input.Select {
			value = result.Options[field.ID]
		} else {
			value = strconv.FormatFloat(result.Inputs[field.ID], 'f', -1, 64)
		}
		if err := writer.Write([]string{"input", field.ID, field.Label, value, ""}); err != nil {
			return err
		}
	}

	for _, out := range result.Outputs {
		row := []string{"output", out.ElementID, out.Label, fmt.Sprintf("%.2f", out.Value), out.Formatted}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
