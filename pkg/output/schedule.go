package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/format"
	"gopkg.in/yaml.v3"
)

// scheduleRow is one line of either a monthly or a yearly schedule.
type scheduleRow struct {
	Period    int     `json:"period" yaml:"period"`
	Payment   float64 `json:"payment" yaml:"payment"`
	Principal float64 `json:"principal" yaml:"principal"`
	Interest  float64 `json:"interest" yaml:"interest"`
	Balance   float64 `json:"balance" yaml:"balance"`
}

func monthlyRows(schedule []finance.Installment) []scheduleRow {
	rows := make([]scheduleRow, len(schedule))
	for i, installment := range schedule {
		rows[i] = scheduleRow{
			Period:    installment.Month,
			Payment:   installment.Payment,
			Principal: installment.Principal,
			Interest:  installment.Interest,
			Balance:   installment.RemainingPrincipal,
		}
	}
	return rows
}

func yearlyRows(summaries []finance.YearSummary) []scheduleRow {
	rows := make([]scheduleRow, len(summaries))
	for i, summary := range summaries {
		rows[i] = scheduleRow{
			Period:    summary.Year,
			Payment:   summary.Payment,
			Principal: summary.Principal,
			Interest:  summary.Interest,
			Balance:   summary.ClosingPrincipal,
		}
	}
	return rows
}

// WriteSchedule renders an amortization schedule. With yearly set the
// installments are rolled up into one row per loan year.
func WriteSchedule(w io.Writer, outputFormat string, schedule []finance.Installment, yearly bool) error {
	period := "Month"
	rows := monthlyRows(schedule)
	if yearly {
		period = "Year"
		rows = yearlyRows(finance.SummarizeByYear(schedule))
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		return prettySchedule(w, period, rows)
	case constants.OutputFormatCSV:
		return csvSchedule(w, period, rows)
	case constants.OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	case constants.OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		if err := encoder.Encode(rows); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

func prettySchedule(w io.Writer, period string, rows []scheduleRow) error {
	if _, err := fmt.Fprintf(w, "%-6s | %-12s | %-12s | %-12s | %s\n", period, "Payment", "Principal", "Interest", "Balance"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", "______ | ____________ | ____________ | ____________ | _______"); err != nil {
		return err
	}
	for _, row := range rows {
		_, err := fmt.Fprintf(w, "%-6d | %-12s | %-12s | %-12s | %s\n",
			row.Period,
			format.Currency(row.Payment),
			format.Currency(row.Principal),
			format.Currency(row.Interest),
			format.Currency(row.Balance),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func csvSchedule(w io.Writer, period string, rows []scheduleRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{period, "payment", "principal", "interest", "balance"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Period),
			fmt.Sprintf("%.2f", row.Payment),
			fmt.Sprintf("%.2f", row.Principal),
			fmt.Sprintf("%.2f", row.Interest),
			fmt.Sprintf("%.2f", row.Balance),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
