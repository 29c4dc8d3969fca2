package main

import (
	"fmt"

	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/output"
	"github.com/iwvelando/fincalc/pkg/validation"
	"github.com/spf13/cobra"
)

func newScheduleCommand(a *app) *cobra.Command {
	var (
		assignments  []string
		outputFormat string
		yearly       bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization schedule of an EMI loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := a.outputFormat(outputFormat)
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			values, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			_, schedule, err := calculator.EMI{}.Schedule(values, finance.NewScheduleGenerator(a.logger))
			if err != nil {
				return fmt.Errorf("failed to build schedule: %w", err)
			}
			return output.WriteSchedule(cmd.OutOrStdout(), format, schedule, yearly)
		},
	}

	cmd.Flags().StringArrayVar(&assignments, "set", nil, "EMI field value as field=value, e.g. emi-tenure=15 (repeatable)")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, json, csv, yaml")
	cmd.Flags().BoolVar(&yearly, "yearly", false, "roll installments up into one row per year")
	return cmd
}
