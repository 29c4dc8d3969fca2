package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/internal/chart"
	"github.com/iwvelando/fincalc/internal/dashboard"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/output"
	"github.com/iwvelando/fincalc/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCalcCommand(a *app) *cobra.Command {
	var (
		assignments  []string
		outputFormat string
		chartPath    string
	)

	cmd := &cobra.Command{
		Use:       "calc <emi|sip|fd|savings>",
		Short:     "Compute one calculator and print its results",
		Args:      cobra.ExactArgs(1),
		ValidArgs: constants.Calculators,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := validation.ValidateCalculatorID(id); err != nil {
				return err
			}

			format := a.outputFormat(outputFormat)
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			values, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			imageFormat := chartFormatFor(chartPath, a.conf.Chart.Format)
			renderer, err := chart.NewRenderer(a.conf.Chart.Width, a.conf.Chart.Height, imageFormat)
			if err != nil {
				return err
			}

			calculators := calculator.Default()
			d := dashboard.New(calculators, dashboard.NewPage(), chart.NewImageLibrary(renderer, a.logger), a.logger)
			defer func() {
				if err := d.Close(); err != nil {
					a.logger.Warn("failed to release charts", zap.String("op", "main.calc"), zap.Error(err))
				}
			}()

			fields := make([]string, 0, len(values))
			for field := range values {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				if err := d.SetInput(id, field, values[field]); err != nil {
					return err
				}
			}

			if err := d.ShowDashboard(id); err != nil {
				return err
			}

			result, _ := d.Result(id)
			c, err := calculators.Get(id)
			if err != nil {
				return err
			}
			if err := output.Write(cmd.OutOrStdout(), format, c, result); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}

			if chartPath == "" {
				return nil
			}
			return writeChart(d, id, chartPath, a.logger)
		},
	}

	cmd.Flags().StringArrayVar(&assignments, "set", nil, "field value as field=value, e.g. emi-rate=9 (repeatable)")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, json, csv, yaml")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write the chart image to this file (.png or .svg)")
	return cmd
}

// chartFormatFor picks the image format from the file extension, falling
// back to the configured format.
func chartFormatFor(path, configured string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return constants.ChartFormatPNG
	case ".svg":
		return constants.ChartFormatSVG
	}
	if configured == "" {
		return constants.ChartFormatPNG
	}
	return configured
}

func writeChart(d *dashboard.Dashboard, id, path string, logger *zap.Logger) error {
	handle, ok := d.Chart(id)
	if !ok {
		return fmt.Errorf("no chart was drawn for %s", id)
	}
	img, ok := handle.(*chart.Image)
	if !ok {
		return fmt.Errorf("chart for %s is not an image", id)
	}
	if err := os.WriteFile(path, img.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}

	logger.Info("chart written",
		zap.String("op", "main.calc"),
		zap.String("calculator", id),
		zap.String("path", path),
		zap.Int("bytes", len(img.Bytes())),
	)
	return nil
}
