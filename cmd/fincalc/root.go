package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand once the root command
// has loaded configuration and built the logger.
type app struct {
	configPath string
	logLevel   string

	conf   *config.Configuration
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "fincalc",
		Short:         "EMI, SIP, fixed deposit and savings goal calculators",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags().Changed("config"))
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newCalcCommand(a),
		newScheduleCommand(a),
		newChartCommand(a),
		newServeCommand(a),
	)
	return root
}

// setup loads the configuration and initializes logging. The default config
// file is optional; an explicitly named one must exist.
func (a *app) setup(explicitConfig bool) error {
	path := a.configPath
	if !explicitConfig {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.conf = conf
	a.logger = logger
	return nil
}

// outputFormat resolves the output format, CLI override taking precedence
// over config.
func (a *app) outputFormat(override string) string {
	if override != "" {
		return override
	}
	if a.conf != nil && a.conf.Output.Format != "" {
		return a.conf.Output.Format
	}
	return constants.OutputFormatPretty
}

// parseAssignments turns repeated --set field=value flags into a map.
func parseAssignments(assignments []string) (map[string]string, error) {
	values := make(map[string]string, len(assignments))
	for _, assignment := range assignments {
		field, value, ok := strings.Cut(assignment, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("expected field=value, got %q", assignment)
		}
		values[field] = value
	}
	return values, nil
}
