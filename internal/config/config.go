// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for fincalc.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output  OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
	Chart   ChartConfig   `yaml:"chart,omitempty" mapstructure:"chart"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputfile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, json, csv, yaml
}

// ChartConfig holds chart rendering options
type ChartConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // png, svg
	Width  int    `yaml:"width,omitempty" mapstructure:"width"`
	Height int    `yaml:"height,omitempty" mapstructure:"height"`
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Output:  OutputConfig{Format: constants.OutputFormatPretty},
		Chart: ChartConfig{
			Format: constants.ChartFormatPNG,
			Width:  constants.DefaultChartWidth,
			Height: constants.DefaultChartHeight,
		},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with FINCALC_ override
// file values (FINCALC_LOGGING_LEVEL, FINCALC_CHART_WIDTH, ...). An empty
// path loads defaults and the environment only.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.outputfile", "")
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("chart.format", defaults.Chart.Format)
	v.SetDefault("chart.width", defaults.Chart.Width)
	v.SetDefault("chart.height", defaults.Chart.Height)
}

// Validate checks the output and chart sections.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("invalid output section: %w", err)
	}
	if err := validation.ValidateChartFormat(c.Chart.Format); err != nil {
		return fmt.Errorf("invalid chart section: %w", err)
	}
	if err := validation.ValidateChartSize(c.Chart.Width, c.Chart.Height, constants.MaxChartDimension); err != nil {
		return fmt.Errorf("invalid chart section: %w", err)
	}
	return nil
}
