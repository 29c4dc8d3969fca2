// Package constants provides shared constants for the fincalc application.
package constants

// Calculator identifiers. These double as the prefix of every element ID
// belonging to a calculator panel (e.g. "emi-calc", "emi-result").
const (
	CalculatorEMI     = "emi"
	CalculatorSIP     = "sip"
	CalculatorFD      = "fd"
	CalculatorSavings = "savings"
)

// Calculators lists every calculator in navigation order.
var Calculators = []string{CalculatorEMI, CalculatorSIP, CalculatorFD, CalculatorSavings}

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// QuarterlyCompounding is the number of compounding periods per year for
	// fixed deposits.
	QuarterlyCompounding = 4

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 paisa)
	CurrencyTolerance = 0.01
)

// Currency formatting
const (
	// CurrencySymbol is the symbol prefixed to every formatted amount.
	CurrencySymbol = "₹"

	// Locale is the single locale results are formatted for.
	Locale = "en-IN"
)

// Tenure units accepted by the EMI calculator.
const (
	TenureYears  = "years"
	TenureMonths = "months"
)

// EMI field identifiers and defaults.
const (
	FieldEMIAmount     = "emi-amount"
	FieldEMIRate       = "emi-rate"
	FieldEMITenure     = "emi-tenure"
	FieldEMITenureType = "emi-tenure-type"

	DefaultEMIAmount     = 500000.0
	DefaultEMIRate       = 8.5
	DefaultEMITenure     = 20.0
	DefaultEMITenureType = TenureYears
)

// SIP field identifiers and defaults.
const (
	FieldSIPAmount = "sip-amount"
	FieldSIPRate   = "sip-rate"
	FieldSIPPeriod = "sip-period"

	DefaultSIPAmount = 5000.0
	DefaultSIPRate   = 12.0
	DefaultSIPPeriod = 10.0
)

// Fixed deposit field identifiers and defaults.
const (
	FieldFDPrincipal = "fd-principal"
	FieldFDRate      = "fd-rate"
	FieldFDPeriod    = "fd-period"

	DefaultFDPrincipal = 100000.0
	DefaultFDRate      = 6.5
	DefaultFDPeriod    = 5.0
)

// Savings goal field identifiers and defaults.
const (
	FieldSavingsTarget = "savings-target"
	FieldSavingsPeriod = "savings-period"
	FieldSavingsRate   = "savings-rate"

	DefaultSavingsTarget = 1000000.0
	DefaultSavingsPeriod = 10.0
	DefaultSavingsRate   = 8.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// OutputFormats lists every supported output format.
var OutputFormats = []string{OutputFormatPretty, OutputFormatJSON, OutputFormatCSV, OutputFormatYAML}

// Chart image formats
const (
	ChartFormatPNG = "png"
	ChartFormatSVG = "svg"

	DefaultChartWidth  = 640
	DefaultChartHeight = 400

	// MaxChartDimension bounds the width and height of a requested chart
	MaxChartDimension = 4096
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variable overrides (FINCALC_LOGGING_LEVEL, ...)
	EnvPrefix = "FINCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRateLimit is the sustained number of requests per second per client
	DefaultRateLimit = 10.0

	// DefaultRateBurst is the burst allowance per client
	DefaultRateBurst = 20

	// DefaultCacheTTL is how long rendered charts stay cached
	DefaultCacheTTL = "10m"

	// DefaultMemoryCacheEntries bounds the in-memory chart cache
	DefaultMemoryCacheEntries = 256
)
