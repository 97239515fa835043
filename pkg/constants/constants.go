// Package constants provides shared constants for the loancalc engine.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Affordability constants
const (
	// DefaultMaxDTI is the default debt-to-income ceiling applied by the
	// affordability solver when the caller does not supply one.
	DefaultMaxDTI = 0.36

	// ConservativeFactor scales the maximum affordable price down to the
	// conservative recommendation.
	ConservativeFactor = 0.9

	// AffordabilityCeilingYears caps the affordable price at this multiple of
	// annual income above the down payment.
	AffordabilityCeilingYears = 10.0

	// AffordabilityFallbackYears is the heuristic multiple of annual income
	// used when the closed-form solution fails arithmetically.
	AffordabilityFallbackYears = 4.0
)

// Validation caps for loan inputs
const (
	// MaxAnnualRatePercent is the highest annual interest rate accepted
	MaxAnnualRatePercent = 30.0

	// MaxTermYears is the longest loan term accepted
	MaxTermYears = 50

	// MaxLoanAmount is the largest principal accepted
	MaxLoanAmount = 100000000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default scenario configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes is the default maximum request body size (256 KB)
	DefaultMaxBodyBytes int64 = 256 * 1024
)
