// Package constants provides shared constants for the trip-forecast application.
package constants

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
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
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultFaresFile is the default fare table file name
	DefaultFaresFile = "fares.csv"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Fare table column names, matched case-insensitively against the CSV header.
const (
	ColumnOriginCity         = "origin_city"
	ColumnDestinationCity    = "destination_city"
	ColumnOriginAirport      = "origin_airport"
	ColumnDestinationAirport = "destination_airport"
	ColumnLowFare            = "low_fare"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the quote API
	DefaultServerAddress = ":8080"
)

// DirectLabel is the connection label for a leg with no intermediate stops.
const DirectLabel = "Direct"
