// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/iwvelando/trip-forecast/pkg/constants"
	"github.com/iwvelando/trip-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for trip-forecast.
type Configuration struct {
	Fares   FaresConfig
	Trips   []TripConfig
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// FaresConfig points at the fare table input.
type FaresConfig struct {
	Path string
}

// TripConfig describes one trip to quote.
type TripConfig struct {
	Source      string
	Destination string
	Nights      int
	NightlyRate float64
	RoundTrip   bool
	Budget      *float64
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if configuration.Fares.Path == "" {
		configuration.Fares.Path = constants.DefaultFaresFile
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Trips) == 0 {
		warnings = append(warnings, "no trips configured, nothing will be quoted")
	}

	for i, trip := range c.Trips {
		problems := validation.ValidateTrip(trip.Source, trip.Destination, trip.Nights, trip.NightlyRate, trip.Budget)
		for _, problem := range problems {
			warnings = append(warnings, fmt.Sprintf("trip %d (%s to %s): %s",
				i+1, trip.Source, trip.Destination, problem))
		}
	}

	return warnings
}
