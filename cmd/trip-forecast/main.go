package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/trip-forecast/internal/config"
	"github.com/iwvelando/trip-forecast/internal/faretable"
	"github.com/iwvelando/trip-forecast/internal/route"
	"github.com/iwvelando/trip-forecast/internal/server"
	"github.com/iwvelando/trip-forecast/internal/trip"
	"github.com/iwvelando/trip-forecast/pkg/constants"
	"github.com/iwvelando/trip-forecast/pkg/output"
	"github.com/iwvelando/trip-forecast/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	pdfPath := flag.String("pdf", "", "optional path to write a PDF quote sheet for the first trip")
	serve := flag.Bool("serve", false, "run the HTTP quote API instead of quoting configured trips")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Load the fare table once; it is read-only for the rest of the run.
	table, err := faretable.Load(conf.Fares.Path, logger)
	if err != nil {
		logger.Fatal("failed to load fare table",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	logger.Info(fmt.Sprintf("loaded %d fare records", table.Len()),
		zap.String("op", "main"),
		zap.Int("skipped", table.Skipped()),
	)

	engine, err := route.NewEngine(table)
	if err != nil {
		logger.Fatal("failed to initialize route engine",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *serve {
		serverConf, err := server.LoadConfig(*serverConfigLocation)
		if err != nil {
			logger.Fatal("failed to load server configuration",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		router := server.NewRouter(logger, engine, serverConf)
		logger.Info("serving quote API",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
		)
		if err := router.Run(serverConf.Address); err != nil {
			logger.Fatal("server exited",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Quote every configured trip; an unquotable trip is reported and
	// skipped, not fatal.
	var summaries []*trip.Summary
	for i, tc := range conf.Trips {
		if problems := validation.ValidateTrip(tc.Source, tc.Destination, tc.Nights, tc.NightlyRate, tc.Budget); len(problems) > 0 {
			logger.Warn(fmt.Sprintf("skipping trip %d: invalid request", i+1),
				zap.String("op", "main"),
			)
			continue
		}

		summary, err := trip.Compute(logger, engine, trip.Request{
			Source:      tc.Source,
			Destination: tc.Destination,
			Nights:      tc.Nights,
			NightlyRate: tc.NightlyRate,
			RoundTrip:   tc.RoundTrip,
			Budget:      tc.Budget,
		})
		if err != nil {
			logger.Warn(fmt.Sprintf("skipping trip %d (%s to %s): %v", i+1, tc.Source, tc.Destination, err),
				zap.String("op", "main"),
			)
			continue
		}
		summaries = append(summaries, summary)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(summaries)
	case constants.OutputFormatCSV:
		output.CsvFormat(summaries)
	}

	if *pdfPath != "" && len(summaries) > 0 {
		data, err := output.PDFBytes(summaries[0])
		if err != nil {
			logger.Fatal("failed to render PDF quote sheet",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if err := os.WriteFile(*pdfPath, data, 0644); err != nil {
			logger.Fatal("failed to write PDF quote sheet",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Info("wrote PDF quote sheet",
			zap.String("op", "main"),
			zap.String("path", *pdfPath),
		)
	}
}
