package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rezonia/dian-processor/internal/config"
	"github.com/rezonia/dian-processor/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	envFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "dian-processor",
	Short: "Process Colombian electronic invoices (DIAN UBL 2.1)",
	Long: `DIAN Processor builds, signs and transmits Colombian electronic
invoices to the DIAN web service.

The pipeline per document: validate, generate UBL 2.1 XML, sign with the
configured certificate, transmit and interpret the acknowledgement.

Examples:
  # Process a batch of invoices
  dian-processor process -i invoices.json -o results.json

  # Validate without sending
  dian-processor process -i invoices.csv --validate-only

  # Check the environment configuration
  dian-processor config

  # Start the HTTP API
  dian-processor serve`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Environment file to load (default: .env if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (console, json)")
}

// loadConfig reads the environment and applies logging flags on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}
