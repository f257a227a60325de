package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Check the environment configuration",
	Long: `Load the configuration from the environment and report whether the
pipeline could actually transmit documents with it. All problems are
listed, not just the first.

Examples:
  dian-processor config
  dian-processor config --env-file production.env`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Issuer:      %s (NIT %s)\n", cfg.IssuerBusinessName, cfg.IssuerNIT)
	fmt.Printf("Software:    %s v%s\n", cfg.SoftwareID, cfg.SoftwareVersion)
	fmt.Printf("Environment: %s\n", cfg.Environment)
	fmt.Printf("Endpoint:    %s\n", cfg.WebServiceURL)
	fmt.Printf("Signature:   %s\n", cfg.SignatureMode)

	problems := cfg.ValidateEnvironment()
	if len(problems) == 0 {
		fmt.Println("\nConfiguration is ready for transmission")
		return nil
	}

	fmt.Println("\nProblems:")
	for _, p := range problems {
		fmt.Printf("  - %s\n", p)
	}
	return fmt.Errorf("configuration has %d problems", len(problems))
}
