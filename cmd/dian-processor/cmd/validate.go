package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/dian-processor/internal/loader"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate invoices without processing them",
	Long: `Validate every invoice in a JSON or CSV file against the business
rules and report all problems found. Nothing is built or sent.

Examples:
  dian-processor validate invoices.json
  dian-processor validate invoices.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	invoices, err := loader.FromFile(args[0])
	if err != nil {
		return err
	}
	if len(invoices) == 0 {
		return fmt.Errorf("no invoices found in %s", args[0])
	}
	return runValidateOnly(invoices)
}
