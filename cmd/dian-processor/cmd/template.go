package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/dian-processor/internal/loader"
)

var templateFormat string

const jsonTemplate = `[
  {
    "document_number": "FAC001",
    "issue_date": "2024-01-15",
    "issue_time": "10:30:00",
    "customer": {
      "tax_id": "12345678-9",
      "business_name": "CLIENTE EJEMPLO SAS",
      "address": "Calle 123 # 45-67",
      "city": "Bogotá",
      "state": "Cundinamarca",
      "postal_code": "110111",
      "email": "cliente@ejemplo.co"
    },
    "lines": [
      {
        "id": "1",
        "description": "Producto de ejemplo",
        "quantity": 2,
        "unit_price": 10000,
        "total_amount": 20000,
        "tax_amount": 3800,
        "tax_rate": 19.0
      }
    ],
    "line_extension_amount": 20000,
    "tax_exclusive_amount": 20000,
    "tax_inclusive_amount": 23800,
    "payable_amount": 23800,
    "tax_amount": 3800
  }
]
`

var templateCmd = &cobra.Command{
	Use:   "create-template [file]",
	Short: "Write an empty input template",
	Long: `Write a template input file showing the expected invoice fields.
The format is chosen by the file extension or the --format flag.

Examples:
  dian-processor create-template invoices.json
  dian-processor create-template invoices.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runCreateTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVar(&templateFormat, "format", "", "Template format (json or csv), default from extension")
}

func runCreateTemplate(cmd *cobra.Command, args []string) error {
	path := args[0]

	format := templateFormat
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	switch format {
	case "json":
		if err := os.WriteFile(path, []byte(jsonTemplate), 0o644); err != nil {
			return fmt.Errorf("cannot write template: %w", err)
		}
	case "csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("cannot write template: %w", err)
		}
		defer f.Close()
		w := csv.NewWriter(f)
		if err := w.Write(loader.CSVHeader()); err != nil {
			return err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported template format %q, use json or csv", format)
	}

	fmt.Printf("Template written to %s\n", path)
	return nil
}
