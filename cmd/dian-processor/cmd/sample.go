package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	sdecimal "github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rezonia/dian-processor/internal/decimal"
	"github.com/rezonia/dian-processor/internal/model"
)

var (
	sampleCount  int
	sampleOutput string
	sampleAmount float64
)

var sampleCmd = &cobra.Command{
	Use:   "create-sample",
	Short: "Generate a sample invoice batch",
	Long: `Generate a JSON file of well-formed sample invoices for testing the
pipeline against the authority sandbox.

Amounts are derived from the gross total: the subtotal is the total
divided by 1.19 and IVA is computed at 19% of it.

Examples:
  dian-processor create-sample -o sample.json
  dian-processor create-sample -o sample.json --count 10 --amount 50000`,
	RunE: runCreateSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVar(&sampleCount, "count", 3, "Number of invoices to generate")
	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "sample_invoices.json", "Output file")
	sampleCmd.Flags().Float64Var(&sampleAmount, "amount", 23800, "Gross total per invoice, IVA included")
}

func runCreateSample(cmd *cobra.Command, args []string) error {
	if sampleCount < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	invoices := make([]*model.Invoice, 0, sampleCount)
	for i := 1; i <= sampleCount; i++ {
		invoices = append(invoices, sampleInvoice(i, sampleAmount))
	}

	f, err := os.Create(sampleOutput)
	if err != nil {
		return fmt.Errorf("cannot create sample file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(invoices); err != nil {
		return fmt.Errorf("cannot write sample file: %w", err)
	}

	fmt.Printf("Wrote %d sample invoices to %s\n", sampleCount, sampleOutput)
	return nil
}

func sampleInvoice(n int, grossAmount float64) *model.Invoice {
	subtotal := decimal.FromFloat(grossAmount).Div(sdecimal.NewFromFloat(1.19)).Round(2)
	taxRate := decimal.FromFloat(19.0)
	tax := decimal.CalculateTax(subtotal, taxRate)
	gross := subtotal.Add(tax)

	inv := &model.Invoice{
		DocumentNumber: fmt.Sprintf("SETP%06d", n),
		IssueDate:      "2024-01-15",
		IssueTime:      "10:30:00",
		Customer: model.Customer{
			TaxID:        "12345678-9",
			BusinessName: "CLIENTE DE PRUEBA SAS",
			Address:      "Calle 123 # 45-67",
			City:         "Bogotá",
			State:        "Cundinamarca",
			PostalCode:   "110111",
			Email:        "cliente@ejemplo.co",
		},
		Lines: []model.LineItem{
			{
				ID:          "1",
				Description: fmt.Sprintf("Producto de prueba %d", n),
				Quantity:    decimal.FromInt(1),
				UnitPrice:   subtotal,
				TotalAmount: subtotal,
				TaxAmount:   tax,
				TaxRate:     taxRate,
			},
		},
		LineExtensionAmount: subtotal,
		TaxExclusiveAmount:  subtotal,
		TaxInclusiveAmount:  gross,
		PayableAmount:       gross,
		TaxAmount:           tax,
		TaxRate:             taxRate,
	}
	inv.ApplyDefaults()
	return inv
}
