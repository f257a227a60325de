package loader

import (
	"encoding/csv"
	"fmt"
	"io"

	sdecimal "github.com/shopspring/decimal"

	"github.com/rezonia/dian-processor/internal/decimal"
	"github.com/rezonia/dian-processor/internal/model"
)

// Column order of the CSV input format. One row per invoice; the CSV path
// supports exactly one line item per invoice (inherited constraint).
var csvColumns = []string{
	"document_number", "issue_date", "issue_time",
	"customer_tax_id", "customer_business_name", "customer_address",
	"customer_city", "customer_state", "customer_postal_code",
	"line_id", "line_description", "line_quantity", "line_unit_price",
	"line_total_amount", "line_tax_amount", "line_tax_rate",
	"line_extension_amount", "tax_exclusive_amount", "tax_inclusive_amount",
	"payable_amount", "tax_amount",
}

// CSVHeader returns the expected header row, used by the template command.
func CSVHeader() []string {
	return append([]string(nil), csvColumns...)
}

// FromCSV reads one invoice per row. The first row must be the header.
func FromCSV(r io.Reader) ([]*model.Invoice, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read invoice CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("invoice CSV is empty")
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range csvColumns {
		if required == "line_tax_rate" {
			continue // optional, defaults to 19.0
		}
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("invoice CSV is missing column %q", required)
		}
	}

	invoices := make([]*model.Invoice, 0, len(records)-1)
	for rowNum, record := range records[1:] {
		inv, err := invoiceFromRow(record, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
		}
		inv.ApplyDefaults()
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func invoiceFromRow(record []string, index map[string]int) (*model.Invoice, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}
	var parseErr error
	amount := func(name string) sdecimal.Decimal {
		raw := field(name)
		if raw == "" {
			return decimal.Zero
		}
		d, err := decimal.FromString(raw)
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("column %q: %w", name, err)
		}
		return d
	}

	taxRate := amount("line_tax_rate")
	if field("line_tax_rate") == "" {
		taxRate = decimal.FromFloat(19.0)
	}

	inv := &model.Invoice{
		DocumentNumber: field("document_number"),
		IssueDate:      field("issue_date"),
		IssueTime:      field("issue_time"),
		Customer: model.Customer{
			TaxID:        field("customer_tax_id"),
			BusinessName: field("customer_business_name"),
			Address:      field("customer_address"),
			City:         field("customer_city"),
			State:        field("customer_state"),
			PostalCode:   field("customer_postal_code"),
		},
		Lines: []model.LineItem{
			{
				ID:          field("line_id"),
				Description: field("line_description"),
				Quantity:    amount("line_quantity"),
				UnitPrice:   amount("line_unit_price"),
				TotalAmount: amount("line_total_amount"),
				TaxAmount:   amount("line_tax_amount"),
				TaxRate:     taxRate,
			},
		},
		LineExtensionAmount: amount("line_extension_amount"),
		TaxExclusiveAmount:  amount("tax_exclusive_amount"),
		TaxInclusiveAmount:  amount("tax_inclusive_amount"),
		PayableAmount:       amount("payable_amount"),
		TaxAmount:           amount("tax_amount"),
		TaxRate:             taxRate,
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return inv, nil
}
