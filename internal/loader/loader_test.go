package loader_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/dian-processor/internal/loader"
	"github.com/rezonia/dian-processor/internal/model"
)

const invoiceJSON = `[
  {
    "document_number": "FAC001",
    "issue_date": "2024-01-15",
    "issue_time": "10:30:00",
    "customer": {
      "tax_id": "12345678-9",
      "business_name": "CLIENTE EJEMPLO SAS",
      "address": "Calle 123 # 45-67",
      "city": "Bogota",
      "state": "Cundinamarca",
      "postal_code": "110111"
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
]`

const invoiceCSV = `document_number,issue_date,issue_time,customer_tax_id,customer_business_name,customer_address,customer_city,customer_state,customer_postal_code,line_id,line_description,line_quantity,line_unit_price,line_total_amount,line_tax_amount,line_tax_rate,line_extension_amount,tax_exclusive_amount,tax_inclusive_amount,payable_amount,tax_amount
FAC001,2024-01-15,10:30:00,12345678-9,CLIENTE EJEMPLO SAS,Calle 123 # 45-67,Bogota,Cundinamarca,110111,1,Producto de ejemplo,2,10000,20000,3800,19.0,20000,20000,23800,23800,3800
`

func TestFromJSON(t *testing.T) {
	invoices, err := loader.FromJSON(strings.NewReader(invoiceJSON))
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	assert.Equal(t, "FAC001", inv.DocumentNumber)
	assert.Equal(t, "CLIENTE EJEMPLO SAS", inv.Customer.BusinessName)
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "20000", inv.Lines[0].TotalAmount.String())

	// defaults applied at construction
	assert.Equal(t, "COP", inv.Currency)
	assert.Equal(t, "1", inv.ExchangeRate.String())
	assert.Equal(t, "10", inv.OperationType)
	assert.Equal(t, "94", inv.Lines[0].UnitMeasure)
	assert.Equal(t, model.CustomerLegalEntity, inv.Customer.Type)
	assert.Equal(t, "CO", inv.Customer.CountryCode)
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := loader.FromJSON(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestFromCSV(t *testing.T) {
	invoices, err := loader.FromCSV(strings.NewReader(invoiceCSV))
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	assert.Equal(t, "FAC001", inv.DocumentNumber)
	assert.Equal(t, "2024-01-15", inv.IssueDate)
	assert.Equal(t, "12345678-9", inv.Customer.TaxID)
	require.Len(t, inv.Lines, 1, "CSV rows carry exactly one line item")
	assert.Equal(t, "2", inv.Lines[0].Quantity.String())
	assert.Equal(t, "19", inv.Lines[0].TaxRate.String())
	assert.Equal(t, "23800", inv.PayableAmount.String())
}

func TestFromCSV_MissingColumn(t *testing.T) {
	csv := "document_number,issue_date\nFAC001,2024-01-15\n"

	_, err := loader.FromCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestFromCSV_BadNumber(t *testing.T) {
	bad := strings.Replace(invoiceCSV, "23800,3800", "23800,not-a-number", 1)

	_, err := loader.FromCSV(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "invoices.json")
	require.NoError(t, writeFile(jsonPath, invoiceJSON))
	csvPath := filepath.Join(dir, "invoices.csv")
	require.NoError(t, writeFile(csvPath, invoiceCSV))

	fromJSON, err := loader.FromFile(jsonPath)
	require.NoError(t, err)
	fromCSV, err := loader.FromFile(csvPath)
	require.NoError(t, err)

	assert.Equal(t, fromJSON[0].DocumentNumber, fromCSV[0].DocumentNumber)

	_, err = loader.FromFile(filepath.Join(dir, "invoices.xlsx"))
	assert.Error(t, err)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
