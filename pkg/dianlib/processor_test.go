package dianlib_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/dian-processor/pkg/dianlib"
)

const ackXML = `<?xml version="1.0" encoding="UTF-8"?>
<ApplicationResponse xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ResponseCode>00</cbc:ResponseCode>
  <cbc:ResponseDescription>Documento validado</cbc:ResponseDescription>
  <cbc:UUID>a1b2c3d4-0000-1111-2222-333344445555</cbc:UUID>
</ApplicationResponse>`

type passthroughSigner struct{}

func (passthroughSigner) Sign(xmlContent string) (string, error) {
	return xmlContent, nil
}

func testIssuer() dianlib.Issuer {
	return dianlib.Issuer{
		NIT:          "900123456-7",
		BusinessName: "EMISOR DE PRUEBA SAS",
		Address:      "Carrera 7 # 71-21",
		City:         "Bogota",
		State:        "Cundinamarca",
		CountryCode:  "CO",
		SoftwareID:   "soft-0001",
	}
}

func testInvoice() *dianlib.Invoice {
	inv := &dianlib.Invoice{
		DocumentNumber: "FAC001",
		IssueDate:      "2024-01-15",
		IssueTime:      "10:30:00",
		Customer: dianlib.Customer{
			TaxID:        "12345678-9",
			BusinessName: "CLIENTE EJEMPLO SAS",
			Address:      "Calle 123 # 45-67",
			City:         "Bogota",
			State:        "Cundinamarca",
			PostalCode:   "110111",
		},
		Lines: []dianlib.LineItem{
			{
				ID:          "1",
				Description: "Producto de ejemplo",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromInt(10000),
				TotalAmount: decimal.NewFromInt(20000),
				TaxAmount:   decimal.NewFromInt(3800),
				TaxRate:     decimal.NewFromFloat(19.0),
			},
		},
		LineExtensionAmount: decimal.NewFromInt(20000),
		TaxExclusiveAmount:  decimal.NewFromInt(20000),
		TaxInclusiveAmount:  decimal.NewFromInt(23800),
		PayableAmount:       decimal.NewFromInt(23800),
		TaxAmount:           decimal.NewFromInt(3800),
		TaxRate:             decimal.NewFromFloat(19.0),
	}
	inv.ApplyDefaults()
	return inv
}

func newProcessor(t *testing.T, endpoint string) *dianlib.Processor {
	t.Helper()
	proc, err := dianlib.NewProcessor(dianlib.Options{
		Issuer:    testIssuer(),
		Signer:    passthroughSigner{},
		Endpoint:  endpoint,
		AuthToken: "test-token",
	})
	require.NoError(t, err)
	return proc
}

func TestProcessorValidate(t *testing.T) {
	proc := newProcessor(t, "http://localhost:0")

	valid, errs := proc.Validate(testInvoice())
	assert.True(t, valid)
	assert.Empty(t, errs)

	bad := testInvoice()
	bad.Lines = nil
	valid, errs = proc.Validate(bad)
	assert.False(t, valid)
	assert.NotEmpty(t, errs)
}

func TestProcessorBuildXML(t *testing.T) {
	proc := newProcessor(t, "http://localhost:0")

	xml, err := proc.BuildXML(testInvoice())
	require.NoError(t, err)
	assert.Contains(t, xml, "<cbc:ID>FAC001</cbc:ID>")
	assert.Contains(t, xml, "DianExtensions")
	assert.Contains(t, xml, "900123456-7", "issuer supplied at construction must appear in the document")
}

func TestProcessorProcess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(ackXML))
	}))
	defer srv.Close()

	proc := newProcessor(t, srv.URL)

	result := proc.Process(context.Background(), testInvoice())

	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, "00", result.ResponseCode)
	assert.Equal(t, "a1b2c3d4-0000-1111-2222-333344445555", result.DocumentUUID)
}

func TestProcessorProcessBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(ackXML))
	}))
	defer srv.Close()

	proc := newProcessor(t, srv.URL)

	a := testInvoice()
	b := testInvoice()
	b.DocumentNumber = "FAC002"

	results := proc.ProcessBatch(context.Background(), []*dianlib.Invoice{a, b})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Success)
	}
}
