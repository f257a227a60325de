package processor_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/dian-processor/internal/model"
	"github.com/rezonia/dian-processor/internal/processor"
	"github.com/rezonia/dian-processor/internal/signer"
)

type stubSender struct {
	mu    sync.Mutex
	calls int
	ack   *model.Acknowledgement
	err   error
}

func (s *stubSender) Send(ctx context.Context, signedXML string) (*model.Acknowledgement, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, model.NewTransmissionError(model.CodeConnectionError, "context cancelled", err)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.ack, nil
}

func (s *stubSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type failingSigner struct{}

func (failingSigner) Sign(string) (string, error) {
	return "", model.NewSignError(model.SignCodeKeystoreDecrypt, "cannot decrypt keystore", nil)
}

func testIssuer() model.Issuer {
	return model.Issuer{
		NIT:          "900123456-7",
		BusinessName: "EMISOR DE PRUEBA SAS",
		Address:      "Carrera 7 # 71-21",
		City:         "Bogota",
		State:        "Cundinamarca",
		CountryCode:  "CO",
		Email:        "facturacion@emisor.co",
		Phone:        "+57 601 5551234",
		SoftwareID:   "soft-0001",
	}
}

func testInvoice(number string) *model.Invoice {
	inv := &model.Invoice{
		DocumentNumber: number,
		IssueDate:      "2024-01-15",
		IssueTime:      "10:30:00",
		Customer: model.Customer{
			TaxID:        "12345678-9",
			BusinessName: "CLIENTE EJEMPLO SAS",
			Address:      "Calle 123 # 45-67",
			City:         "Bogota",
			State:        "Cundinamarca",
			PostalCode:   "110111",
		},
		Lines: []model.LineItem{
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

func okAck() *model.Acknowledgement {
	return &model.Acknowledgement{
		Success:         true,
		ResponseCode:    "00",
		ResponseMessage: "Documento validado",
		DocumentUUID:    "a1b2c3d4-0000-1111-2222-333344445555",
	}
}

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func newPipeline(t *testing.T, sender processor.Sender) *processor.Pipeline {
	t.Helper()
	return processor.NewPipeline(testIssuer(), signer.NewDetachedFromKey(testKey(t)), sender)
}

func TestProcess_Success(t *testing.T) {
	sender := &stubSender{ack: okAck()}
	p := newPipeline(t, sender)

	result := p.Process(context.Background(), testInvoice("FAC001"))

	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, "FAC001", result.InvoiceNumber)
	assert.Equal(t, "00", result.ResponseCode)
	assert.Equal(t, "a1b2c3d4-0000-1111-2222-333344445555", result.DocumentUUID)
	assert.NotEmpty(t, result.SignedXML)
	assert.Greater(t, result.ProcessingTime.Nanoseconds(), int64(0))
}

func TestProcess_ValidationFailureShortCircuits(t *testing.T) {
	sender := &stubSender{ack: okAck()}
	p := newPipeline(t, sender)

	inv := testInvoice("FAC002")
	inv.PayableAmount = decimal.Zero

	result := p.Process(context.Background(), inv)

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, model.CodeValidationError, result.ResponseCode)
	assert.Contains(t, result.ResponseMessage, "payable amount must be greater than zero")
	assert.Empty(t, result.SignedXML)
	assert.Equal(t, 0, sender.callCount(), "invalid invoice must never be sent")
}

func TestProcess_SignFailure(t *testing.T) {
	sender := &stubSender{ack: okAck()}
	p := processor.NewPipeline(testIssuer(), failingSigner{}, sender)

	result := p.Process(context.Background(), testInvoice("FAC003"))

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, model.CodeSignError, result.ResponseCode)
	assert.Equal(t, 0, sender.callCount())
}

func TestProcess_TransmissionTimeout(t *testing.T) {
	sender := &stubSender{err: model.NewTransmissionError(model.CodeTimeout, "request timed out", nil)}
	p := newPipeline(t, sender)

	result := p.Process(context.Background(), testInvoice("FAC004"))

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, model.CodeTimeout, result.ResponseCode)
	assert.NotEmpty(t, result.SignedXML, "signed payload is kept for retry by the caller")
}

func TestProcess_AuthorityRejection(t *testing.T) {
	sender := &stubSender{ack: &model.Acknowledgement{
		Success:         false,
		ResponseCode:    "02",
		ResponseMessage: "Documento rechazado",
	}}
	p := newPipeline(t, sender)

	result := p.Process(context.Background(), testInvoice("FAC005"))

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, "02", result.ResponseCode)
	assert.Equal(t, "Documento rechazado", result.ErrorDetails)
}
