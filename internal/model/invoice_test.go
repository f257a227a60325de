package model_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rezonia/dian-processor/internal/model"
)

func TestApplyDefaults(t *testing.T) {
	inv := &model.Invoice{
		DocumentNumber: "FAC001",
		TaxAmount:      decimal.NewFromInt(3800),
		Lines:          []model.LineItem{{ID: "1"}},
	}

	inv.ApplyDefaults()

	assert.Equal(t, "COP", inv.Currency)
	assert.Equal(t, "1", inv.ExchangeRate.String())
	assert.Equal(t, "10", inv.OperationType)
	assert.Equal(t, "19", inv.TaxRate.String())
	assert.Equal(t, "CO", inv.Customer.CountryCode)
	assert.Equal(t, model.CustomerLegalEntity, inv.Customer.Type)
	assert.Equal(t, "94", inv.Lines[0].UnitMeasure)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	inv := &model.Invoice{
		Currency:      "USD",
		OperationType: "09",
		Customer: model.Customer{
			CountryCode: "PA",
			Type:        model.CustomerNaturalPerson,
		},
		Lines: []model.LineItem{{ID: "1", UnitMeasure: "KGM"}},
	}

	inv.ApplyDefaults()

	assert.Equal(t, "USD", inv.Currency)
	assert.Equal(t, "09", inv.OperationType)
	assert.Equal(t, "PA", inv.Customer.CountryCode)
	assert.Equal(t, model.CustomerNaturalPerson, inv.Customer.Type)
	assert.Equal(t, "KGM", inv.Lines[0].UnitMeasure)
}

func TestApplyDefaults_NoTaxRateWithoutTax(t *testing.T) {
	inv := &model.Invoice{Lines: []model.LineItem{{ID: "1"}}}

	inv.ApplyDefaults()

	assert.True(t, inv.TaxRate.IsZero())
}

func TestValidationErrorMessage(t *testing.T) {
	err := model.NewValidationError("FAC001", []string{"missing customer tax ID", "payable amount must be greater than zero"})

	assert.Contains(t, err.Error(), "FAC001")
	assert.Contains(t, err.Error(), "missing customer tax ID")
	assert.Contains(t, err.Error(), "payable amount must be greater than zero")
}

func TestSignErrorUnwrap(t *testing.T) {
	cause := errors.New("pkcs12: decryption password incorrect")
	err := model.NewSignError(model.SignCodeKeystoreDecrypt, "cannot decrypt keystore", cause)

	assert.Contains(t, err.Error(), model.SignCodeKeystoreDecrypt)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestTransmissionErrorAs(t *testing.T) {
	var wrapped error = model.NewTransmissionError(model.CodeTimeout, "request timed out", nil)

	var txErr *model.TransmissionError
	assert.True(t, errors.As(wrapped, &txErr))
	assert.Equal(t, model.CodeTimeout, txErr.Code)
}
