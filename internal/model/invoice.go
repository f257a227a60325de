// Package model defines the entities flowing through the invoicing pipeline.
//
// Invoice, Customer and LineItem are read-only inputs: they are built by the
// caller (loaders, API handlers) and never mutated by any pipeline stage.
package model

import (
	"github.com/shopspring/decimal"
)

// CustomerType determines the identification scheme emitted for the customer
// in the UBL document.
type CustomerType string

const (
	// CustomerLegalEntity is identified by a NIT (scheme 31).
	CustomerLegalEntity CustomerType = "PERSONA_JURIDICA"
	// CustomerNaturalPerson is identified by a citizen ID (scheme 13).
	CustomerNaturalPerson CustomerType = "PERSONA_NATURAL"
)

// Default codes applied when the input omits them.
const (
	DefaultCurrency      = "COP"
	DefaultOperationType = "10"
	DefaultUnitMeasure   = "94"
	DefaultCountryCode   = "CO"
)

// LineItem is a single product line on an invoice.
type LineItem struct {
	ID             string          `json:"id"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitMeasure    string          `json:"unit_measure,omitempty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount,omitempty"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	ProductCode    string          `json:"product_code,omitempty"`
}

// Customer is the receiving party of an invoice.
type Customer struct {
	TaxID          string       `json:"tax_id"`
	BusinessName   string       `json:"business_name"`
	CommercialName string       `json:"commercial_name,omitempty"`
	Address        string       `json:"address"`
	City           string       `json:"city"`
	State          string       `json:"state"`
	CountryCode    string       `json:"country_code,omitempty"`
	PostalCode     string       `json:"postal_code"`
	Email          string       `json:"email,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Type           CustomerType `json:"customer_type,omitempty"`
}

// Invoice is a complete electronic invoice ready for processing.
// Each invoice owns its Customer and lines; they are never shared.
type Invoice struct {
	DocumentNumber string          `json:"document_number"`
	IssueDate      string          `json:"issue_date"`
	IssueTime      string          `json:"issue_time"`
	Currency       string          `json:"currency,omitempty"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate,omitempty"`
	OperationType  string          `json:"operation_type,omitempty"`
	Notes          []string        `json:"notes,omitempty"`

	// Totals
	LineExtensionAmount  decimal.Decimal `json:"line_extension_amount"`
	TaxExclusiveAmount   decimal.Decimal `json:"tax_exclusive_amount"`
	TaxInclusiveAmount   decimal.Decimal `json:"tax_inclusive_amount"`
	AllowanceTotalAmount decimal.Decimal `json:"allowance_total_amount,omitempty"`
	ChargeTotalAmount    decimal.Decimal `json:"charge_total_amount,omitempty"`
	PayableAmount        decimal.Decimal `json:"payable_amount"`

	// Taxes
	TaxAmount decimal.Decimal `json:"tax_amount"`
	TaxRate   decimal.Decimal `json:"tax_rate,omitempty"`

	Customer Customer   `json:"customer"`
	Lines    []LineItem `json:"lines"`
}

// ApplyDefaults fills optional codes the input may omit. Loaders call this
// once at construction time; pipeline stages never mutate an invoice.
func (inv *Invoice) ApplyDefaults() {
	if inv.Currency == "" {
		inv.Currency = DefaultCurrency
	}
	if inv.ExchangeRate.IsZero() {
		inv.ExchangeRate = decimal.NewFromInt(1)
	}
	if inv.OperationType == "" {
		inv.OperationType = DefaultOperationType
	}
	if inv.TaxRate.IsZero() && !inv.TaxAmount.IsZero() {
		inv.TaxRate = decimal.NewFromFloat(19.0)
	}
	if inv.Customer.CountryCode == "" {
		inv.Customer.CountryCode = DefaultCountryCode
	}
	if inv.Customer.Type == "" {
		inv.Customer.Type = CustomerLegalEntity
	}
	for i := range inv.Lines {
		if inv.Lines[i].UnitMeasure == "" {
			inv.Lines[i].UnitMeasure = DefaultUnitMeasure
		}
	}
}
