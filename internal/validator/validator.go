// Package validator checks the arithmetic and required-field invariants an
// invoice must satisfy before it is eligible for signing and transmission.
package validator

import (
	"fmt"

	sdecimal "github.com/shopspring/decimal"

	"github.com/rezonia/dian-processor/internal/decimal"
	"github.com/rezonia/dian-processor/internal/model"
)

// Validate runs every business and arithmetic check against the invoice and
// returns all failures in check order. It never stops at the first failure
// and never panics; line-level failures carry a 1-based line index.
func Validate(inv *model.Invoice) (bool, []string) {
	var errs []string

	if inv.DocumentNumber == "" {
		errs = append(errs, "document number is required")
	}
	if inv.Customer.TaxID == "" {
		errs = append(errs, "customer tax id is required")
	}
	if inv.Customer.BusinessName == "" {
		errs = append(errs, "customer business name is required")
	}
	if len(inv.Lines) == 0 {
		errs = append(errs, "invoice must have at least one line item")
	}
	if !decimal.IsPositive(inv.PayableAmount) {
		errs = append(errs, "payable amount must be greater than zero")
	}

	subtotal, taxTotal := lineTotals(inv.Lines)
	if !decimal.WithinTolerance(subtotal, inv.LineExtensionAmount) {
		errs = append(errs, "subtotal does not match line items")
	}

	computed := subtotal.Add(taxTotal)
	if !inv.AllowanceTotalAmount.IsZero() || !inv.ChargeTotalAmount.IsZero() {
		computed = computed.Sub(inv.AllowanceTotalAmount).Add(inv.ChargeTotalAmount)
	}
	if !decimal.WithinTolerance(computed, inv.PayableAmount) {
		errs = append(errs, "total does not match computed amount")
	}

	for i, line := range inv.Lines {
		n := i + 1
		if !decimal.IsPositive(line.Quantity) {
			errs = append(errs, fmt.Sprintf("line %d: quantity must be greater than zero", n))
		}
		if !decimal.IsPositive(line.UnitPrice) {
			errs = append(errs, fmt.Sprintf("line %d: unit price must be greater than zero", n))
		}
		if !decimal.WithinTolerance(decimal.Mul(line.Quantity, line.UnitPrice), line.TotalAmount) {
			errs = append(errs, fmt.Sprintf("line %d: total does not match quantity * unit price", n))
		}
	}

	return len(errs) == 0, errs
}

func lineTotals(lines []model.LineItem) (subtotal, tax sdecimal.Decimal) {
	totals := make([]sdecimal.Decimal, 0, len(lines))
	taxes := make([]sdecimal.Decimal, 0, len(lines))
	for _, line := range lines {
		totals = append(totals, line.TotalAmount)
		taxes = append(taxes, line.TaxAmount)
	}
	return decimal.Sum(totals), decimal.Sum(taxes)
}
