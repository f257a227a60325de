package ubl

import (
	"strconv"

	"github.com/beevik/etree"
	sdecimal "github.com/shopspring/decimal"

	"github.com/rezonia/dian-processor/internal/decimal"
)

func addText(parent *etree.Element, tag, text string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(text)
	return el
}

// addAmount emits a monetary element with fixed two-decimal formatting and a
// currencyID attribute.
func addAmount(parent *etree.Element, tag string, amount sdecimal.Decimal, currency string) *etree.Element {
	el := addText(parent, tag, decimal.Format(amount))
	el.CreateAttr("currencyID", currency)
	return el
}

// addTaxSubtotal emits the tax sub-block shared by invoice lines and the
// document-level tax total. Category "O" for taxed items, "Z" for exempt.
func addTaxSubtotal(taxTotal *etree.Element, taxable, tax, rate sdecimal.Decimal, currency string) {
	subtotal := taxTotal.CreateElement("cac:TaxSubtotal")
	addAmount(subtotal, "cbc:TaxableAmount", taxable, currency)
	addAmount(subtotal, "cbc:TaxAmount", tax, currency)
	addText(subtotal, "cbc:Percent", decimal.FormatRate(rate))

	category := subtotal.CreateElement("cac:TaxCategory")
	if decimal.IsPositive(rate) {
		addText(category, "cbc:ID", "O")
	} else {
		addText(category, "cbc:ID", "Z")
	}
	addText(category, "cbc:Percent", decimal.FormatRate(rate))

	scheme := category.CreateElement("cac:TaxScheme")
	addText(scheme, "cbc:ID", "01")
}

// numberPrefix returns the authorized-range prefix from a document number.
func numberPrefix(documentNumber string) string {
	if len(documentNumber) < 3 {
		return documentNumber
	}
	return documentNumber[:3]
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
