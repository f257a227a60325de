// Package ubl serializes validated invoices into the UBL 2.1 document
// structure accepted by the tax authority. Element order is significant for
// compliance; the builder is deterministic given a fixed clock and UUID
// source.
package ubl

import (
	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/rezonia/dian-processor/internal/model"
)

// UBL 2.1 namespaces
const (
	nsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	nsCAC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	nsCBC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	nsExt     = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	nsSTS     = "http://www.dian.gov.co/contratos/facturaelectronica/v1/Structures"
)

// Identification scheme codes for party tax IDs.
const (
	schemeNIT       = "31"
	schemeCitizenID = "13"
)

// Authorized invoice number range. The prefix comes from the first three
// characters of the document number.
const (
	authorizedFrom = "1"
	authorizedTo   = "99999999"
)

const authorizationValidityDays = 365

// Option configures a Builder
type Option func(*Builder)

// WithClock sets the clock used for the authorization validity window
func WithClock(c clockwork.Clock) Option {
	return func(b *Builder) {
		b.clock = c
	}
}

// WithUUIDSource sets the generator for document UUIDs
func WithUUIDSource(fn func() string) Option {
	return func(b *Builder) {
		b.newUUID = fn
	}
}

// Builder constructs UBL invoice documents
type Builder struct {
	clock   clockwork.Clock
	newUUID func() string
}

// NewBuilder creates a builder. By default it uses the wall clock and random
// UUIDs; tests inject fixed sources to get byte-identical output.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		clock:   clockwork.NewRealClock(),
		newUUID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build serializes the invoice into UBL XML for the given issuer.
// The invoice must already have passed validation.
func (b *Builder) Build(inv *model.Invoice, issuer model.Issuer) (string, error) {
	if inv == nil {
		return "", model.NewBuildError("", "invoice is nil", nil)
	}
	if len(inv.Lines) == 0 {
		return "", model.NewBuildError(inv.DocumentNumber, "invoice has no lines", nil)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Invoice")
	root.CreateAttr("xmlns", nsInvoice)
	root.CreateAttr("xmlns:cac", nsCAC)
	root.CreateAttr("xmlns:cbc", nsCBC)
	root.CreateAttr("xmlns:ext", nsExt)

	b.addBasicInfo(root, inv)
	b.addAuthorityExtensions(root, inv, issuer)
	b.addSupplier(root, issuer)
	b.addCustomer(root, &inv.Customer)
	b.addLines(root, inv)
	b.addTotals(root, inv)

	doc.Indent(2)
	xml, err := doc.WriteToString()
	if err != nil {
		return "", model.NewBuildError(inv.DocumentNumber, "failed to serialize document", err)
	}
	return xml, nil
}

func (b *Builder) addBasicInfo(root *etree.Element, inv *model.Invoice) {
	addText(root, "cbc:UBLVersionID", "2.1")
	addText(root, "cbc:CustomizationID", "DIAN 2.1")
	addText(root, "cbc:ProfileID", "DIAN 2.1: Factura Electrónica de Venta")
	addText(root, "cbc:ProfileExecutionID", "1")
	addText(root, "cbc:ID", inv.DocumentNumber)
	addText(root, "cbc:UUID", b.newUUID())
	addText(root, "cbc:IssueDate", inv.IssueDate)
	addText(root, "cbc:IssueTime", inv.IssueTime)
	addText(root, "cbc:InvoiceTypeCode", "01")
	addText(root, "cbc:DocumentCurrencyCode", inv.Currency)
	addText(root, "cbc:LineCountNumeric", itoa(len(inv.Lines)))
}

func (b *Builder) addAuthorityExtensions(root *etree.Element, inv *model.Invoice, issuer model.Issuer) {
	extensions := root.CreateElement("ext:UBLExtensions")
	extension := extensions.CreateElement("ext:UBLExtension")
	content := extension.CreateElement("ext:ExtensionContent")

	dianExt := content.CreateElement("sts:DianExtensions")
	dianExt.CreateAttr("xmlns:sts", nsSTS)

	control := dianExt.CreateElement("sts:InvoiceControl")
	addText(control, "sts:InvoiceAuthorization", issuer.SoftwareID)

	now := b.clock.Now()
	period := control.CreateElement("sts:AuthorizationPeriod")
	addText(period, "cbc:StartDate", now.Format("2006-01-02"))
	addText(period, "cbc:EndDate", now.AddDate(0, 0, authorizationValidityDays).Format("2006-01-02"))

	authorized := control.CreateElement("sts:AuthorizedInvoices")
	addText(authorized, "sts:Prefix", numberPrefix(inv.DocumentNumber))
	addText(authorized, "sts:From", authorizedFrom)
	addText(authorized, "sts:To", authorizedTo)

	source := dianExt.CreateElement("sts:InvoiceSource")
	idCode := addText(source, "cbc:IdentificationCode", "CO")
	idCode.CreateAttr("listAgencyID", "6")
	idCode.CreateAttr("listAgencyName", "United Nations Economic Commission for Europe")
	idCode.CreateAttr("listName", "Electronic Commerce Code")
}

func (b *Builder) addSupplier(root *etree.Element, issuer model.Issuer) {
	supplier := root.CreateElement("cac:AccountingSupplierParty")
	party := supplier.CreateElement("cac:Party")

	identification := party.CreateElement("cac:PartyIdentification")
	id := addText(identification, "cbc:ID", issuer.NIT)
	id.CreateAttr("schemeID", schemeNIT)
	id.CreateAttr("schemeName", "NIT")

	name := party.CreateElement("cac:PartyName")
	addText(name, "cbc:Name", issuer.BusinessName)

	address := party.CreateElement("cac:PostalAddress")
	addText(address, "cbc:StreetName", issuer.Address)
	addText(address, "cbc:CityName", issuer.City)
	addText(address, "cbc:CountrySubentity", issuer.State)
	addText(address, "cbc:CountrySubentityCode", issuer.State)
	country := address.CreateElement("cac:Country")
	addText(country, "cbc:IdentificationCode", issuer.CountryCode)

	if len(issuer.FiscalResponsibilities) > 0 {
		taxScheme := party.CreateElement("cac:PartyTaxScheme")
		scheme := taxScheme.CreateElement("cac:TaxScheme")
		addText(scheme, "cbc:ID", issuer.FiscalResponsibilities[0])
	}

	contact := party.CreateElement("cac:Contact")
	addText(contact, "cbc:Telephone", issuer.Phone)
	addText(contact, "cbc:ElectronicMail", issuer.Email)
}

func (b *Builder) addCustomer(root *etree.Element, customer *model.Customer) {
	customerParty := root.CreateElement("cac:AccountingCustomerParty")
	party := customerParty.CreateElement("cac:Party")

	identification := party.CreateElement("cac:PartyIdentification")
	id := addText(identification, "cbc:ID", customer.TaxID)
	if customer.Type == model.CustomerNaturalPerson {
		id.CreateAttr("schemeID", schemeCitizenID)
		id.CreateAttr("schemeName", "Cédula de Ciudadanía")
	} else {
		id.CreateAttr("schemeID", schemeNIT)
		id.CreateAttr("schemeName", "NIT")
	}

	name := party.CreateElement("cac:PartyName")
	addText(name, "cbc:Name", customer.BusinessName)

	address := party.CreateElement("cac:PostalAddress")
	addText(address, "cbc:StreetName", customer.Address)
	addText(address, "cbc:CityName", customer.City)
	addText(address, "cbc:CountrySubentity", customer.State)
	addText(address, "cbc:CountrySubentityCode", customer.State)
	country := address.CreateElement("cac:Country")
	addText(country, "cbc:IdentificationCode", customer.CountryCode)

	if customer.Phone != "" || customer.Email != "" {
		contact := party.CreateElement("cac:Contact")
		if customer.Phone != "" {
			addText(contact, "cbc:Telephone", customer.Phone)
		}
		if customer.Email != "" {
			addText(contact, "cbc:ElectronicMail", customer.Email)
		}
	}
}

func (b *Builder) addLines(root *etree.Element, inv *model.Invoice) {
	for i, line := range inv.Lines {
		lineEl := root.CreateElement("cac:InvoiceLine")
		addText(lineEl, "cbc:ID", itoa(i+1))

		quantity := addText(lineEl, "cbc:InvoicedQuantity", line.Quantity.String())
		quantity.CreateAttr("unitCode", line.UnitMeasure)

		addAmount(lineEl, "cbc:LineExtensionAmount", line.TotalAmount, inv.Currency)

		item := lineEl.CreateElement("cac:Item")
		addText(item, "cbc:Description", line.Description)
		addText(item, "cbc:Name", line.Description)
		if line.ProductCode != "" {
			sellerID := item.CreateElement("cac:SellersItemIdentification")
			addText(sellerID, "cbc:ID", line.ProductCode)
		}

		price := lineEl.CreateElement("cac:Price")
		addAmount(price, "cbc:PriceAmount", line.UnitPrice, inv.Currency)

		taxTotal := lineEl.CreateElement("cac:TaxTotal")
		addAmount(taxTotal, "cbc:TaxAmount", line.TaxAmount, inv.Currency)
		addTaxSubtotal(taxTotal, line.TotalAmount, line.TaxAmount, line.TaxRate, inv.Currency)
	}
}

func (b *Builder) addTotals(root *etree.Element, inv *model.Invoice) {
	taxTotal := root.CreateElement("cac:TaxTotal")
	addAmount(taxTotal, "cbc:TaxAmount", inv.TaxAmount, inv.Currency)
	addTaxSubtotal(taxTotal, inv.LineExtensionAmount, inv.TaxAmount, inv.TaxRate, inv.Currency)

	monetary := root.CreateElement("cac:LegalMonetaryTotal")
	addAmount(monetary, "cbc:LineExtensionAmount", inv.LineExtensionAmount, inv.Currency)
	addAmount(monetary, "cbc:TaxExclusiveAmount", inv.TaxExclusiveAmount, inv.Currency)
	addAmount(monetary, "cbc:TaxInclusiveAmount", inv.TaxInclusiveAmount, inv.Currency)
	addAmount(monetary, "cbc:AllowanceTotalAmount", inv.AllowanceTotalAmount, inv.Currency)
	addAmount(monetary, "cbc:ChargeTotalAmount", inv.ChargeTotalAmount, inv.Currency)
	addAmount(monetary, "cbc:PayableAmount", inv.PayableAmount, inv.Currency)
}
