// Package pdf renders a printable representation of an invoice.
package pdf

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/rezonia/dian-processor/internal/decimal"
	"github.com/rezonia/dian-processor/internal/model"
)

// Render writes an A4 invoice document to w. The layout is a simple header,
// party blocks, line table and totals block.
func Render(w io.Writer, inv *model.Invoice, issuer model.Issuer) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; accented input must pass through the translator.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, tr("Factura Electrónica de Venta"))
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 8, fmt.Sprintf("No. %s", inv.DocumentNumber))
	doc.Ln(6)
	doc.Cell(0, 8, fmt.Sprintf("Fecha: %s %s", inv.IssueDate, inv.IssueTime))
	doc.Ln(12)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(95, 6, "Emisor")
	doc.Cell(95, 6, "Adquiriente")
	doc.Ln(6)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(95, 5, tr(issuer.BusinessName))
	doc.Cell(95, 5, tr(inv.Customer.BusinessName))
	doc.Ln(5)
	doc.Cell(95, 5, fmt.Sprintf("NIT %s", issuer.NIT))
	doc.Cell(95, 5, inv.Customer.TaxID)
	doc.Ln(5)
	doc.Cell(95, 5, tr(issuer.Address))
	doc.Cell(95, 5, tr(inv.Customer.Address))
	doc.Ln(5)
	doc.Cell(95, 5, tr(fmt.Sprintf("%s, %s", issuer.City, issuer.State)))
	doc.Cell(95, 5, tr(fmt.Sprintf("%s, %s", inv.Customer.City, inv.Customer.State)))
	doc.Ln(12)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(15, 7, "Cant.", "1", 0, "C", false, 0, "")
	doc.CellFormat(85, 7, tr("Descripción"), "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 7, "Precio", "1", 0, "R", false, 0, "")
	doc.CellFormat(30, 7, "IVA", "1", 0, "R", false, 0, "")
	doc.CellFormat(30, 7, "Total", "1", 0, "R", false, 0, "")
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	for _, line := range inv.Lines {
		doc.CellFormat(15, 6, line.Quantity.String(), "1", 0, "C", false, 0, "")
		doc.CellFormat(85, 6, tr(line.Description), "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 6, decimal.Format(line.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 6, decimal.Format(line.TaxAmount), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 6, decimal.Format(line.TotalAmount), "1", 0, "R", false, 0, "")
		doc.Ln(-1)
	}
	doc.Ln(4)

	currency := inv.Currency
	totalRow := func(label string, amount string) {
		doc.CellFormat(130, 6, "", "", 0, "", false, 0, "")
		doc.CellFormat(30, 6, label, "", 0, "R", false, 0, "")
		doc.CellFormat(30, 6, fmt.Sprintf("%s %s", amount, currency), "", 0, "R", false, 0, "")
		doc.Ln(-1)
	}
	totalRow("Subtotal", decimal.Format(inv.TaxExclusiveAmount))
	totalRow("IVA", decimal.Format(inv.TaxAmount))
	doc.SetFont("Helvetica", "B", 10)
	totalRow("Total", decimal.Format(inv.PayableAmount))

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("cannot render invoice PDF: %w", err)
	}
	return nil
}

// Save renders the invoice to a file at path.
func Save(path string, inv *model.Invoice, issuer model.Issuer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create invoice PDF: %w", err)
	}
	defer f.Close()
	return Render(f, inv, issuer)
}
