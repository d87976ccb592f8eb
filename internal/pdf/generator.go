package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/vifordpro/budget-service/internal/currency"
	"github.com/vifordpro/budget-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	// Core fonts cover cp1252, which includes the Spanish accents and ñ.
	return &Generator{fontName: "Helvetica"}
}

// Budget renders a client-facing budget document.
func (g *Generator) Budget(budget model.Budget) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	format := func(amount float64) string {
		return currency.FormatIn(budget.Currency, amount)
	}

	g.header(pdf, tr, budget, "PRESUPUESTO")

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("MATERIALES"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Material", "Medida", "Precio", "Cant.", "Subtotal"}
	widths := []float64{70, 30, 32, 16, 32}
	g.tableRow(pdf, tr, headers, widths, true)

	for _, item := range budget.LineItems {
		row := []string{
			strings.ToUpper(item.Name),
			fmt.Sprintf("%g x %gm", item.Width, item.Height),
			fmt.Sprintf("%s %s", format(item.UnitPrice), modeLabel(item.UnitMode)),
			fmt.Sprintf("%d", item.Quantity),
			format(item.Total),
		}
		g.tableRow(pdf, tr, row, widths, false)
	}

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Subtotal: %s", format(budget.Subtotal))), "", 1, "R", false, 0, "")
	if budget.TaxEnabled {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("IVA (16%%): %s", format(budget.Tax))), "", 1, "R", false, 0, "")
	}
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("TOTAL GENERAL: %s", format(budget.Total))), "", 1, "R", false, 0, "")

	if budget.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont(g.fontName, "B", 11)
		pdf.CellFormat(0, 6, tr("Notas"), "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		pdf.MultiCell(0, 5, tr(budget.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeliveryNote renders the delivery note for a budget: the same header, a
// transport block and the item list with quantities but no prices.
func (g *Generator) DeliveryNote(budget model.Budget, transport model.TransportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	g.header(pdf, tr, budget, "NOTA DE ENTREGA")

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Datos de Transporte"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	lines := []string{
		fmt.Sprintf("Transportado por: %s", safeValue(transport.TransportedBy)),
		fmt.Sprintf("Cédula: %s", safeValue(transport.Cedula)),
		fmt.Sprintf("Placa: %s", safeValue(transport.Plate)),
		fmt.Sprintf("Modelo de Vehículo: %s", safeValue(transport.VehicleModel)),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("MATERIALES"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	headers := []string{"Material", "Medida", "Cantidad"}
	widths := []float64{100, 40, 40}
	g.tableRow(pdf, tr, headers, widths, true)
	for _, item := range budget.LineItems {
		row := []string{
			strings.ToUpper(item.Name),
			fmt.Sprintf("%g x %gm", item.Width, item.Height),
			fmt.Sprintf("%d", item.Quantity),
		}
		g.tableRow(pdf, tr, row, widths, false)
	}

	pdf.Ln(12)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr("Recibido por: ______________________"), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.CellFormat(0, 6, tr("Entregado por: ______________________"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) header(pdf *gofpdf.Fpdf, tr func(string) string, budget model.Budget, title string) {
	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr(budget.CompanyName), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	if budget.CompanyRIF != "" {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("RIF: %s", budget.CompanyRIF)), "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(100, 7, tr(title), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("N°: %s", budget.SequenceNumber)), "", 1, "R", false, 0, "")

	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(100, 5, tr(fmt.Sprintf("Cliente: %s", budget.ClientName)), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Fecha: %s", budget.DateLabel())), "", 1, "R", false, 0, "")
	if budget.ClientRIF != "" {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("RIF Cliente: %s", budget.ClientRIF)), "", 1, "L", false, 0, "")
	}
	if budget.ClientAddress != "" {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Dirección: %s", budget.ClientAddress)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (g *Generator) tableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(g.fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func modeLabel(mode model.UnitMode) string {
	if mode == model.UnitModePiece {
		return "por pieza"
	}
	return "por metro"
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}
