package service

import (
	"fmt"
	"strings"

	"github.com/vifordpro/budget-service/internal/currency"
	"github.com/vifordpro/budget-service/internal/model"
)

// BuildShareText renders a budget as the plain-text payload used by the
// share / clipboard fallback. Amounts are formatted in the budget's own
// saved currency.
func BuildShareText(budget model.Budget) string {
	format := func(amount float64) string {
		return currency.FormatIn(budget.Currency, amount)
	}

	var b strings.Builder
	b.WriteString(budget.CompanyName + "\n")
	if budget.CompanyRIF != "" {
		b.WriteString("RIF: " + budget.CompanyRIF + "\n")
	}
	b.WriteString("PRESUPUESTO N°: " + budget.SequenceNumber + "\n\n")

	b.WriteString("Cliente: " + budget.ClientName + "\n")
	if budget.ClientAddress != "" {
		b.WriteString("Dirección: " + budget.ClientAddress + "\n")
	}
	if budget.ClientRIF != "" {
		b.WriteString("RIF Cliente: " + budget.ClientRIF + "\n")
	}
	b.WriteString("Fecha: " + budget.DateLabel() + "\n\n")

	b.WriteString("MATERIALES:\n")
	for i, item := range budget.LineItems {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.ToUpper(item.Name)))
		b.WriteString(fmt.Sprintf("   Medida: %g x %gm\n", item.Width, item.Height))
		b.WriteString(fmt.Sprintf("   Precio: %s %s\n", format(item.UnitPrice), unitLabel(item.UnitMode)))
		b.WriteString(fmt.Sprintf("   Cantidad: %s\n", quantityLabel(item)))
		b.WriteString(fmt.Sprintf("   Subtotal: %s\n\n", format(item.Total)))
	}

	b.WriteString("SUBTOTAL: " + format(budget.Subtotal) + "\n")
	if budget.TaxEnabled {
		b.WriteString("IVA (16%): " + format(budget.Tax) + "\n")
	}
	b.WriteString("TOTAL GENERAL: " + format(budget.Total) + "\n")
	if budget.Notes != "" {
		b.WriteString("\nNOTAS: " + budget.Notes)
	}
	return b.String()
}

func unitLabel(mode model.UnitMode) string {
	if mode == model.UnitModePiece {
		return "por pieza"
	}
	return "por metro"
}

func quantityLabel(item model.LineItem) string {
	if item.UnitMode == model.UnitModePiece {
		return fmt.Sprintf("%d piezas", item.Quantity)
	}
	return fmt.Sprintf("%.2f m²", item.Width*item.Height*float64(item.Quantity))
}
