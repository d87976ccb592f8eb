package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vifordpro/budget-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Workbook renders the archive as a spreadsheet: one row per budget,
// newest first, matching the on-screen archive order.
func (g *Generator) Workbook(budgets []model.Budget) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Presupuestos"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	var setErr error
	set := func(cell string, value interface{}) {
		if setErr != nil {
			return
		}
		setErr = f.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Número", "Cliente", "RIF Cliente", "Empresa", "RIF Empresa", "Fecha", "Moneda", "Subtotal", "IVA", "Total"}
	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		set(fmt.Sprintf("%s1", col), h)
	}

	for i, budget := range budgets {
		row := i + 2
		set(fmt.Sprintf("A%d", row), budget.SequenceNumber)
		set(fmt.Sprintf("B%d", row), budget.ClientName)
		set(fmt.Sprintf("C%d", row), budget.ClientRIF)
		set(fmt.Sprintf("D%d", row), budget.CompanyName)
		set(fmt.Sprintf("E%d", row), budget.CompanyRIF)
		set(fmt.Sprintf("F%d", row), budget.DateLabel())
		set(fmt.Sprintf("G%d", row), string(budget.Currency))
		set(fmt.Sprintf("H%d", row), budget.Subtotal)
		set(fmt.Sprintf("I%d", row), budget.Tax)
		set(fmt.Sprintf("J%d", row), budget.Total)
	}
	if setErr != nil {
		return nil, fmt.Errorf("write cells: %w", setErr)
	}

	widths := map[string]float64{
		"A": 10, "B": 28, "C": 16, "D": 28, "E": 16,
		"F": 12, "G": 10, "H": 14, "I": 14, "J": 14,
	}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
