package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vifordpro/budget-service/internal/model"
)

func TestWorkbook(t *testing.T) {
	g := NewGenerator()

	budgets := []model.Budget{
		{
			SequenceNumber: "0002",
			ClientName:     "Ferretería El Tornillo",
			ClientRIF:      "J-11111111-1",
			CompanyName:    "EMPRESA VIFORD PRO C.A.",
			Date:           time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			Currency:       model.CurrencyVES,
			Subtotal:       10950,
			Tax:            1752,
			Total:          12702,
		},
		{
			SequenceNumber: "0001",
			ClientName:     "Constructora Andes",
			CompanyName:    "EMPRESA VIFORD PRO C.A.",
			Date:           time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			Currency:       model.CurrencyUSD,
			Subtotal:       300,
			Tax:            48,
			Total:          348,
		},
	}

	content, err := g.Workbook(budgets)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	tests := []struct {
		cell string
		want string
	}{
		{cell: "A1", want: "Número"},
		{cell: "A2", want: "0002"},
		{cell: "B2", want: "Ferretería El Tornillo"},
		{cell: "F2", want: "01/04/2026"},
		{cell: "G2", want: "VES"},
		{cell: "A3", want: "0001"},
		{cell: "B3", want: "Constructora Andes"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue("Presupuestos", tt.cell)
		if err != nil {
			t.Fatalf("read %s: %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestWorkbookEmptyArchive(t *testing.T) {
	g := NewGenerator()

	content, err := g.Workbook(nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Presupuestos", "A1")
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if got != "Número" {
		t.Errorf("header = %q, want Número", got)
	}
}
