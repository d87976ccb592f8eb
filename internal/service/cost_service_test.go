package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vifordpro/budget-service/internal/model"
)

func newCostService(settings *fakeSettingsRepo) *CostService {
	return NewCostService(settings, &fakeNotifier{}, testConfig(), zerolog.Nop())
}

func TestCostGetSheetEmptyByDefault(t *testing.T) {
	svc := newCostService(&fakeSettingsRepo{})

	sheet, err := svc.GetSheet(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(sheet.Materials) != 0 || sheet.LaborCost != 0 || sheet.Overhead != 0 {
		t.Fatalf("default sheet not empty: %+v", sheet)
	}
}

func TestCostSaveSheetComputesMaterialTotals(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := newCostService(repo)

	saved, err := svc.SaveSheet(context.Background(), model.CostSheet{
		Materials: []model.Material{
			{Name: "Alambre", UnitCost: 25, Unit: "rollo", QuantityNeeded: 4},
			{Name: "Tubo", UnitCost: 10, Unit: "unidad", QuantityNeeded: 10},
		},
		LaborCost: 50,
		Overhead:  30,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if saved.Materials[0].TotalCost != 100 {
		t.Errorf("material[0] total = %v, want 100", saved.Materials[0].TotalCost)
	}
	if saved.Materials[1].TotalCost != 100 {
		t.Errorf("material[1] total = %v, want 100", saved.Materials[1].TotalCost)
	}
	for i, m := range saved.Materials {
		if m.ID == uuid.Nil {
			t.Errorf("material[%d] missing id", i)
		}
	}
}

func TestCostSaveSheetRejectsNegatives(t *testing.T) {
	tests := []struct {
		name  string
		sheet model.CostSheet
	}{
		{name: "negative labor", sheet: model.CostSheet{LaborCost: -1}},
		{name: "negative overhead", sheet: model.CostSheet{Overhead: -1}},
		{
			name: "negative material cost",
			sheet: model.CostSheet{
				Materials: []model.Material{{Name: "Alambre", UnitCost: -5, QuantityNeeded: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newCostService(&fakeSettingsRepo{})
			_, err := svc.SaveSheet(context.Background(), tt.sheet)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCostSummary(t *testing.T) {
	repo := &fakeSettingsRepo{
		sheet: &model.CostSheet{
			Materials: []model.Material{
				{ID: uuid.New(), Name: "Alambre", UnitCost: 100, QuantityNeeded: 2, TotalCost: 200},
			},
			LaborCost: 50,
			Overhead:  30,
		},
	}
	svc := newCostService(repo)

	items := []model.LineItem{
		{Name: "Malla", UnitPrice: 500, UnitMode: model.UnitModePiece, Quantity: 1, Total: 500},
	}
	summary, err := svc.Summary(context.Background(), items)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.TotalProductValue != 500 {
		t.Errorf("product value = %v, want 500", summary.TotalProductValue)
	}
	if summary.TotalCost != 280 {
		t.Errorf("total cost = %v, want 280", summary.TotalCost)
	}
	if summary.Profit != 220 {
		t.Errorf("profit = %v, want 220", summary.Profit)
	}
	if math.Abs(summary.ProfitMargin-44) > 1e-9 {
		t.Errorf("margin = %v, want 44", summary.ProfitMargin)
	}
}

func TestCostSummaryEmptyCart(t *testing.T) {
	repo := &fakeSettingsRepo{
		sheet: &model.CostSheet{LaborCost: 100},
	}
	svc := newCostService(repo)

	summary, err := svc.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.ProfitMargin != 0 {
		t.Errorf("margin = %v, want 0 for empty cart", summary.ProfitMargin)
	}
	if summary.Profit != -100 {
		t.Errorf("profit = %v, want -100", summary.Profit)
	}
}
