// Package pricing holds the pure computations behind line items and the
// internal costing worksheet.
package pricing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vifordpro/budget-service/internal/currency"
	"github.com/vifordpro/budget-service/internal/model"
)

// ErrInvalidItem marks a line item whose required fields are missing or
// non-positive.
var ErrInvalidItem = errors.New("invalid line item")

// ItemInput is the raw form data for one line item.
type ItemInput struct {
	Name      string
	Width     float64
	Height    float64
	UnitPrice float64
	UnitMode  model.UnitMode
	Quantity  int
}

// ItemTotal validates the input and computes the item total for its unit
// mode. No rounding is applied; rounding is a display concern.
func ItemTotal(in ItemInput) (float64, error) {
	if in.Quantity < 1 {
		return 0, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidItem)
	}
	if in.UnitPrice <= 0 {
		return 0, fmt.Errorf("%w: unit price must be positive", ErrInvalidItem)
	}

	switch in.UnitMode {
	case model.UnitModeArea:
		if in.Width <= 0 || in.Height <= 0 {
			return 0, fmt.Errorf("%w: width and height must be positive", ErrInvalidItem)
		}
		return in.Width * in.Height * in.UnitPrice * float64(in.Quantity), nil
	case model.UnitModePiece:
		return in.UnitPrice * float64(in.Quantity), nil
	default:
		return 0, fmt.Errorf("%w: unknown unit mode %q", ErrInvalidItem, in.UnitMode)
	}
}

// PriceItem builds a priced LineItem from raw input, assigning its id and
// freezing the total.
func PriceItem(in ItemInput) (model.LineItem, error) {
	total, err := ItemTotal(in)
	if err != nil {
		return model.LineItem{}, err
	}
	return model.LineItem{
		ID:        uuid.New(),
		Name:      in.Name,
		Width:     in.Width,
		Height:    in.Height,
		UnitPrice: in.UnitPrice,
		UnitMode:  in.UnitMode,
		Quantity:  in.Quantity,
		Total:     total,
	}, nil
}

// CartValue sums the frozen item totals converted into the snapshot's
// display currency. Item prices are entered in USD, the primary currency;
// per-item origin currencies are not tracked.
func CartValue(items []model.LineItem, snap currency.Snapshot) float64 {
	var sum float64
	for _, item := range items {
		sum += snap.Convert(item.Total, model.CurrencyUSD)
	}
	return sum
}

// TaxOn returns the tax line for a subtotal: subtotal × rate when enabled,
// zero otherwise.
func TaxOn(subtotal float64, enabled bool, rate float64) float64 {
	if !enabled {
		return 0
	}
	return subtotal * rate
}

// MaterialTotal is the derived cost of one worksheet material.
func MaterialTotal(unitCost, quantityNeeded float64) float64 {
	return unitCost * quantityNeeded
}

// CostSummary aggregates the cost sheet against the value of the current
// cart. ProfitMargin is zero when the cart has no value.
func CostSummary(sheet model.CostSheet, cartValue float64) model.CostSummary {
	var materials float64
	for _, m := range sheet.Materials {
		materials += m.TotalCost
	}

	totalCost := materials + sheet.LaborCost + sheet.Overhead
	profit := cartValue - totalCost

	summary := model.CostSummary{
		TotalProductValue: cartValue,
		TotalMaterialCost: materials,
		LaborCost:         sheet.LaborCost,
		Overhead:          sheet.Overhead,
		TotalCost:         totalCost,
		Profit:            profit,
	}
	if cartValue > 0 {
		summary.ProfitMargin = profit / cartValue * 100
	}
	return summary
}
