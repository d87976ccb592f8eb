package model

import "github.com/google/uuid"

// Material is one entry of the internal costing worksheet.
type Material struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	UnitCost       float64   `json:"unit_cost"`
	Unit           string    `json:"unit"`
	QuantityNeeded float64   `json:"quantity_needed"`
	TotalCost      float64   `json:"total_cost"`
}

// CostSheet is the process-wide costing singleton. It is persisted verbatim,
// has no history, and is not linked to any saved budget.
type CostSheet struct {
	Materials []Material `json:"materials"`
	LaborCost float64    `json:"labor_cost"`
	Overhead  float64    `json:"overhead"`
	Notes     string     `json:"notes"`
}

// CostSummary is the derived margin view over the cost sheet and the value
// of the current cart.
type CostSummary struct {
	TotalProductValue float64 `json:"total_product_value"`
	TotalMaterialCost float64 `json:"total_material_cost"`
	LaborCost         float64 `json:"labor_cost"`
	Overhead          float64 `json:"overhead"`
	TotalCost         float64 `json:"total_cost"`
	Profit            float64 `json:"profit"`
	ProfitMargin      float64 `json:"profit_margin"`
}
