package model

import "github.com/google/uuid"

type UnitMode string

const (
	// UnitModeArea prices by width × height × unit price × quantity.
	UnitModeArea UnitMode = "area"
	// UnitModePiece prices by unit price × quantity.
	UnitModePiece UnitMode = "piece"
)

// LineItem is one priced material entry in the quote cart. Total is computed
// once when the item is priced and never recomputed afterwards, so a saved
// budget keeps the amounts the operator actually quoted.
type LineItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	UnitPrice float64   `json:"unit_price"`
	UnitMode  UnitMode  `json:"unit_mode"`
	Quantity  int       `json:"quantity"`
	Total     float64   `json:"total"`
}
