package model

import (
	"time"

	"github.com/google/uuid"
)

// Budget is a saved, numbered client quotation snapshot ("presupuesto").
// LineItems are copied at save time; all monetary fields are denominated in
// Currency, the display currency active when the budget was saved.
type Budget struct {
	ID             uuid.UUID  `json:"id"`
	SequenceNumber string     `json:"sequence_number"`
	ClientName     string     `json:"client_name"`
	ClientRIF      string     `json:"client_rif"`
	ClientAddress  string     `json:"client_address"`
	CompanyName    string     `json:"company_name"`
	CompanyRIF     string     `json:"company_rif"`
	Notes          string     `json:"notes"`
	Date           time.Time  `json:"date"`
	LineItems      []LineItem `json:"line_items"`
	TaxEnabled     bool       `json:"tax_enabled"`
	Subtotal       float64    `json:"subtotal"`
	Tax            float64    `json:"tax"`
	Total          float64    `json:"total"`
	Currency       Currency   `json:"currency"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DateLabel is the display form of the save date, also the form the archive
// search matches against.
func (b Budget) DateLabel() string {
	return b.Date.Format("02/01/2006")
}
