package model

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyVES Currency = "VES"
)

// CurrencySettings is the single process-wide display currency record.
// Rate is units of VES per one USD.
type CurrencySettings struct {
	ActiveCurrency Currency `json:"active_currency"`
	Rate           float64  `json:"rate"`
}
