package currency

import (
	"fmt"
	"strings"

	"github.com/vifordpro/budget-service/internal/model"
)

// DefaultRate is the fallback VES-per-USD rate used until the operator sets
// a live one.
const DefaultRate = 36.5

// Snapshot is a point-in-time copy of the display currency state. Pricing
// and aggregation functions take it explicitly instead of reading a shared
// global, so a rate change mid-edit cannot alter amounts already captured.
type Snapshot struct {
	Code model.Currency
	Rate float64
}

// Default returns the snapshot used when no settings have been persisted yet.
func Default() Snapshot {
	return Snapshot{Code: model.CurrencyUSD, Rate: DefaultRate}
}

// Convert translates an amount from the given currency into the snapshot's
// display currency. Identity when the currencies match.
func (s Snapshot) Convert(amount float64, from model.Currency) float64 {
	if from == s.Code {
		return amount
	}
	switch {
	case from == model.CurrencyUSD && s.Code == model.CurrencyVES:
		return amount * s.Rate
	case from == model.CurrencyVES && s.Code == model.CurrencyUSD:
		return amount / s.Rate
	}
	return amount
}

// Format renders an amount in the snapshot's display currency.
func (s Snapshot) Format(amount float64) string {
	return FormatIn(s.Code, amount)
}

// FormatIn renders an amount in the given currency: symbol-prefixed with
// en-US grouping for USD, literal "Bs. " prefix with es-VE grouping for VES.
// Both use exactly two decimals. Rounding happens only here, at display time.
func FormatIn(code model.Currency, amount float64) string {
	switch code {
	case model.CurrencyVES:
		return "Bs. " + formatGrouped(amount, ".", ",")
	default:
		return "$" + formatGrouped(amount, ",", ".")
	}
}

// formatGrouped formats with two decimals, inserting thousands separators
// every three digits of the integer part.
func formatGrouped(amount float64, thousands, decimal string) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	result := strings.Join(groups, thousands) + decimal + decPart
	if negative {
		result = "-" + result
	}
	return result
}
