package currency

import (
	"math"
	"testing"

	"github.com/vifordpro/budget-service/internal/model"
)

func TestSnapshotConvert(t *testing.T) {
	tests := []struct {
		name   string
		snap   Snapshot
		amount float64
		from   model.Currency
		expect float64
	}{
		{"identity usd", Snapshot{model.CurrencyUSD, 36.5}, 100, model.CurrencyUSD, 100},
		{"identity ves", Snapshot{model.CurrencyVES, 36.5}, 250, model.CurrencyVES, 250},
		{"usd to ves", Snapshot{model.CurrencyVES, 36.5}, 100, model.CurrencyUSD, 3650},
		{"ves to usd", Snapshot{model.CurrencyUSD, 36.5}, 3650, model.CurrencyVES, 100},
		{"zero amount", Snapshot{model.CurrencyVES, 36.5}, 0, model.CurrencyUSD, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.snap.Convert(tt.amount, tt.from)
			if got != tt.expect {
				t.Errorf("Convert(%v, %v) = %v, want %v", tt.amount, tt.from, got, tt.expect)
			}
		})
	}
}

func TestSnapshotConvertRoundTrip(t *testing.T) {
	rates := []float64{36.5, 1, 0.5, 123.456}
	amounts := []float64{100, 0.01, 99999.99, 3}

	for _, rate := range rates {
		for _, amount := range amounts {
			toUSD := Snapshot{Code: model.CurrencyUSD, Rate: rate}
			toVES := Snapshot{Code: model.CurrencyVES, Rate: rate}

			back := toVES.Convert(toUSD.Convert(amount, model.CurrencyVES), model.CurrencyUSD)
			if math.Abs(back-amount) > 1e-9*math.Max(1, amount) {
				t.Errorf("rate %v: round trip of %v = %v", rate, amount, back)
			}
		}
	}
}

func TestFormatIn(t *testing.T) {
	tests := []struct {
		name   string
		code   model.Currency
		amount float64
		expect string
	}{
		{"usd small", model.CurrencyUSD, 5, "$5.00"},
		{"usd grouped", model.CurrencyUSD, 3650, "$3,650.00"},
		{"usd millions", model.CurrencyUSD, 1234567.891, "$1,234,567.89"},
		{"usd negative", model.CurrencyUSD, -42.5, "-$42.50"},
		{"ves small", model.CurrencyVES, 5, "Bs. 5,00"},
		{"ves grouped", model.CurrencyVES, 3650, "Bs. 3.650,00"},
		{"ves millions", model.CurrencyVES, 1234567.891, "Bs. 1.234.567,89"},
		{"zero", model.CurrencyUSD, 0, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatIn(tt.code, tt.amount)
			if got != tt.expect {
				t.Errorf("FormatIn(%v, %v) = %q, want %q", tt.code, tt.amount, got, tt.expect)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	snap := Default()
	if snap.Code != model.CurrencyUSD {
		t.Errorf("default currency = %v, want USD", snap.Code)
	}
	if snap.Rate != 36.5 {
		t.Errorf("default rate = %v, want 36.5", snap.Rate)
	}
}
