package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vifordpro/budget-service/internal/model"
)

func newCurrencyService(settings *fakeSettingsRepo) *CurrencyService {
	return NewCurrencyService(settings, &fakeNotifier{}, testConfig(), zerolog.Nop())
}

func TestCurrencyGetDefaults(t *testing.T) {
	svc := newCurrencyService(&fakeSettingsRepo{})

	settings, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.ActiveCurrency != model.CurrencyUSD {
		t.Errorf("default currency = %q, want USD", settings.ActiveCurrency)
	}
	if settings.Rate != 36.5 {
		t.Errorf("default rate = %v, want 36.5", settings.Rate)
	}
}

func TestCurrencyUpdateRoundTrip(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := newCurrencyService(repo)
	ctx := context.Background()

	if _, err := svc.Update(ctx, model.CurrencyVES, 40.25); err != nil {
		t.Fatalf("update: %v", err)
	}

	settings, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.ActiveCurrency != model.CurrencyVES || settings.Rate != 40.25 {
		t.Fatalf("settings = %+v, want VES @ 40.25", settings)
	}
}

func TestCurrencyUpdateValidation(t *testing.T) {
	tests := []struct {
		name string
		code model.Currency
		rate float64
	}{
		{name: "unknown currency", code: "EUR", rate: 1},
		{name: "zero rate", code: model.CurrencyVES, rate: 0},
		{name: "negative rate", code: model.CurrencyUSD, rate: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newCurrencyService(&fakeSettingsRepo{})
			_, err := svc.Update(context.Background(), tt.code, tt.rate)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
