package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/vifordpro/budget-service/internal/config"
	"github.com/vifordpro/budget-service/internal/model"
)

// CurrencyService owns the display currency singleton: default until the
// operator changes it, persisted on every mutation.
type CurrencyService struct {
	settings SettingsRepository
	notifier Notifier
	cfg      *config.Config
	log      zerolog.Logger
}

func NewCurrencyService(settings SettingsRepository, notifier Notifier, cfg *config.Config, log zerolog.Logger) *CurrencyService {
	return &CurrencyService{settings: settings, notifier: notifier, cfg: cfg, log: log}
}

// Get returns the persisted currency state, or the defaults when nothing
// has been stored yet.
func (s *CurrencyService) Get(ctx context.Context) (model.CurrencySettings, error) {
	settings, err := s.settings.GetCurrency(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Err(err).Msg("currency settings unreadable, using defaults")
		}
		return model.CurrencySettings{
			ActiveCurrency: model.CurrencyUSD,
			Rate:           s.cfg.Pricing.FallbackRate,
		}, nil
	}
	return *settings, nil
}

// Update changes the active currency and rate. The change is immediate and
// synchronous; saved budgets keep their own snapshots.
func (s *CurrencyService) Update(ctx context.Context, code model.Currency, rate float64) (model.CurrencySettings, error) {
	if code != model.CurrencyUSD && code != model.CurrencyVES {
		return model.CurrencySettings{}, fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, code)
	}
	if rate <= 0 {
		return model.CurrencySettings{}, fmt.Errorf("%w: exchange rate must be positive", ErrInvalidInput)
	}

	settings := model.CurrencySettings{ActiveCurrency: code, Rate: rate}
	if err := s.settings.SaveCurrency(ctx, settings); err != nil {
		s.notifier.Notify("Error", "No se pudo guardar la configuración de moneda", SeverityError)
		return model.CurrencySettings{}, fmt.Errorf("%w: save currency settings: %v", ErrStorage, err)
	}

	s.log.Info().Str("currency", string(code)).Float64("rate", rate).Msg("currency settings updated")
	return settings, nil
}
