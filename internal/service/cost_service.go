package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/vifordpro/budget-service/internal/config"
	"github.com/vifordpro/budget-service/internal/currency"
	"github.com/vifordpro/budget-service/internal/model"
	"github.com/vifordpro/budget-service/internal/pricing"
)

// CostService owns the internal costing worksheet: a single persisted
// record, independent of any saved budget.
type CostService struct {
	settings SettingsRepository
	notifier Notifier
	cfg      *config.Config
	log      zerolog.Logger
}

func NewCostService(settings SettingsRepository, notifier Notifier, cfg *config.Config, log zerolog.Logger) *CostService {
	return &CostService{settings: settings, notifier: notifier, cfg: cfg, log: log}
}

// GetSheet loads the worksheet, degrading to an empty one when nothing has
// been stored or the stored record is unreadable.
func (s *CostService) GetSheet(ctx context.Context) (model.CostSheet, error) {
	sheet, err := s.settings.GetCostSheet(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Err(err).Msg("cost sheet unreadable, treating as empty")
		}
		return model.CostSheet{Materials: []model.Material{}}, nil
	}
	return *sheet, nil
}

// SaveSheet persists the worksheet verbatim, recomputing each material's
// derived total and assigning ids to new materials.
func (s *CostService) SaveSheet(ctx context.Context, sheet model.CostSheet) (model.CostSheet, error) {
	if sheet.LaborCost < 0 || sheet.Overhead < 0 {
		return model.CostSheet{}, fmt.Errorf("%w: labor cost and overhead cannot be negative", ErrInvalidInput)
	}
	for i := range sheet.Materials {
		m := &sheet.Materials[i]
		if m.UnitCost < 0 || m.QuantityNeeded < 0 {
			return model.CostSheet{}, fmt.Errorf("%w: material cost and quantity cannot be negative", ErrInvalidInput)
		}
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		m.TotalCost = pricing.MaterialTotal(m.UnitCost, m.QuantityNeeded)
	}

	if err := s.settings.SaveCostSheet(ctx, sheet); err != nil {
		s.notifier.Notify("Error", "No se pudieron guardar los costos", SeverityError)
		return model.CostSheet{}, fmt.Errorf("%w: save cost sheet: %v", ErrStorage, err)
	}
	s.notifier.Notify("Costos guardados", "Los costos han sido calculados y guardados", SeverityInfo)
	return sheet, nil
}

// Summary computes the margin view of the stored worksheet against the
// current cart, valued in the active display currency.
func (s *CostService) Summary(ctx context.Context, items []model.LineItem) (model.CostSummary, error) {
	sheet, err := s.GetSheet(ctx)
	if err != nil {
		return model.CostSummary{}, err
	}

	snap := s.snapshot(ctx)
	cartValue := pricing.CartValue(items, snap)
	return pricing.CostSummary(sheet, cartValue), nil
}

func (s *CostService) snapshot(ctx context.Context) currency.Snapshot {
	settings, err := s.settings.GetCurrency(ctx)
	if err != nil {
		return currency.Snapshot{Code: model.CurrencyUSD, Rate: s.cfg.Pricing.FallbackRate}
	}
	return currency.Snapshot{Code: settings.ActiveCurrency, Rate: settings.Rate}
}
