package repository

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/vifordpro/budget-service/internal/model"
)

// SettingsRepository persists the two singleton records: the display
// currency state and the internal costing worksheet.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) GetCurrency(ctx context.Context) (*model.CurrencySettings, error) {
	var row struct {
		ActiveCurrency string
		Rate           float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT active_currency, rate
		FROM currency_settings
		LIMIT 1
	`).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ActiveCurrency == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.CurrencySettings{
		ActiveCurrency: model.Currency(row.ActiveCurrency),
		Rate:           row.Rate,
	}, nil
}

func (r *SettingsRepository) SaveCurrency(ctx context.Context, settings model.CurrencySettings) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO currency_settings (singleton, active_currency, rate, updated_at)
		VALUES (TRUE, ?, ?, NOW())
		ON CONFLICT (singleton) DO UPDATE
		SET active_currency = EXCLUDED.active_currency,
			rate = EXCLUDED.rate,
			updated_at = NOW()
	`, string(settings.ActiveCurrency), settings.Rate).Error
}

func (r *SettingsRepository) GetCostSheet(ctx context.Context) (*model.CostSheet, error) {
	var row struct {
		Materials []byte
		LaborCost float64
		Overhead  float64
		Notes     string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT materials, labor_cost, overhead, notes
		FROM cost_sheets
		LIMIT 1
	`).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if len(row.Materials) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var materials []model.Material
	if err := json.Unmarshal(row.Materials, &materials); err != nil {
		return nil, err
	}
	return &model.CostSheet{
		Materials: materials,
		LaborCost: row.LaborCost,
		Overhead:  row.Overhead,
		Notes:     row.Notes,
	}, nil
}

func (r *SettingsRepository) SaveCostSheet(ctx context.Context, sheet model.CostSheet) error {
	materials := sheet.Materials
	if materials == nil {
		materials = []model.Material{}
	}
	encoded, err := json.Marshal(materials)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO cost_sheets (singleton, materials, labor_cost, overhead, notes, updated_at)
		VALUES (TRUE, ?, ?, ?, ?, NOW())
		ON CONFLICT (singleton) DO UPDATE
		SET materials = EXCLUDED.materials,
			labor_cost = EXCLUDED.labor_cost,
			overhead = EXCLUDED.overhead,
			notes = EXCLUDED.notes,
			updated_at = NOW()
	`, encoded, sheet.LaborCost, sheet.Overhead, sheet.Notes).Error
}
