package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		sequence_number VARCHAR(16) NOT NULL,
		client_name TEXT NOT NULL,
		client_rif TEXT NOT NULL DEFAULT '',
		client_address TEXT NOT NULL DEFAULT '',
		company_name TEXT NOT NULL DEFAULT '',
		company_rif TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		budget_date DATE NOT NULL,
		line_items JSONB NOT NULL DEFAULT '[]',
		tax_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		subtotal NUMERIC(18,4) NOT NULL,
		tax NUMERIC(18,4) NOT NULL,
		total NUMERIC(18,4) NOT NULL,
		currency VARCHAR(8) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_budgets_sequence_number ON budgets (sequence_number);`,
	`CREATE INDEX IF NOT EXISTS idx_budgets_created_at ON budgets (created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_budgets_client_name ON budgets (LOWER(client_name));`,
	`CREATE TABLE IF NOT EXISTS currency_settings (
		singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
		active_currency VARCHAR(8) NOT NULL,
		rate NUMERIC(18,6) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS cost_sheets (
		singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
		materials JSONB NOT NULL DEFAULT '[]',
		labor_cost NUMERIC(18,4) NOT NULL DEFAULT 0,
		overhead NUMERIC(18,4) NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
