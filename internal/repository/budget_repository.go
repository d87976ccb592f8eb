package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vifordpro/budget-service/internal/model"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// budgetRow mirrors the budgets table; line items travel as a JSONB snapshot
// so a budget is always written and read back as one unit.
type budgetRow struct {
	ID             uuid.UUID
	SequenceNumber string
	ClientName     string
	ClientRIF      string `gorm:"column:client_rif"`
	ClientAddress  string
	CompanyName    string
	CompanyRIF     string `gorm:"column:company_rif"`
	Notes          string
	BudgetDate     time.Time
	LineItems      []byte
	TaxEnabled     bool
	Subtotal       float64
	Tax            float64
	Total          float64
	Currency       string
	CreatedAt      time.Time
}

const budgetColumns = `
	id,
	sequence_number,
	client_name,
	client_rif,
	client_address,
	company_name,
	company_rif,
	notes,
	budget_date,
	line_items,
	tax_enabled,
	subtotal,
	tax,
	total,
	currency,
	created_at
`

// ListAll returns every saved budget, newest save first. Edits do not move a
// budget because created_at is fixed at first save.
func (r *BudgetRepository) ListAll(ctx context.Context) ([]model.Budget, error) {
	var rows []budgetRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+budgetColumns+`
		FROM budgets
		ORDER BY created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	budgets := make([]model.Budget, 0, len(rows))
	for _, row := range rows {
		budget, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("decode budget %s: %w", row.ID, err)
		}
		budgets = append(budgets, budget)
	}
	return budgets, nil
}

func (r *BudgetRepository) Get(ctx context.Context, id uuid.UUID) (*model.Budget, error) {
	var row budgetRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	budget, err := row.toModel()
	if err != nil {
		return nil, fmt.Errorf("decode budget %s: %w", row.ID, err)
	}
	return &budget, nil
}

func (r *BudgetRepository) Create(ctx context.Context, budget model.Budget) error {
	items, err := json.Marshal(budget.LineItems)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO budgets (
			id,
			sequence_number,
			client_name,
			client_rif,
			client_address,
			company_name,
			company_rif,
			notes,
			budget_date,
			line_items,
			tax_enabled,
			subtotal,
			tax,
			total,
			currency,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		budget.ID,
		budget.SequenceNumber,
		budget.ClientName,
		budget.ClientRIF,
		budget.ClientAddress,
		budget.CompanyName,
		budget.CompanyRIF,
		budget.Notes,
		budget.Date,
		items,
		budget.TaxEnabled,
		budget.Subtotal,
		budget.Tax,
		budget.Total,
		string(budget.Currency),
		budget.CreatedAt,
	).Error
}

// Update rewrites a budget in place. sequence_number, budget_date and
// created_at stay untouched so editing never renumbers or reorders.
func (r *BudgetRepository) Update(ctx context.Context, budget model.Budget) error {
	items, err := json.Marshal(budget.LineItems)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec(`
		UPDATE budgets
		SET
			client_name = ?,
			client_rif = ?,
			client_address = ?,
			company_name = ?,
			company_rif = ?,
			notes = ?,
			line_items = ?,
			tax_enabled = ?,
			subtotal = ?,
			tax = ?,
			total = ?,
			currency = ?
		WHERE id = ?
	`,
		budget.ClientName,
		budget.ClientRIF,
		budget.ClientAddress,
		budget.CompanyName,
		budget.CompanyRIF,
		budget.Notes,
		items,
		budget.TaxEnabled,
		budget.Subtotal,
		budget.Tax,
		budget.Total,
		string(budget.Currency),
		budget.ID,
	).Error
}

// Delete removes a budget. Deleting an unknown id is a no-op.
func (r *BudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM budgets WHERE id = ?
	`, id).Error
}

// SequenceNumbers returns every sequence number ever assigned, for the
// scan-based next-number derivation.
func (r *BudgetRepository) SequenceNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT sequence_number FROM budgets
	`).Scan(&numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (row budgetRow) toModel() (model.Budget, error) {
	var items []model.LineItem
	if len(row.LineItems) > 0 {
		if err := json.Unmarshal(row.LineItems, &items); err != nil {
			return model.Budget{}, err
		}
	}
	return model.Budget{
		ID:             row.ID,
		SequenceNumber: row.SequenceNumber,
		ClientName:     row.ClientName,
		ClientRIF:      row.ClientRIF,
		ClientAddress:  row.ClientAddress,
		CompanyName:    row.CompanyName,
		CompanyRIF:     row.CompanyRIF,
		Notes:          row.Notes,
		Date:           row.BudgetDate,
		LineItems:      items,
		TaxEnabled:     row.TaxEnabled,
		Subtotal:       row.Subtotal,
		Tax:            row.Tax,
		Total:          row.Total,
		Currency:       model.Currency(row.Currency),
		CreatedAt:      row.CreatedAt,
	}, nil
}
