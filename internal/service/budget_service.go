package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/vifordpro/budget-service/internal/config"
	"github.com/vifordpro/budget-service/internal/currency"
	"github.com/vifordpro/budget-service/internal/model"
	"github.com/vifordpro/budget-service/internal/pricing"
)

// BudgetRepository is the archive of saved budgets.
type BudgetRepository interface {
	ListAll(ctx context.Context) ([]model.Budget, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Budget, error)
	Create(ctx context.Context, budget model.Budget) error
	Update(ctx context.Context, budget model.Budget) error
	Delete(ctx context.Context, id uuid.UUID) error
	SequenceNumbers(ctx context.Context) ([]string, error)
}

// SettingsRepository persists the currency singleton.
type SettingsRepository interface {
	GetCurrency(ctx context.Context) (*model.CurrencySettings, error)
	SaveCurrency(ctx context.Context, settings model.CurrencySettings) error
	GetCostSheet(ctx context.Context) (*model.CostSheet, error)
	SaveCostSheet(ctx context.Context, sheet model.CostSheet) error
}

// DocumentGenerator renders a budget (or its delivery note) as a PDF.
type DocumentGenerator interface {
	Budget(budget model.Budget) ([]byte, error)
	DeliveryNote(budget model.Budget, transport model.TransportData) ([]byte, error)
}

// ImageGenerator renders a budget summary as a PNG snapshot.
type ImageGenerator interface {
	Budget(budget model.Budget) ([]byte, error)
}

// ArchiveGenerator renders the whole archive as a workbook.
type ArchiveGenerator interface {
	Workbook(budgets []model.Budget) ([]byte, error)
}

type BudgetService struct {
	budgets  BudgetRepository
	settings SettingsRepository
	pdf      DocumentGenerator
	img      ImageGenerator
	excel    ArchiveGenerator
	notifier Notifier
	cfg      *config.Config
	log      zerolog.Logger
}

func NewBudgetService(
	budgets BudgetRepository,
	settings SettingsRepository,
	pdf DocumentGenerator,
	img ImageGenerator,
	excel ArchiveGenerator,
	notifier Notifier,
	cfg *config.Config,
	log zerolog.Logger,
) *BudgetService {
	return &BudgetService{
		budgets:  budgets,
		settings: settings,
		pdf:      pdf,
		img:      img,
		excel:    excel,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
	}
}

// SaveIntent distinguishes a first save from an in-place edit. It is
// resolved exactly once, in SaveBudget; nothing downstream branches on
// optional-field presence.
type SaveIntent struct {
	update bool
	id     uuid.UUID
}

func CreateIntent() SaveIntent {
	return SaveIntent{}
}

func UpdateIntent(id uuid.UUID) SaveIntent {
	return SaveIntent{update: true, id: id}
}

// SaveBudgetInput is the cart plus the form metadata.
type SaveBudgetInput struct {
	ClientName    string
	ClientRIF     string
	ClientAddress string
	CompanyName   string
	CompanyRIF    string
	Notes         string
	Items         []model.LineItem
	TaxEnabled    bool
}

// ExportResult is a generated artifact ready for download or sharing.
type ExportResult struct {
	FileName string
	Content  []byte
}

// SaveBudget validates the input, prices the totals against the current
// currency snapshot and persists the budget. Validation happens before any
// state change; a budget that fails it never reaches the archive.
func (s *BudgetService) SaveBudget(ctx context.Context, input SaveBudgetInput, intent SaveIntent) (*model.Budget, error) {
	if strings.TrimSpace(input.ClientName) == "" {
		s.notifier.Notify("Error", "El nombre del cliente es requerido", SeverityError)
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		s.notifier.Notify("Error", "Debe agregar al menos un producto", SeverityError)
		return nil, fmt.Errorf("%w: budget needs at least one line item", ErrInvalidInput)
	}

	items, err := snapshotItems(input.Items)
	if err != nil {
		s.notifier.Notify("Error", "Por favor completa todos los campos", SeverityError)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	snap := s.currencySnapshot(ctx)
	subtotal := pricing.CartValue(items, snap)
	tax := pricing.TaxOn(subtotal, input.TaxEnabled, s.cfg.Pricing.TaxRate)

	budget := model.Budget{
		ClientName:    strings.TrimSpace(input.ClientName),
		ClientRIF:     strings.TrimSpace(input.ClientRIF),
		ClientAddress: strings.TrimSpace(input.ClientAddress),
		CompanyName:   input.CompanyName,
		CompanyRIF:    input.CompanyRIF,
		Notes:         input.Notes,
		LineItems:     items,
		TaxEnabled:    input.TaxEnabled,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal + tax,
		Currency:      snap.Code,
	}
	if budget.CompanyName == "" {
		budget.CompanyName = s.cfg.Company.Name
	}
	if budget.CompanyRIF == "" {
		budget.CompanyRIF = s.cfg.Company.RIF
	}

	if intent.update {
		return s.updateBudget(ctx, budget, intent.id)
	}
	return s.createBudget(ctx, budget)
}

func (s *BudgetService) createBudget(ctx context.Context, budget model.Budget) (*model.Budget, error) {
	numbers, err := s.budgets.SequenceNumbers(ctx)
	if err != nil {
		s.notifier.Notify("Error", "No se pudo guardar el presupuesto", SeverityError)
		return nil, fmt.Errorf("%w: read sequence numbers: %v", ErrStorage, err)
	}

	now := time.Now()
	budget.ID = uuid.New()
	budget.SequenceNumber = NextSequenceNumber(numbers)
	budget.Date = now
	budget.CreatedAt = now

	if err := s.budgets.Create(ctx, budget); err != nil {
		s.notifier.Notify("Error", "No se pudo guardar el presupuesto", SeverityError)
		return nil, fmt.Errorf("%w: create budget: %v", ErrStorage, err)
	}

	s.log.Info().
		Str("budget_id", budget.ID.String()).
		Str("sequence", budget.SequenceNumber).
		Msg("budget created")
	s.notifier.Notify("Presupuesto guardado",
		fmt.Sprintf("Presupuesto N° %s para %s guardado exitosamente", budget.SequenceNumber, budget.ClientName),
		SeverityInfo)
	return &budget, nil
}

func (s *BudgetService) updateBudget(ctx context.Context, budget model.Budget, id uuid.UUID) (*model.Budget, error) {
	existing, err := s.budgets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load budget: %v", ErrStorage, err)
	}

	// Editing keeps the identity: same id, same number, same date, same
	// position in the archive.
	budget.ID = existing.ID
	budget.SequenceNumber = existing.SequenceNumber
	budget.Date = existing.Date
	budget.CreatedAt = existing.CreatedAt

	if err := s.budgets.Update(ctx, budget); err != nil {
		s.notifier.Notify("Error", "No se pudo guardar el presupuesto", SeverityError)
		return nil, fmt.Errorf("%w: update budget: %v", ErrStorage, err)
	}

	s.log.Info().
		Str("budget_id", budget.ID.String()).
		Str("sequence", budget.SequenceNumber).
		Msg("budget updated")
	s.notifier.Notify("Presupuesto actualizado",
		fmt.Sprintf("Presupuesto N° %s actualizado exitosamente", budget.SequenceNumber),
		SeverityInfo)
	return &budget, nil
}

// ListBudgets returns the archive, newest save first. An unreadable store
// degrades to an empty archive rather than failing.
func (s *BudgetService) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	budgets, err := s.budgets.ListAll(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("archive unreadable, treating as empty")
		return []model.Budget{}, nil
	}
	return budgets, nil
}

// SearchBudgets filters the archive by a case-insensitive substring over
// client name, client RIF, company name, company RIF and the save date,
// preserving archive order.
func (s *BudgetService) SearchBudgets(ctx context.Context, term string) ([]model.Budget, error) {
	budgets, err := s.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return budgets, nil
	}

	matched := make([]model.Budget, 0, len(budgets))
	for _, budget := range budgets {
		if matchesSearch(budget, term) {
			matched = append(matched, budget)
		}
	}
	return matched, nil
}

func (s *BudgetService) GetBudget(ctx context.Context, id uuid.UUID) (*model.Budget, error) {
	budget, err := s.budgets.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load budget: %v", ErrStorage, err)
	}
	return budget, nil
}

// DeleteBudget removes a budget from the archive. Unknown ids are a no-op.
func (s *BudgetService) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	if err := s.budgets.Delete(ctx, id); err != nil {
		s.notifier.Notify("Error", "No se pudo eliminar el presupuesto", SeverityError)
		return fmt.Errorf("%w: delete budget: %v", ErrStorage, err)
	}
	s.notifier.Notify("Presupuesto eliminado", "El presupuesto ha sido eliminado exitosamente", SeverityInfo)
	return nil
}

// ShareText builds the plain-text summary handed to the platform share
// sheet or clipboard when no richer export is available.
func (s *BudgetService) ShareText(ctx context.Context, id uuid.UUID) (string, error) {
	budget, err := s.GetBudget(ctx, id)
	if err != nil {
		return "", err
	}
	return BuildShareText(*budget), nil
}

// ExportPDF renders a budget document. Export failures are reported and
// never touch archive state.
func (s *BudgetService) ExportPDF(ctx context.Context, id uuid.UUID) (*ExportResult, error) {
	budget, err := s.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Budget(*budget)
	if err != nil {
		s.notifier.Notify("Error", "No se pudo generar el PDF", SeverityError)
		return nil, fmt.Errorf("generate budget pdf: %w", err)
	}
	return &ExportResult{
		FileName: exportFileName("presupuesto", *budget, "pdf"),
		Content:  content,
	}, nil
}

// ExportImage renders a budget snapshot as a PNG.
func (s *BudgetService) ExportImage(ctx context.Context, id uuid.UUID) (*ExportResult, error) {
	budget, err := s.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.img.Budget(*budget)
	if err != nil {
		s.notifier.Notify("Error", "No se pudo generar la imagen", SeverityError)
		return nil, fmt.Errorf("generate budget image: %w", err)
	}
	return &ExportResult{
		FileName: exportFileName("presupuesto", *budget, "png"),
		Content:  content,
	}, nil
}

// DeliveryNote renders the delivery note for a budget with the given
// transport data.
func (s *BudgetService) DeliveryNote(ctx context.Context, id uuid.UUID, transport model.TransportData) (*ExportResult, error) {
	budget, err := s.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.DeliveryNote(*budget, transport)
	if err != nil {
		s.notifier.Notify("Error", "No se pudo generar la nota de entrega", SeverityError)
		return nil, fmt.Errorf("generate delivery note: %w", err)
	}
	return &ExportResult{
		FileName: exportFileName("nota-entrega", *budget, "pdf"),
		Content:  content,
	}, nil
}

// ExportArchive renders the whole archive as a workbook.
func (s *BudgetService) ExportArchive(ctx context.Context) (*ExportResult, error) {
	budgets, err := s.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Workbook(budgets)
	if err != nil {
		s.notifier.Notify("Error", "No se pudo exportar el historial", SeverityError)
		return nil, fmt.Errorf("generate archive workbook: %w", err)
	}
	return &ExportResult{
		FileName: fmt.Sprintf("presupuestos-%s.xlsx", time.Now().Format("20060102")),
		Content:  content,
	}, nil
}

// currencySnapshot reads the persisted display currency, falling back to
// the configured defaults when nothing has been stored yet.
func (s *BudgetService) currencySnapshot(ctx context.Context) currency.Snapshot {
	settings, err := s.settings.GetCurrency(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Err(err).Msg("currency settings unreadable, using defaults")
		}
		return currency.Snapshot{Code: model.CurrencyUSD, Rate: s.cfg.Pricing.FallbackRate}
	}
	return currency.Snapshot{Code: settings.ActiveCurrency, Rate: settings.Rate}
}

// NextSequenceNumber derives the next budget number from the numbers
// already assigned: max + 1, zero-padded to four digits. Non-numeric
// entries count as 0 rather than being skipped, so corrupt data can never
// resurrect a stale maximum.
func NextSequenceNumber(existing []string) string {
	maxSeq := 0
	for _, raw := range existing {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			n = 0
		}
		if n > maxSeq {
			maxSeq = n
		}
	}
	return fmt.Sprintf("%04d", maxSeq+1)
}

// snapshotItems deep-copies the cart so later mutation of the live cart
// cannot alter the saved budget. Items keep their frozen totals; an item
// arriving unpriced is priced now, and every item is validated.
func snapshotItems(items []model.LineItem) ([]model.LineItem, error) {
	copied := make([]model.LineItem, len(items))
	for i, item := range items {
		total, err := pricing.ItemTotal(pricing.ItemInput{
			Name:      item.Name,
			Width:     item.Width,
			Height:    item.Height,
			UnitPrice: item.UnitPrice,
			UnitMode:  item.UnitMode,
			Quantity:  item.Quantity,
		})
		if err != nil {
			return nil, err
		}
		if item.Total == 0 {
			item.Total = total
		}
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		copied[i] = item
	}
	return copied, nil
}

func matchesSearch(budget model.Budget, term string) bool {
	term = strings.ToLower(term)
	fields := []string{
		budget.ClientName,
		budget.ClientRIF,
		budget.CompanyName,
		budget.CompanyRIF,
		budget.DateLabel(),
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func exportFileName(prefix string, budget model.Budget, ext string) string {
	client := sanitizeFileName(budget.ClientName)
	if client == "" {
		client = budget.ID.String()
	}
	return fmt.Sprintf("%s-%s-%s.%s", prefix, budget.SequenceNumber, client, ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
