package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vifordpro/budget-service/internal/model"
	"github.com/vifordpro/budget-service/internal/pricing"
	"github.com/vifordpro/budget-service/internal/service"
)

type Handler struct {
	budgets  *service.BudgetService
	currency *service.CurrencyService
	costs    *service.CostService
	log      zerolog.Logger
}

func NewHandler(budgets *service.BudgetService, currency *service.CurrencyService, costs *service.CostService, log zerolog.Logger) *Handler {
	return &Handler{budgets: budgets, currency: currency, costs: costs, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/settings/currency", h.getCurrency)
	protected.PUT("/settings/currency", h.updateCurrency)

	protected.POST("/items/price", h.priceItem)

	protected.GET("/budgets", h.listBudgets)
	protected.POST("/budgets", h.createBudget)
	protected.GET("/budgets/export/xlsx", h.exportArchive)
	protected.GET("/budgets/:id", h.getBudget)
	protected.PUT("/budgets/:id", h.updateBudget)
	protected.DELETE("/budgets/:id", h.deleteBudget)
	protected.GET("/budgets/:id/share-text", h.shareText)
	protected.GET("/budgets/:id/export/pdf", h.exportPDF)
	protected.GET("/budgets/:id/export/image", h.exportImage)
	protected.POST("/budgets/:id/delivery-note", h.deliveryNote)

	protected.GET("/cost-sheet", h.getCostSheet)
	protected.PUT("/cost-sheet", h.saveCostSheet)
	protected.POST("/cost-sheet/summary", h.costSummary)
}

type currencyRequest struct {
	Currency string  `json:"currency" binding:"required"`
	Rate     float64 `json:"rate" binding:"required"`
}

func (h *Handler) getCurrency(c *gin.Context) {
	settings, err := h.currency.Get(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) updateCurrency(c *gin.Context) {
	var req currencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := model.Currency(strings.ToUpper(strings.TrimSpace(req.Currency)))
	settings, err := h.currency.Update(c.Request.Context(), code, req.Rate)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type priceItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	UnitPrice float64 `json:"unit_price" binding:"required"`
	UnitMode  string  `json:"unit_mode" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
}

func (h *Handler) priceItem(c *gin.Context) {
	var req priceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := pricing.PriceItem(pricing.ItemInput{
		Name:      req.Name,
		Width:     req.Width,
		Height:    req.Height,
		UnitPrice: req.UnitPrice,
		UnitMode:  model.UnitMode(req.UnitMode),
		Quantity:  req.Quantity,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

type saveBudgetRequest struct {
	ClientName    string           `json:"client_name" binding:"required"`
	ClientRIF     string           `json:"client_rif"`
	ClientAddress string           `json:"client_address"`
	CompanyName   string           `json:"company_name"`
	CompanyRIF    string           `json:"company_rif"`
	Notes         string           `json:"notes"`
	Items         []model.LineItem `json:"items" binding:"required"`
	TaxEnabled    bool             `json:"tax_enabled"`
}

func (r saveBudgetRequest) toInput() service.SaveBudgetInput {
	return service.SaveBudgetInput{
		ClientName:    r.ClientName,
		ClientRIF:     r.ClientRIF,
		ClientAddress: r.ClientAddress,
		CompanyName:   r.CompanyName,
		CompanyRIF:    r.CompanyRIF,
		Notes:         r.Notes,
		Items:         r.Items,
		TaxEnabled:    r.TaxEnabled,
	}
}

func (h *Handler) listBudgets(c *gin.Context) {
	budgets, err := h.budgets.SearchBudgets(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

func (h *Handler) createBudget(c *gin.Context) {
	var req saveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.budgets.SaveBudget(c.Request.Context(), req.toInput(), service.CreateIntent())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, budget)
}

func (h *Handler) updateBudget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req saveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := h.budgets.SaveBudget(c.Request.Context(), req.toInput(), service.UpdateIntent(id))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (h *Handler) getBudget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	budget, err := h.budgets.GetBudget(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (h *Handler) deleteBudget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.budgets.DeleteBudget(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) shareText(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	text, err := h.budgets.ShareText(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (h *Handler) exportPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.budgets.ExportPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, result, "application/pdf")
}

func (h *Handler) exportImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.budgets.ExportImage(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, result, "image/png")
}

type deliveryNoteRequest struct {
	TransportedBy string `json:"transported_by"`
	Cedula        string `json:"cedula"`
	Plate         string `json:"plate"`
	VehicleModel  string `json:"vehicle_model"`
}

func (h *Handler) deliveryNote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req deliveryNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.budgets.DeliveryNote(c.Request.Context(), id, model.TransportData{
		TransportedBy: req.TransportedBy,
		Cedula:        req.Cedula,
		Plate:         req.Plate,
		VehicleModel:  req.VehicleModel,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, result, "application/pdf")
}

func (h *Handler) exportArchive(c *gin.Context) {
	result, err := h.budgets.ExportArchive(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.sendFile(c, result, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (h *Handler) getCostSheet(c *gin.Context) {
	sheet, err := h.costs.GetSheet(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheet)
}

func (h *Handler) saveCostSheet(c *gin.Context) {
	var sheet model.CostSheet
	if err := c.ShouldBindJSON(&sheet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.costs.SaveSheet(c.Request.Context(), sheet)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

type costSummaryRequest struct {
	Items []model.LineItem `json:"items"`
}

func (h *Handler) costSummary(c *gin.Context) {
	var req costSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.costs.Summary(c.Request.Context(), req.Items)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) sendFile(c *gin.Context, result *service.ExportResult, contentType string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
