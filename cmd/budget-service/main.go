package main

import (
	"fmt"
	"os"

	"github.com/vifordpro/budget-service/internal/auth"
	"github.com/vifordpro/budget-service/internal/config"
	"github.com/vifordpro/budget-service/internal/db"
	"github.com/vifordpro/budget-service/internal/excel"
	httphandler "github.com/vifordpro/budget-service/internal/http"
	"github.com/vifordpro/budget-service/internal/http/middleware"
	"github.com/vifordpro/budget-service/internal/img"
	"github.com/vifordpro/budget-service/internal/logger"
	"github.com/vifordpro/budget-service/internal/pdf"
	"github.com/vifordpro/budget-service/internal/repository"
	"github.com/vifordpro/budget-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	budgetRepo := repository.NewBudgetRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)

	pdfGenerator := pdf.NewGenerator()
	imageGenerator := img.NewGenerator()
	excelGenerator := excel.NewGenerator()
	notifier := service.NewLogNotifier(log)

	budgetService := service.NewBudgetService(budgetRepo, settingsRepo, pdfGenerator, imageGenerator, excelGenerator, notifier, cfg, log)
	currencyService := service.NewCurrencyService(settingsRepo, notifier, cfg, log)
	costService := service.NewCostService(settingsRepo, notifier, cfg, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(budgetService, currencyService, costService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting budget service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
