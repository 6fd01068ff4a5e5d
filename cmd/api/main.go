package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/config"
	"github.com/sangkips/billing-api/internal/infrastructure/database"
	"github.com/sangkips/billing-api/internal/infrastructure/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/handler"
	"github.com/sangkips/billing-api/internal/presentation/http/routes"
	"github.com/sangkips/billing-api/pkg/logger"
	"github.com/sangkips/billing-api/pkg/metrics"
	"github.com/sangkips/billing-api/pkg/printer"
	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/shopspring/decimal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Money is sent as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Connect to database
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed demo data
	if cfg.Database.Seed {
		if err := database.SeedDefaultData(db, cfg.Billing.SeedPassword); err != nil {
			log.Warn("failed to seed default data", "error", err)
		}
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	staffRepo := repository.NewStaffRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	billRepo := repository.NewBillRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	settingsService, err := service.NewCustomizationService(ctx, settingsRepo, log)
	if err != nil {
		log.Error("failed to load settings", "error", err)
		os.Exit(1)
	}
	authService := service.NewAuthService(staffRepo, jwtManager)
	productService := service.NewProductService(productRepo, settingsService)
	customerService := service.NewCustomerService(customerRepo)
	billService := service.NewBillService(billRepo)
	expenseService := service.NewExpenseService(expenseRepo, settingsService)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo)
	profileService := service.NewProfileService(settingsRepo)
	reportService := service.NewReportService(billRepo, expenseRepo, productRepo, analyticsRepo, settingsService)
	gstService := service.NewGSTReportService(billRepo)
	cartService := service.NewCartService(
		productRepo,
		customerRepo,
		billRepo,
		settingsService,
		service.NewBillNumberer(cfg.Billing.BillPrefix, billRepo),
		metrics.New(nil),
		log,
	)

	// Initialize receipt printer
	receiptPrinter, err := printer.New(printer.Options{
		Type:       cfg.Printer.Type,
		DevicePath: cfg.Printer.DevicePath,
		Address:    cfg.Printer.Address,
	})
	if err != nil {
		log.Warn("failed to initialize printer, printing disabled", "error", err)
		receiptPrinter, _ = printer.New(printer.Options{Type: "none"})
	}
	printerService := service.NewPrinterService(
		receiptPrinter,
		billService,
		profileService,
		staffRepo,
		settingsService,
		cfg.Printer.PaperWidth,
		log,
	)
	cartService.SetPrinter(printerService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Cart:     handler.NewCartHandler(cartService),
		Bill:     handler.NewBillHandler(billService, printerService),
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Expense:  handler.NewExpenseHandler(expenseService),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Report:   handler.NewReportHandler(reportService, gstService),
		Settings: handler.NewSettingsHandler(settingsService),
		Profile:  handler.NewProfileHandler(profileService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          log,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", "name", cfg.App.Name, "port", port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", "error", err)
	}
}
