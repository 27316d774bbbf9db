package main

import (
	"fmt"
	"log"

	"gstitc/internal/config"
	"gstitc/internal/domain"
	"gstitc/internal/eligibility"
	"gstitc/internal/handler"
	"gstitc/internal/logger"
	"gstitc/internal/matching"
	"gstitc/internal/repository/postgres"
	"gstitc/internal/router"
	"gstitc/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	vendorRepo := postgres.NewVendorRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	referenceRepo := postgres.NewReferenceLedgerRepo(db)
	registerRepo := postgres.NewRegisterRepo(db)

	// Initialize the rule engine and matching tolerances from config
	engine := eligibility.NewEngine(eligibility.Config{
		TimeLimitMonths:         cfg.Rules.TimeLimitMonths,
		AnnualInterestRatePct:   domain.Rupees(cfg.Rules.AnnualInterestRatePct),
		NonPaymentGraceDays:     cfg.Rules.NonPaymentGraceDays,
		DefaultUsefulLifeMonths: cfg.Rules.DefaultUsefulLifeMonths,
	})
	matchCfg := matching.Config{
		DateToleranceDays:  cfg.Match.DateToleranceDays,
		AmountTolerancePct: domain.Rupees(cfg.Match.AmountTolerancePct),
		AmountToleranceAbs: domain.Rupees(cfg.Match.AmountToleranceAbs),
	}

	// Initialize services
	registerSvc := service.NewRegisterService(registerRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, vendorRepo, registerSvc, engine)
	reconciliationSvc := service.NewReconciliationService(invoiceRepo, referenceRepo, registerSvc, matchCfg)
	reportSvc := service.NewReportService(invoiceRepo, registerRepo, cfg.Rules.AgingThresholdDays)
	vendorSvc := service.NewVendorService(vendorRepo)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	vendorH := handler.NewVendorHandler(vendorSvc)
	reconciliationH := handler.NewReconciliationHandler(reconciliationSvc)
	registerH := handler.NewRegisterHandler(registerSvc, reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, invoiceH, vendorH, reconciliationH, registerH, healthH)

	srvLog := logger.WithComponent("server")
	srvLog.Info().
		Str("port", cfg.Server.Port).
		Str("environment", cfg.Server.Environment).
		Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
