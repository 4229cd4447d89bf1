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

	"github.com/ndewijer/Show-Ledger-Backend/internal/api"
	"github.com/ndewijer/Show-Ledger-Backend/internal/config"
	"github.com/ndewijer/Show-Ledger-Backend/internal/database"
	"github.com/ndewijer/Show-Ledger-Backend/internal/logging"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Show-Ledger-Backend/internal/scheduler"
	"github.com/ndewijer/Show-Ledger-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database", "path", cfg.Database.Path)

	// Create repositories
	lotRepo := repository.NewLotRepository(db)
	showRepo := repository.NewShowRepository(db)
	showCardRepo := repository.NewShowCardRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	cashRepo := repository.NewCashTransactionRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// Create services
	propagator := service.NewStatusPropagator(showCardRepo, lotRepo, logger)
	cashService := service.NewCashService(cashRepo, logger)
	lotService := service.NewLotService(db, lotRepo, transactionRepo, showCardRepo, cashRepo, propagator, logger)
	showService := service.NewShowService(showRepo, transactionRepo, expenseRepo, logger)
	auditService := service.NewAuditService(showCardRepo, transactionRepo, cashRepo, lotRepo, logger)

	services := api.Services{
		System:       service.NewSystemService(db, cfg.Audit.Schedule),
		Lot:          lotService,
		Show:         showService,
		ShowCard:     service.NewShowCardService(showCardRepo, lotRepo, logger),
		Transaction:  service.NewTransactionService(transactionRepo),
		Sale:         service.NewSaleService(db, transactionRepo, showCardRepo, lotRepo, showRepo, cashRepo, propagator, logger),
		Correction:   service.NewCorrectionService(db, transactionRepo, cashRepo, logger),
		Reassignment: service.NewReassignmentService(db, transactionRepo, showCardRepo, lotRepo, showRepo, logger),
		Reversal:     service.NewReversalService(db, transactionRepo, expenseRepo, cashRepo, propagator, logger),
		Cash:         cashService,
		Expense:      service.NewExpenseService(db, expenseRepo, showRepo, lotRepo, cashRepo, logger),
		Dashboard:    service.NewDashboardService(cashService, lotService, showService),
		Audit:        auditService,
	}

	// Schedule the consistency audit
	sched := scheduler.New(logger)
	if err := sched.Add("consistency-audit", cfg.Audit.Schedule, auditService.RunScheduled); err != nil {
		logger.Error("failed to schedule consistency audit", "error", err)
		os.Exit(1)
	}
	sched.Start()

	// Create router
	router := api.NewRouter(services, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if err := sched.Stop(ctx); err != nil {
		logger.Error("scheduler did not stop in time", "error", err)
	}

	logger.Info("server exited")
}
