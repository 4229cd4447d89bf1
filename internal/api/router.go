package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Show-Ledger-Backend/internal/api/middleware"
	"github.com/ndewijer/Show-Ledger-Backend/internal/config"
	"github.com/ndewijer/Show-Ledger-Backend/internal/service"
)

// Services bundles the services the router exposes.
type Services struct {
	System       *service.SystemService
	Lot          *service.LotService
	Show         *service.ShowService
	ShowCard     *service.ShowCardService
	Transaction  *service.TransactionService
	Sale         *service.SaleService
	Correction   *service.CorrectionService
	Reassignment *service.ReassignmentService
	Reversal     *service.ReversalService
	Cash         *service.CashService
	Expense      *service.ExpenseService
	Dashboard    *service.DashboardService
	Audit        *service.AuditService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Ledger routes act on behalf of the X-Owner-ID caller
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireOwner)

			r.Route("/lot", func(r chi.Router) {
				lotHandler := handlers.NewLotHandler(svc.Lot)
				r.Get("/", lotHandler.ListLots)
				r.Post("/", lotHandler.CreateLot)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", lotHandler.GetLot)
					r.Get("/summary", lotHandler.LotSummary)
					r.Post("/close", lotHandler.CloseLot)
					r.Post("/archive", lotHandler.ArchiveLot)
					r.Post("/reopen", lotHandler.ReopenLot)
				})
			})

			r.Route("/show", func(r chi.Router) {
				showHandler := handlers.NewShowHandler(svc.Show)
				r.Get("/", showHandler.ListShows)
				r.Post("/", showHandler.CreateShow)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", showHandler.GetShow)
					r.Get("/summary", showHandler.ShowSummary)
					r.Put("/status", showHandler.UpdateShowStatus)
				})
			})

			r.Route("/show-card", func(r chi.Router) {
				showCardHandler := handlers.NewShowCardHandler(svc.ShowCard)
				r.Get("/", showCardHandler.ListShowCards)
				r.Post("/", showCardHandler.CreateShowCard)

				r.With(custommiddleware.ValidateUUIDMiddleware).Get("/{uuid}", showCardHandler.GetShowCard)
			})

			r.Route("/transaction", func(r chi.Router) {
				transactionHandler := handlers.NewTransactionHandler(
					svc.Transaction, svc.Sale, svc.Correction, svc.Reassignment, svc.Reversal,
				)
				r.Get("/", transactionHandler.ListTransactions)
				r.Post("/show-card-sale", transactionHandler.RecordShowCardSale)
				r.Post("/bulk-sale", transactionHandler.RecordBulkSale)
				r.Post("/disposition", transactionHandler.RecordDisposition)
				r.Post("/reassign-show-card-sale", transactionHandler.ReassignShowCardSale)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", transactionHandler.GetTransaction)
					r.Delete("/", transactionHandler.DeleteTransaction)
					r.Get("/corrections", transactionHandler.ListCorrections)
					r.Put("/correction", transactionHandler.CorrectTransaction)
					r.Put("/lot", transactionHandler.ReassignLot)
					r.Put("/show", transactionHandler.ReassignShow)
				})
			})

			r.Route("/cash", func(r chi.Router) {
				cashHandler := handlers.NewCashHandler(svc.Cash)
				r.Get("/", cashHandler.ListCashTransactions)
				r.Post("/", cashHandler.CreateCashEntry)
				r.Get("/balance", cashHandler.Balance)
			})

			r.Route("/expense", func(r chi.Router) {
				expenseHandler := handlers.NewExpenseHandler(svc.Expense, svc.Reversal)
				r.Get("/", expenseHandler.ListExpenses)
				r.Post("/", expenseHandler.CreateExpense)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", expenseHandler.GetExpense)
					r.Delete("/", expenseHandler.DeleteExpense)
				})
			})

			dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, svc.Audit)
			r.Get("/dashboard", dashboardHandler.Overview)
			r.Get("/audit/consistency", dashboardHandler.Consistency)
		})
	})

	return r
}
