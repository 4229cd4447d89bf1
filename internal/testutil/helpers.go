package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Show-Ledger-Backend/internal/logging"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Show-Ledger-Backend/internal/service"
)

// Services bundles every ledger service wired against one database.
// Services that share state (the status propagator) share one instance,
// matching cmd/server.
type Services struct {
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
	System       *service.SystemService
}

// NewTestServices wires every service against db with a discarding logger.
//
// Example usage:
//
//	db := testutil.SetupTestDB(t)
//	svc := testutil.NewTestServices(t, db)
//	tx, err := svc.Sale.RecordShowCardSale(ctx, ownerID, req)
func NewTestServices(t *testing.T, db *sql.DB) Services {
	t.Helper()

	logger := logging.Discard()

	lotRepo := repository.NewLotRepository(db)
	showRepo := repository.NewShowRepository(db)
	showCardRepo := repository.NewShowCardRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	cashRepo := repository.NewCashTransactionRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	propagator := service.NewStatusPropagator(showCardRepo, lotRepo, logger)

	cash := service.NewCashService(cashRepo, logger)
	lot := service.NewLotService(db, lotRepo, transactionRepo, showCardRepo, cashRepo, propagator, logger)
	show := service.NewShowService(showRepo, transactionRepo, expenseRepo, logger)

	return Services{
		Lot:          lot,
		Show:         show,
		ShowCard:     service.NewShowCardService(showCardRepo, lotRepo, logger),
		Transaction:  service.NewTransactionService(transactionRepo),
		Sale:         service.NewSaleService(db, transactionRepo, showCardRepo, lotRepo, showRepo, cashRepo, propagator, logger),
		Correction:   service.NewCorrectionService(db, transactionRepo, cashRepo, logger),
		Reassignment: service.NewReassignmentService(db, transactionRepo, showCardRepo, lotRepo, showRepo, logger),
		Reversal:     service.NewReversalService(db, transactionRepo, expenseRepo, cashRepo, propagator, logger),
		Cash:         cash,
		Expense:      service.NewExpenseService(db, expenseRepo, showRepo, lotRepo, cashRepo, logger),
		Dashboard:    service.NewDashboardService(cash, lot, show),
		Audit:        service.NewAuditService(showCardRepo, transactionRepo, cashRepo, lotRepo, logger),
		System:       service.NewSystemService(db, ""),
	}
}

func NewTestSaleService(t *testing.T, db *sql.DB) *service.SaleService {
	t.Helper()
	return NewTestServices(t, db).Sale
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()
	return NewTestServices(t, db).Transaction
}

func NewTestLotService(t *testing.T, db *sql.DB) *service.LotService {
	t.Helper()
	return NewTestServices(t, db).Lot
}

func NewTestCashService(t *testing.T, db *sql.DB) *service.CashService {
	t.Helper()
	return NewTestServices(t, db).Cash
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, "")
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeOwnerID generates an owner identity. Owners are plain UUIDs.
func MakeOwnerID() string {
	return uuid.New().String()
}

// MakeName generates a unique display name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("EstateBox")
//	// Returns: "EstateBox ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Item"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// Reason is a deletion or correction note that passes length validation.
const Reason = "duplicate entry, same card"
