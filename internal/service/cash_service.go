package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// CashService projects the cash position from the append-only ledger and
// records manual cash entries. No balance is ever stored.
type CashService struct {
	cashRepo *repository.CashTransactionRepository
	logger   *slog.Logger
}

// NewCashService creates a new CashService with the provided repository dependencies.
func NewCashService(cashRepo *repository.CashTransactionRepository, logger *slog.Logger) *CashService {
	return &CashService{
		cashRepo: cashRepo,
		logger:   logger,
	}
}

// GetCashBalance folds every CashTransaction amount of the owner.
// An owner without entries has a zero balance.
func (s *CashService) GetCashBalance(ctx context.Context, ownerID string) (model.CashBalance, error) {
	entries, err := s.cashRepo.ListCashTransactions(ctx, ownerID)
	if err != nil {
		return model.CashBalance{}, err
	}

	return model.CashBalance{
		OwnerID: ownerID,
		Balance: foldBalance(entries),
		Entries: len(entries),
	}, nil
}

// ListCashTransactions returns the owner's ledger lines in insertion order.
func (s *CashService) ListCashTransactions(ctx context.Context, ownerID string) ([]model.CashTransaction, error) {
	return s.cashRepo.ListCashTransactions(ctx, ownerID)
}

// RecordCashEntry appends a manual deposit, withdrawal or adjustment.
// Withdrawals are stored negative; adjustments keep the caller's sign.
func (s *CashService) RecordCashEntry(ctx context.Context, ownerID string, req request.CreateCashEntryRequest) (*model.CashTransaction, error) {
	if err := validation.ValidateCashEntry(req, time.Now().UTC()); err != nil {
		return nil, err
	}

	typ := model.CashTransactionType(req.Type)
	amount := req.Amount
	if typ == model.CashTypeWithdrawal {
		amount = amount.Neg()
	}

	entry := newCashEntry(ownerID, amount, typ, parseValidatedDate(req.Date), strings.TrimSpace(req.Description))
	if err := s.cashRepo.InsertCashTransaction(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cash entry recorded",
		"owner_id", ownerID, "cash_transaction_id", entry.ID, "type", entry.Type, "amount", entry.Amount.String())
	return entry, nil
}

func foldBalance(entries []model.CashTransaction) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.Amount)
	}
	return balance.Round(MoneyPlaces)
}
