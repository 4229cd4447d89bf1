package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// ReversalService soft-deletes transactions and expenses and writes the
// compensating records that keep cash and inventory consistent.
type ReversalService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	expenseRepo     *repository.ExpenseRepository
	cashRepo        *repository.CashTransactionRepository
	propagator      *StatusPropagator
	logger          *slog.Logger
}

// NewReversalService creates a new ReversalService with the provided repository dependencies.
func NewReversalService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	expenseRepo *repository.ExpenseRepository,
	cashRepo *repository.CashTransactionRepository,
	propagator *StatusPropagator,
	logger *slog.Logger,
) *ReversalService {
	return &ReversalService{
		db:              db,
		transactionRepo: transactionRepo,
		expenseRepo:     expenseRepo,
		cashRepo:        cashRepo,
		propagator:      propagator,
		logger:          logger,
	}
}

// DeleteTransaction soft-deletes a transaction.
//
// In one unit of work:
//   - the transaction is flagged deleted with the reason and timestamp
//   - a referenced show card returns to available with its destination cleared,
//     and its lot is reopened if it was closed or archived
//   - a reversal CashTransaction of -revenue is appended when revenue is non-zero
//
// Returns apperrors.ErrTransactionDeleted if it was already deleted.
func (s *ReversalService) DeleteTransaction(ctx context.Context, ownerID, transactionID string, req request.DeleteRequest) (*model.Transaction, error) {
	if err := validation.ValidateDeletion(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reason := strings.TrimSpace(req.Reason)
	var deleted model.Transaction
	var reopened *model.Lot

	err := runInTx(ctx, s.db, "delete transaction", func(tx *sql.Tx) error {
		transactionRepo := s.transactionRepo.WithTx(tx)

		t, err := transactionRepo.GetTransaction(ctx, ownerID, transactionID)
		if err != nil {
			return err
		}
		if t.Deleted {
			return apperrors.ErrTransactionDeleted
		}

		if err := transactionRepo.SoftDelete(ctx, ownerID, t.ID, reason, now); err != nil {
			return err
		}
		t.Deleted = true
		t.DeletedAt = &now
		t.DeletionReason = reason

		if reopened, err = s.propagator.WithTx(tx).OnReverted(ctx, t); err != nil {
			return err
		}

		if !t.Revenue.IsZero() {
			entry := newCashEntry(ownerID, t.Revenue.Neg(), model.CashTypeReversal, now,
				fmt.Sprintf("Reversal of %s: %s", t.Type, reason))
			entry.TransactionID = t.ID
			entry.LotID = t.LotID
			if err := s.cashRepo.WithTx(tx).InsertCashTransaction(ctx, entry); err != nil {
				return err
			}
		}

		deleted = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "transaction deleted",
		"owner_id", ownerID, "transaction_id", deleted.ID, "type", deleted.Type, "reversed", deleted.Revenue.String())
	if reopened != nil {
		s.logger.WarnContext(ctx, "deletion returned inventory to a closed lot; lot reopened",
			"owner_id", ownerID, "transaction_id", deleted.ID, "lot_id", reopened.ID)
	}
	return &deleted, nil
}

// DeleteExpense soft-deletes an expense and appends a reversal CashTransaction
// of +amount in the same unit of work.
func (s *ReversalService) DeleteExpense(ctx context.Context, ownerID, expenseID string, req request.DeleteRequest) (*model.Expense, error) {
	if err := validation.ValidateDeletion(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reason := strings.TrimSpace(req.Reason)
	var deleted model.Expense

	err := runInTx(ctx, s.db, "delete expense", func(tx *sql.Tx) error {
		expenseRepo := s.expenseRepo.WithTx(tx)

		e, err := expenseRepo.GetExpense(ctx, ownerID, expenseID)
		if err != nil {
			return err
		}
		if e.Deleted {
			return apperrors.ErrExpenseDeleted
		}

		if err := expenseRepo.SoftDelete(ctx, ownerID, e.ID, reason, now); err != nil {
			return err
		}
		e.Deleted = true
		e.DeletedAt = &now
		e.DeletionReason = reason

		entry := newCashEntry(ownerID, e.Amount, model.CashTypeReversal, now,
			fmt.Sprintf("Reversal of %s expense: %s", e.Category, reason))
		entry.ExpenseID = e.ID
		entry.LotID = e.LotID
		if err := s.cashRepo.WithTx(tx).InsertCashTransaction(ctx, entry); err != nil {
			return err
		}

		deleted = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "expense deleted",
		"owner_id", ownerID, "expense_id", deleted.ID, "reversed", deleted.Amount.String())
	return &deleted, nil
}
