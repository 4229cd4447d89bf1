package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// ExpenseService records business costs. Each expense is paid from cash.
type ExpenseService struct {
	db          *sql.DB
	expenseRepo *repository.ExpenseRepository
	showRepo    *repository.ShowRepository
	lotRepo     *repository.LotRepository
	cashRepo    *repository.CashTransactionRepository
	logger      *slog.Logger
}

// NewExpenseService creates a new ExpenseService with the provided repository dependencies.
func NewExpenseService(
	db *sql.DB,
	expenseRepo *repository.ExpenseRepository,
	showRepo *repository.ShowRepository,
	lotRepo *repository.LotRepository,
	cashRepo *repository.CashTransactionRepository,
	logger *slog.Logger,
) *ExpenseService {
	return &ExpenseService{
		db:          db,
		expenseRepo: expenseRepo,
		showRepo:    showRepo,
		lotRepo:     lotRepo,
		cashRepo:    cashRepo,
		logger:      logger,
	}
}

// CreateExpense records an expense and appends an expense CashTransaction of
// -amount in the same unit of work. A referenced show or lot must belong to the owner.
func (s *ExpenseService) CreateExpense(ctx context.Context, ownerID string, req request.CreateExpenseRequest) (*model.Expense, error) {
	now := time.Now().UTC()
	if err := validation.ValidateCreateExpense(req, now); err != nil {
		return nil, err
	}

	e := &model.Expense{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		ShowID:      req.ShowID,
		LotID:       req.LotID,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Date:        parseValidatedDate(req.Date),
		CreatedAt:   now,
	}

	err := runInTx(ctx, s.db, "create expense", func(tx *sql.Tx) error {
		if e.ShowID != "" {
			if _, err := s.showRepo.WithTx(tx).GetShow(ctx, ownerID, e.ShowID); err != nil {
				return err
			}
		}
		if e.LotID != "" {
			if _, err := s.lotRepo.WithTx(tx).GetLot(ctx, ownerID, e.LotID); err != nil {
				return err
			}
		}

		if err := s.expenseRepo.WithTx(tx).InsertExpense(ctx, e); err != nil {
			return err
		}

		entry := newCashEntry(ownerID, e.Amount.Neg(), model.CashTypeExpense, e.Date, fmt.Sprintf("Expense: %s", e.Category))
		entry.ExpenseID = e.ID
		entry.LotID = e.LotID
		return s.cashRepo.WithTx(tx).InsertCashTransaction(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "expense recorded",
		"owner_id", ownerID, "expense_id", e.ID, "category", e.Category, "amount", e.Amount.String())
	return e, nil
}

// GetExpense retrieves an expense of the owner, including soft-deleted ones.
func (s *ExpenseService) GetExpense(ctx context.Context, ownerID, expenseID string) (model.Expense, error) {
	return s.expenseRepo.GetExpense(ctx, ownerID, expenseID)
}

// ListExpenses retrieves the owner's live expenses, optionally for one show.
func (s *ExpenseService) ListExpenses(ctx context.Context, ownerID, showID string) ([]model.Expense, error) {
	return s.expenseRepo.ListExpenses(ctx, ownerID, showID)
}

func sumExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if !e.Deleted {
			total = total.Add(e.Amount)
		}
	}
	return total
}
