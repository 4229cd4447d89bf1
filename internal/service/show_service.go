package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// ShowService handles show lifecycle and the show financial rollup.
type ShowService struct {
	showRepo        *repository.ShowRepository
	transactionRepo *repository.TransactionRepository
	expenseRepo     *repository.ExpenseRepository
	logger          *slog.Logger
}

// NewShowService creates a new ShowService with the provided repository dependencies.
func NewShowService(
	showRepo *repository.ShowRepository,
	transactionRepo *repository.TransactionRepository,
	expenseRepo *repository.ExpenseRepository,
	logger *slog.Logger,
) *ShowService {
	return &ShowService{
		showRepo:        showRepo,
		transactionRepo: transactionRepo,
		expenseRepo:     expenseRepo,
		logger:          logger,
	}
}

// CreateShow creates a show; the status defaults to planned.
func (s *ShowService) CreateShow(ctx context.Context, ownerID string, req request.CreateShowRequest) (*model.Show, error) {
	if err := validation.ValidateCreateShow(req); err != nil {
		return nil, err
	}

	status := model.ShowStatus(req.Status)
	if status == "" {
		status = model.ShowStatusPlanned
	}

	show := &model.Show{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(req.Name),
		Date:      parseValidatedDate(req.Date),
		TableCost: req.TableCost,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.showRepo.InsertShow(ctx, show); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "show created", "owner_id", ownerID, "show_id", show.ID, "status", show.Status)
	return show, nil
}

// GetShow retrieves a show of the owner.
func (s *ShowService) GetShow(ctx context.Context, ownerID, showID string) (model.Show, error) {
	return s.showRepo.GetShow(ctx, ownerID, showID)
}

// ListShows retrieves every show of the owner.
func (s *ShowService) ListShows(ctx context.Context, ownerID string) ([]model.Show, error) {
	return s.showRepo.ListShows(ctx, ownerID)
}

// UpdateShowStatus changes the status of a show.
//
// Once any transaction or expense references the show, deleted ones included,
// its status can only move forward (planned -> active -> completed). Without
// financial activity any status may be set.
func (s *ShowService) UpdateShowStatus(ctx context.Context, ownerID, showID string, req request.UpdateShowStatusRequest) (*model.Show, error) {
	if err := validation.ValidateUpdateShowStatus(req); err != nil {
		return nil, err
	}

	show, err := s.showRepo.GetShow(ctx, ownerID, showID)
	if err != nil {
		return nil, err
	}

	next := model.ShowStatus(req.Status)
	if next.Rank() < show.Status.Rank() {
		activity, err := s.showRepo.CountFinancialActivity(ctx, show.ID)
		if err != nil {
			return nil, err
		}
		if activity > 0 {
			return nil, fmt.Errorf("%s -> %s with %d referencing records: %w",
				show.Status, next, activity, apperrors.ErrShowStatusRegression)
		}
	}

	if err := s.showRepo.UpdateShowStatus(ctx, ownerID, show.ID, next); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "show status changed",
		"owner_id", ownerID, "show_id", show.ID, "from", show.Status, "to", next)
	show.Status = next
	return &show, nil
}

// ShowSummary derives the financial rollup of a show from its live
// transactions and expenses. Net is revenue minus table cost minus expenses.
func (s *ShowService) ShowSummary(ctx context.Context, ownerID, showID string) (model.ShowSummary, error) {
	show, err := s.showRepo.GetShow(ctx, ownerID, showID)
	if err != nil {
		return model.ShowSummary{}, err
	}
	return s.summarize(ctx, show)
}

// ListShowSummaries derives the rollup of every show of the owner.
func (s *ShowService) ListShowSummaries(ctx context.Context, ownerID string) ([]model.ShowSummary, error) {
	shows, err := s.showRepo.ListShows(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.ShowSummary, 0, len(shows))
	for _, show := range shows {
		summary, err := s.summarize(ctx, show)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *ShowService) summarize(ctx context.Context, show model.Show) (model.ShowSummary, error) {
	transactions, err := s.transactionRepo.ListTransactions(ctx, show.OwnerID, model.TransactionFilter{ShowID: show.ID})
	if err != nil {
		return model.ShowSummary{}, fmt.Errorf("failed to load show transactions: %w", err)
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, show.OwnerID, show.ID)
	if err != nil {
		return model.ShowSummary{}, fmt.Errorf("failed to load show expenses: %w", err)
	}

	revenue := sumRevenue(transactions)
	spent := sumExpenses(expenses)
	return model.ShowSummary{
		Show:             show,
		Revenue:          revenue,
		Expenses:         spent,
		Net:              revenue.Sub(show.TableCost).Sub(spent),
		TransactionCount: len(transactions),
	}, nil
}
