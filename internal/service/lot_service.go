package service

import (
	"context"
	"database/sql"
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

// LotService handles lot lifecycle and the lot revenue rollup.
type LotService struct {
	db              *sql.DB
	lotRepo         *repository.LotRepository
	transactionRepo *repository.TransactionRepository
	showCardRepo    *repository.ShowCardRepository
	cashRepo        *repository.CashTransactionRepository
	propagator      *StatusPropagator
	logger          *slog.Logger
}

// NewLotService creates a new LotService with the provided repository dependencies.
func NewLotService(
	db *sql.DB,
	lotRepo *repository.LotRepository,
	transactionRepo *repository.TransactionRepository,
	showCardRepo *repository.ShowCardRepository,
	cashRepo *repository.CashTransactionRepository,
	propagator *StatusPropagator,
	logger *slog.Logger,
) *LotService {
	return &LotService{
		db:              db,
		lotRepo:         lotRepo,
		transactionRepo: transactionRepo,
		showCardRepo:    showCardRepo,
		cashRepo:        cashRepo,
		propagator:      propagator,
		logger:          logger,
	}
}

// CreateLot creates an active lot. When req.PaidFromCash is set a purchase
// CashTransaction of -total_cost is appended in the same unit of work.
func (s *LotService) CreateLot(ctx context.Context, ownerID string, req request.CreateLotRequest) (*model.Lot, error) {
	now := time.Now().UTC()
	if err := validation.ValidateCreateLot(req, now); err != nil {
		return nil, err
	}

	lot := &model.Lot{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(req.Name),
		Source:       strings.TrimSpace(req.Source),
		PurchaseDate: parseValidatedDate(req.PurchaseDate),
		TotalCost:    req.TotalCost,
		Status:       model.LotStatusActive,
		CreatedAt:    now,
	}

	err := runInTx(ctx, s.db, "create lot", func(tx *sql.Tx) error {
		if err := s.lotRepo.WithTx(tx).InsertLot(ctx, lot); err != nil {
			return err
		}
		if !req.PaidFromCash || lot.TotalCost.IsZero() {
			return nil
		}

		entry := newCashEntry(ownerID, lot.TotalCost.Neg(), model.CashTypePurchase, lot.PurchaseDate,
			fmt.Sprintf("Purchase of lot %s", lot.Name))
		entry.LotID = lot.ID
		return s.cashRepo.WithTx(tx).InsertCashTransaction(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "lot created",
		"owner_id", ownerID, "lot_id", lot.ID, "total_cost", lot.TotalCost.String(), "paid_from_cash", req.PaidFromCash)
	return lot, nil
}

// GetLot retrieves a lot of the owner.
func (s *LotService) GetLot(ctx context.Context, ownerID, lotID string) (model.Lot, error) {
	return s.lotRepo.GetLot(ctx, ownerID, lotID)
}

// ListLots retrieves every lot of the owner.
func (s *LotService) ListLots(ctx context.Context, ownerID string) ([]model.Lot, error) {
	return s.lotRepo.ListLots(ctx, ownerID)
}

// CloseLot moves an active lot to closed.
// Returns apperrors.ErrLotHasAvailableCards while any of its cards is still available.
func (s *LotService) CloseLot(ctx context.Context, ownerID, lotID string, req request.CloseLotRequest) (*model.Lot, error) {
	if err := validation.ValidateCloseLot(req); err != nil {
		return nil, err
	}

	var lot model.Lot
	err := runInTx(ctx, s.db, "close lot", func(tx *sql.Tx) error {
		lotRepo := s.lotRepo.WithTx(tx)

		var err error
		lot, err = lotRepo.GetLot(ctx, ownerID, lotID)
		if err != nil {
			return err
		}
		if lot.Status != model.LotStatusActive {
			return fmt.Errorf("close %s lot: %w", lot.Status, apperrors.ErrInvalidLotTransition)
		}

		available, err := s.propagator.WithTx(tx).AvailableCount(ctx, lot.ID)
		if err != nil {
			return err
		}
		if available > 0 {
			return fmt.Errorf("%d available: %w", available, apperrors.ErrLotHasAvailableCards)
		}

		now := time.Now().UTC()
		lot.Status = model.LotStatusClosed
		lot.ClosedAt = &now
		lot.ClosureNotes = strings.TrimSpace(req.ClosureNotes)
		return lotRepo.UpdateLotStatus(ctx, &lot)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "lot closed", "owner_id", ownerID, "lot_id", lot.ID)
	return &lot, nil
}

// ArchiveLot moves a closed lot to archived.
func (s *LotService) ArchiveLot(ctx context.Context, ownerID, lotID string) (*model.Lot, error) {
	return s.transition(ctx, ownerID, lotID, model.LotStatusClosed, model.LotStatusArchived, func(lot *model.Lot) {})
}

// ReopenLot moves a closed lot back to active and clears its closure metadata.
func (s *LotService) ReopenLot(ctx context.Context, ownerID, lotID string) (*model.Lot, error) {
	return s.transition(ctx, ownerID, lotID, model.LotStatusClosed, model.LotStatusActive, func(lot *model.Lot) {
		lot.ClosedAt = nil
		lot.ClosureNotes = ""
	})
}

func (s *LotService) transition(
	ctx context.Context,
	ownerID, lotID string,
	from, to model.LotStatus,
	apply func(lot *model.Lot),
) (*model.Lot, error) {
	lot, err := s.lotRepo.GetLot(ctx, ownerID, lotID)
	if err != nil {
		return nil, err
	}
	if lot.Status != from {
		return nil, fmt.Errorf("%s -> %s: %w", lot.Status, to, apperrors.ErrInvalidLotTransition)
	}

	lot.Status = to
	apply(&lot)
	if err := s.lotRepo.UpdateLotStatus(ctx, &lot); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "lot status changed", "owner_id", ownerID, "lot_id", lot.ID, "from", from, "to", to)
	return &lot, nil
}

// LotSummary derives the revenue rollup of a lot from its live transactions.
// Net is revenue minus total cost.
func (s *LotService) LotSummary(ctx context.Context, ownerID, lotID string) (model.LotSummary, error) {
	lot, err := s.lotRepo.GetLot(ctx, ownerID, lotID)
	if err != nil {
		return model.LotSummary{}, err
	}
	return s.summarize(ctx, lot)
}

// ListLotSummaries derives the rollup of every lot of the owner.
func (s *LotService) ListLotSummaries(ctx context.Context, ownerID string) ([]model.LotSummary, error) {
	lots, err := s.lotRepo.ListLots(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.LotSummary, 0, len(lots))
	for _, lot := range lots {
		summary, err := s.summarize(ctx, lot)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *LotService) summarize(ctx context.Context, lot model.Lot) (model.LotSummary, error) {
	transactions, err := s.transactionRepo.ListTransactions(ctx, lot.OwnerID, model.TransactionFilter{LotID: lot.ID})
	if err != nil {
		return model.LotSummary{}, fmt.Errorf("failed to load lot transactions: %w", err)
	}

	counts, err := s.showCardRepo.CountByStatus(ctx, lot.ID)
	if err != nil {
		return model.LotSummary{}, err
	}

	revenue := sumRevenue(transactions)
	return model.LotSummary{
		Lot:              lot,
		Revenue:          revenue,
		Net:              revenue.Sub(lot.TotalCost),
		TransactionCount: len(transactions),
		CardCounts:       counts,
	}, nil
}
