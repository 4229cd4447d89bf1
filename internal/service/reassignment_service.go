package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// ReassignmentService moves a transaction between lots or shows.
//
// Lot and show revenue are read-time sums over transactions, so moving the
// reference is enough for the origin to lose the revenue and the destination
// to gain it. Reassigning to a closed lot or a completed show is allowed and
// reported as a warning.
type ReassignmentService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	showCardRepo    *repository.ShowCardRepository
	lotRepo         *repository.LotRepository
	showRepo        *repository.ShowRepository
	logger          *slog.Logger
}

// NewReassignmentService creates a new ReassignmentService with the provided repository dependencies.
func NewReassignmentService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	showCardRepo *repository.ShowCardRepository,
	lotRepo *repository.LotRepository,
	showRepo *repository.ShowRepository,
	logger *slog.Logger,
) *ReassignmentService {
	return &ReassignmentService{
		db:              db,
		transactionRepo: transactionRepo,
		showCardRepo:    showCardRepo,
		lotRepo:         lotRepo,
		showRepo:        showRepo,
		logger:          logger,
	}
}

// ReassignLot moves a transaction from req.FromLotID to req.ToLotID.
//
// The transaction must currently belong to FromLotID; a mismatch means the
// caller acted on stale data and returns apperrors.ErrStaleAssignment. For
// transactions on a show card the card moves to the destination lot with it.
func (s *ReassignmentService) ReassignLot(
	ctx context.Context,
	ownerID, transactionID string,
	req request.ReassignLotRequest,
) (*model.ReassignmentResult, error) {
	if err := validation.ValidateReassignLot(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var res model.ReassignmentResult

	err := runInTx(ctx, s.db, "reassign lot", func(tx *sql.Tx) error {
		transactionRepo := s.transactionRepo.WithTx(tx)

		t, err := transactionRepo.GetTransaction(ctx, ownerID, transactionID)
		if err != nil {
			return err
		}
		if t.Deleted {
			return apperrors.ErrTransactionDeleted
		}
		if t.LotID != req.FromLotID {
			return fmt.Errorf("transaction is on lot %q, not %q: %w", t.LotID, req.FromLotID, apperrors.ErrStaleAssignment)
		}

		dest, err := s.lotRepo.WithTx(tx).GetLot(ctx, ownerID, req.ToLotID)
		if err != nil {
			return err
		}
		if dest.Status != model.LotStatusActive {
			res.Warnings = append(res.Warnings, fmt.Sprintf("destination lot %q is %s", dest.Name, dest.Status))
		}

		if t.ShowCardID != "" {
			showCardRepo := s.showCardRepo.WithTx(tx)
			card, err := showCardRepo.GetShowCard(ctx, ownerID, t.ShowCardID)
			if err != nil {
				return err
			}
			if card.DestinationLotID == req.ToLotID {
				return &validation.Error{Fields: map[string]string{
					"toLotId": "destination lot is the lot the card was combined into",
				}}
			}
			if err := showCardRepo.UpdateLot(ctx, card.ID, req.ToLotID); err != nil {
				return err
			}
		}

		changes := map[string]model.FieldChange{"lotId": {From: t.LotID, To: req.ToLotID}}
		t.LotID = req.ToLotID
		if err := recordCorrection(ctx, transactionRepo, &t, req.CorrectionNote, changes, now); err != nil {
			return err
		}

		res.Transaction = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logReassignment(ctx, ownerID, "lot", req.FromLotID, req.ToLotID, res)
	return &res, nil
}

// ReassignShow moves a sale from req.FromShowID to req.ToShowID. An empty
// FromShowID asserts the sale currently has no show.
func (s *ReassignmentService) ReassignShow(
	ctx context.Context,
	ownerID, transactionID string,
	req request.ReassignShowRequest,
) (*model.ReassignmentResult, error) {
	if err := validation.ValidateReassignShow(req); err != nil {
		return nil, err
	}

	from := req.FromShowID
	res, err := s.reassignShow(ctx, ownerID, transactionID, &from, req.ToShowID, req.CorrectionNote, "reassign show")
	if err != nil {
		return nil, err
	}

	s.logReassignment(ctx, ownerID, "show", req.FromShowID, req.ToShowID, *res)
	return res, nil
}

// ReassignShowCardSale moves a show card sale to another show as one atomic
// call. The card stays sold; only the sale's show changes.
func (s *ReassignmentService) ReassignShowCardSale(
	ctx context.Context,
	ownerID string,
	req request.ReassignShowCardSaleRequest,
) (*model.ReassignmentResult, error) {
	if err := validation.ValidateReassignShowCardSale(req); err != nil {
		return nil, err
	}

	res, err := s.reassignShow(ctx, ownerID, req.TransactionID, nil, req.NewShowID, req.CorrectionNote, "reassign show card sale")
	if err != nil {
		return nil, err
	}

	s.logReassignment(ctx, ownerID, "show", "", req.NewShowID, *res)
	return res, nil
}

// reassignShow is shared by both show reassignment entry points. A nil from
// skips the stale check and restricts the move to show card sales.
func (s *ReassignmentService) reassignShow(
	ctx context.Context,
	ownerID, transactionID string,
	from *string,
	toShowID, note, operation string,
) (*model.ReassignmentResult, error) {
	now := time.Now().UTC()
	var res model.ReassignmentResult

	err := runInTx(ctx, s.db, operation, func(tx *sql.Tx) error {
		transactionRepo := s.transactionRepo.WithTx(tx)

		t, err := transactionRepo.GetTransaction(ctx, ownerID, transactionID)
		if err != nil {
			return err
		}
		if t.Deleted {
			return apperrors.ErrTransactionDeleted
		}

		if from == nil {
			if t.Type != model.TransactionTypeShowCardSale {
				return fmt.Errorf("show card sale reassignment on %s: %w", t.Type, apperrors.ErrWrongTransactionType)
			}
			if t.ShowID == toShowID {
				return &validation.Error{Fields: map[string]string{
					"new_show_id": "destination show must differ from the current show",
				}}
			}
		} else {
			if !t.Type.IsSale() {
				return fmt.Errorf("show reassignment on %s: %w", t.Type, apperrors.ErrWrongTransactionType)
			}
			if t.ShowID != *from {
				return fmt.Errorf("transaction is on show %q, not %q: %w", t.ShowID, *from, apperrors.ErrStaleAssignment)
			}
		}

		dest, err := s.showRepo.WithTx(tx).GetShow(ctx, ownerID, toShowID)
		if err != nil {
			return err
		}
		if dest.Status == model.ShowStatusCompleted {
			res.Warnings = append(res.Warnings, fmt.Sprintf("destination show %q is completed", dest.Name))
		}

		changes := map[string]model.FieldChange{"showId": {From: t.ShowID, To: toShowID}}
		t.ShowID = toShowID
		if err := recordCorrection(ctx, transactionRepo, &t, note, changes, now); err != nil {
			return err
		}

		res.Transaction = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}

func (s *ReassignmentService) logReassignment(ctx context.Context, ownerID, kind, from, to string, res model.ReassignmentResult) {
	s.logger.InfoContext(ctx, "transaction reassigned",
		"owner_id", ownerID, "transaction_id", res.Transaction.ID, "kind", kind, "from", from, "to", to)
	for _, w := range res.Warnings {
		s.logger.WarnContext(ctx, "reassignment destination lifecycle warning",
			"owner_id", ownerID, "transaction_id", res.Transaction.ID, "warning", w)
	}
}
