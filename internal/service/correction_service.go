package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// CorrectionService applies audited edits to existing transactions.
//
// Every correction carries a mandatory note and, in one unit of work:
//   - writes the changed fields, correction_note, corrected_at and correction_count+1
//   - appends one row to the correction history
//   - appends an adjustment CashTransaction of new-old when revenue changes
type CorrectionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	cashRepo        *repository.CashTransactionRepository
	logger          *slog.Logger
}

// NewCorrectionService creates a new CorrectionService with the provided repository dependencies.
func NewCorrectionService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	cashRepo *repository.CashTransactionRepository,
	logger *slog.Logger,
) *CorrectionService {
	return &CorrectionService{
		db:              db,
		transactionRepo: transactionRepo,
		cashRepo:        cashRepo,
		logger:          logger,
	}
}

// ApplyCorrection edits the date, notes, quantity or revenue of a transaction.
//
// Rules:
//   - deleted transactions cannot be corrected
//   - revenue can only be corrected on sales
//   - quantity can only be corrected on bulk sales
//
// Returns the updated transaction.
func (s *CorrectionService) ApplyCorrection(
	ctx context.Context,
	ownerID, transactionID string,
	req request.CorrectTransactionRequest,
) (*model.Transaction, error) {
	now := time.Now().UTC()
	if err := validation.ValidateCorrection(req, now); err != nil {
		return nil, err
	}

	var corrected model.Transaction
	var revenueDelta string

	err := runInTx(ctx, s.db, "apply correction", func(tx *sql.Tx) error {
		transactionRepo := s.transactionRepo.WithTx(tx)

		t, err := transactionRepo.GetTransaction(ctx, ownerID, transactionID)
		if err != nil {
			return err
		}
		if t.Deleted {
			return apperrors.ErrTransactionDeleted
		}

		changes := map[string]model.FieldChange{}
		oldRevenue := t.Revenue

		if req.Date != nil {
			date := parseValidatedDate(*req.Date)
			if !date.Equal(t.Date) {
				changes["date"] = model.FieldChange{From: t.Date.Format("2006-01-02"), To: *req.Date}
				t.Date = date
			}
		}
		if req.Notes != nil {
			notes := strings.TrimSpace(*req.Notes)
			if notes != t.Notes {
				changes["notes"] = model.FieldChange{From: t.Notes, To: notes}
				t.Notes = notes
			}
		}
		if req.Quantity != nil {
			if t.Type != model.TransactionTypeBulkSale {
				return fmt.Errorf("quantity on %s: %w", t.Type, apperrors.ErrWrongTransactionType)
			}
			if t.Quantity == nil || *t.Quantity != *req.Quantity {
				from := ""
				if t.Quantity != nil {
					from = strconv.Itoa(*t.Quantity)
				}
				changes["quantity"] = model.FieldChange{From: from, To: strconv.Itoa(*req.Quantity)}
				q := *req.Quantity
				t.Quantity = &q
			}
		}
		if req.Revenue != nil {
			if !t.Type.IsSale() {
				return fmt.Errorf("revenue on %s: %w", t.Type, apperrors.ErrWrongTransactionType)
			}
			if !req.Revenue.Equal(t.Revenue) {
				changes["revenue"] = model.FieldChange{From: t.Revenue.String(), To: req.Revenue.String()}
				t.Revenue = *req.Revenue
			}
		}

		if err := recordCorrection(ctx, transactionRepo, &t, req.CorrectionNote, changes, now); err != nil {
			return err
		}

		if delta := t.Revenue.Sub(oldRevenue); !delta.IsZero() {
			entry := newCashEntry(ownerID, delta, model.CashTypeAdjustment, now,
				fmt.Sprintf("Revenue correction %s -> %s", oldRevenue.String(), t.Revenue.String()))
			entry.TransactionID = t.ID
			entry.LotID = t.LotID
			if err := s.cashRepo.WithTx(tx).InsertCashTransaction(ctx, entry); err != nil {
				return err
			}
			revenueDelta = delta.String()
		}

		corrected = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "transaction corrected",
		"owner_id", ownerID, "transaction_id", corrected.ID,
		"correction_count", corrected.CorrectionCount, "revenue_delta", revenueDelta)
	return &corrected, nil
}

// recordCorrection stamps the correction metadata on t, persists it and
// appends the history entry. The caller supplies a transaction-scoped repository.
func recordCorrection(
	ctx context.Context,
	transactionRepo *repository.TransactionRepository,
	t *model.Transaction,
	note string,
	changes map[string]model.FieldChange,
	now time.Time,
) error {
	note = strings.TrimSpace(note)

	t.CorrectionNote = note
	t.CorrectedAt = &now
	t.CorrectionCount++

	if err := transactionRepo.UpdateCorrected(ctx, t); err != nil {
		return err
	}

	return transactionRepo.InsertCorrection(ctx, &model.TransactionCorrection{
		ID:            uuid.New().String(),
		TransactionID: t.ID,
		OwnerID:       t.OwnerID,
		Sequence:      t.CorrectionCount,
		Note:          note,
		Changes:       changes,
		CorrectedAt:   now,
	})
}
