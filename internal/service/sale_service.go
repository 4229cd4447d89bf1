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
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// SaleService records new transactions: show card sales, bulk sales and
// dispositions. Each recording is one unit of work covering the transaction
// row, the card status it implies and the cash it brings in.
type SaleService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	showCardRepo    *repository.ShowCardRepository
	lotRepo         *repository.LotRepository
	showRepo        *repository.ShowRepository
	cashRepo        *repository.CashTransactionRepository
	propagator      *StatusPropagator
	logger          *slog.Logger
}

// NewSaleService creates a new SaleService with the provided repository dependencies.
func NewSaleService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	showCardRepo *repository.ShowCardRepository,
	lotRepo *repository.LotRepository,
	showRepo *repository.ShowRepository,
	cashRepo *repository.CashTransactionRepository,
	propagator *StatusPropagator,
	logger *slog.Logger,
) *SaleService {
	return &SaleService{
		db:              db,
		transactionRepo: transactionRepo,
		showCardRepo:    showCardRepo,
		lotRepo:         lotRepo,
		showRepo:        showRepo,
		cashRepo:        cashRepo,
		propagator:      propagator,
		logger:          logger,
	}
}

// RecordShowCardSale sells an available show card.
//
// The transaction inherits the card's owning lot. In the same unit of work the
// card is marked sold and a sale CashTransaction of +revenue is appended.
//
// Returns apperrors.ErrShowCardNotAvailable if the card is not available, and
// apperrors.ErrShowNotFound if a show is given that the owner does not have.
func (s *SaleService) RecordShowCardSale(ctx context.Context, ownerID string, req request.RecordShowCardSaleRequest) (*model.Transaction, error) {
	now := time.Now().UTC()
	if err := validation.ValidateShowCardSale(req, now); err != nil {
		return nil, err
	}

	t := &model.Transaction{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Type:       model.TransactionTypeShowCardSale,
		Revenue:    req.Revenue,
		Date:       parseValidatedDate(req.Date),
		Notes:      strings.TrimSpace(req.Notes),
		ShowCardID: req.ShowCardID,
		ShowID:     req.ShowID,
		CreatedAt:  now,
	}

	err := runInTx(ctx, s.db, "record show card sale", func(tx *sql.Tx) error {
		card, err := s.showCardRepo.WithTx(tx).GetShowCard(ctx, ownerID, req.ShowCardID)
		if err != nil {
			return err
		}
		if req.ShowID != "" {
			if _, err := s.showRepo.WithTx(tx).GetShow(ctx, ownerID, req.ShowID); err != nil {
				return err
			}
		}
		t.LotID = card.LotID

		if err := s.transactionRepo.WithTx(tx).InsertTransaction(ctx, t); err != nil {
			return err
		}
		if err := s.propagator.WithTx(tx).OnRecorded(ctx, card, *t, ""); err != nil {
			return err
		}

		entry := newCashEntry(ownerID, t.Revenue, model.CashTypeSale, t.Date, fmt.Sprintf("Sale of %s", card.Name))
		entry.TransactionID = t.ID
		entry.LotID = t.LotID
		return s.cashRepo.WithTx(tx).InsertCashTransaction(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "show card sale recorded",
		"owner_id", ownerID, "transaction_id", t.ID, "show_card_id", t.ShowCardID, "revenue", t.Revenue.String())
	return t, nil
}

// RecordBulkSale records a sale of untracked inventory against a lot and
// appends a sale CashTransaction of +revenue.
func (s *SaleService) RecordBulkSale(ctx context.Context, ownerID string, req request.RecordBulkSaleRequest) (*model.Transaction, error) {
	now := time.Now().UTC()
	if err := validation.ValidateBulkSale(req, now); err != nil {
		return nil, err
	}

	t := &model.Transaction{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Type:      model.TransactionTypeBulkSale,
		Revenue:   req.Revenue,
		Quantity:  req.Quantity,
		Date:      parseValidatedDate(req.Date),
		Notes:     strings.TrimSpace(req.Notes),
		LotID:     req.LotID,
		ShowID:    req.ShowID,
		CreatedAt: now,
	}

	err := runInTx(ctx, s.db, "record bulk sale", func(tx *sql.Tx) error {
		lot, err := s.lotRepo.WithTx(tx).GetLot(ctx, ownerID, req.LotID)
		if err != nil {
			return err
		}
		if req.ShowID != "" {
			if _, err := s.showRepo.WithTx(tx).GetShow(ctx, ownerID, req.ShowID); err != nil {
				return err
			}
		}

		if err := s.transactionRepo.WithTx(tx).InsertTransaction(ctx, t); err != nil {
			return err
		}

		entry := newCashEntry(ownerID, t.Revenue, model.CashTypeSale, t.Date, fmt.Sprintf("Bulk sale from %s", lot.Name))
		entry.TransactionID = t.ID
		entry.LotID = t.LotID
		return s.cashRepo.WithTx(tx).InsertCashTransaction(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "bulk sale recorded",
		"owner_id", ownerID, "transaction_id", t.ID, "lot_id", t.LotID, "revenue", t.Revenue.String())
	return t, nil
}

// RecordDisposition removes an available show card from inventory without a sale.
//
// Types:
//   - combined: the card moves into DestinationLotID, which must be another lot of the owner
//   - lost, discarded: the card is marked lost
//
// Dispositions carry zero revenue and write no cash row.
func (s *SaleService) RecordDisposition(ctx context.Context, ownerID string, req request.RecordDispositionRequest) (*model.Transaction, error) {
	now := time.Now().UTC()
	if err := validation.ValidateDisposition(req, now); err != nil {
		return nil, err
	}

	t := &model.Transaction{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Type:       model.TransactionType(req.Type),
		Date:       parseValidatedDate(req.Date),
		Notes:      strings.TrimSpace(req.Notes),
		ShowCardID: req.ShowCardID,
		CreatedAt:  now,
	}

	err := runInTx(ctx, s.db, "record disposition", func(tx *sql.Tx) error {
		card, err := s.showCardRepo.WithTx(tx).GetShowCard(ctx, ownerID, req.ShowCardID)
		if err != nil {
			return err
		}
		if t.Type == model.TransactionTypeCombined {
			if req.DestinationLotID == card.LotID {
				return &validation.Error{Fields: map[string]string{
					"destinationLotId": "destination lot must differ from the card's lot",
				}}
			}
			if _, err := s.lotRepo.WithTx(tx).GetLot(ctx, ownerID, req.DestinationLotID); err != nil {
				return err
			}
		}
		t.LotID = card.LotID

		if err := s.transactionRepo.WithTx(tx).InsertTransaction(ctx, t); err != nil {
			return err
		}
		return s.propagator.WithTx(tx).OnRecorded(ctx, card, *t, req.DestinationLotID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "disposition recorded",
		"owner_id", ownerID, "transaction_id", t.ID, "type", t.Type, "show_card_id", t.ShowCardID)
	return t, nil
}
