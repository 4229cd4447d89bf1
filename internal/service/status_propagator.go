package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
)

// StatusPropagator keeps ShowCard.status in step with the transactions that
// reference a card. It is only invoked from inside a unit of work so the
// status write commits together with the transaction that implies it.
//
// Transitions:
//   - available -> sold: show_card_sale recorded
//   - available -> combined (destination lot set): combined disposition recorded
//   - available -> lost: lost or discarded disposition recorded
//   - sold|combined|lost -> available: the originating transaction is deleted
//
// A card that returns to available reopens its lot when the lot is closed or
// archived, so no inactive lot holds inventory.
type StatusPropagator struct {
	showCardRepo *repository.ShowCardRepository
	lotRepo      *repository.LotRepository
	logger       *slog.Logger
}

// NewStatusPropagator creates a new StatusPropagator.
func NewStatusPropagator(
	showCardRepo *repository.ShowCardRepository,
	lotRepo *repository.LotRepository,
	logger *slog.Logger,
) *StatusPropagator {
	return &StatusPropagator{
		showCardRepo: showCardRepo,
		lotRepo:      lotRepo,
		logger:       logger,
	}
}

// WithTx returns a propagator whose writes join tx.
func (p *StatusPropagator) WithTx(tx *sql.Tx) *StatusPropagator {
	return &StatusPropagator{
		showCardRepo: p.showCardRepo.WithTx(tx),
		lotRepo:      p.lotRepo.WithTx(tx),
		logger:       p.logger,
	}
}

// targetStatus maps a transaction type to the card status it implies.
func targetStatus(t model.TransactionType) (model.CardStatus, bool) {
	switch t {
	case model.TransactionTypeShowCardSale:
		return model.CardStatusSold, true
	case model.TransactionTypeCombined:
		return model.CardStatusCombined, true
	case model.TransactionTypeLost, model.TransactionTypeDiscarded:
		return model.CardStatusLost, true
	}
	return "", false
}

// OnRecorded applies the card transition implied by a newly recorded transaction.
// The card must currently be available.
func (p *StatusPropagator) OnRecorded(ctx context.Context, card model.ShowCard, t model.Transaction, destinationLotID string) error {
	status, ok := targetStatus(t.Type)
	if !ok {
		return nil
	}
	if card.Status != model.CardStatusAvailable {
		return apperrors.ErrShowCardNotAvailable
	}

	if status != model.CardStatusCombined {
		destinationLotID = ""
	}
	if err := p.showCardRepo.UpdateStatus(ctx, card.ID, status, destinationLotID); err != nil {
		return fmt.Errorf("failed to mark show card %s: %w", status, err)
	}

	p.logger.DebugContext(ctx, "show card status changed",
		"show_card_id", card.ID, "from", card.Status, "to", status, "transaction_id", t.ID)
	return nil
}

// OnReverted returns the card referenced by a deleted transaction to available
// and clears any destination lot. If the card's lot is no longer active it is
// reopened and the returned lot is non-nil.
func (p *StatusPropagator) OnReverted(ctx context.Context, t model.Transaction) (*model.Lot, error) {
	expected, ok := targetStatus(t.Type)
	if !ok || t.ShowCardID == "" {
		return nil, nil
	}

	card, err := p.showCardRepo.GetShowCard(ctx, t.OwnerID, t.ShowCardID)
	if err != nil {
		return nil, err
	}
	if card.Status != expected {
		p.logger.WarnContext(ctx, "show card status disagreed with reverted transaction",
			"show_card_id", card.ID, "status", card.Status, "expected", expected, "transaction_id", t.ID)
	}

	if err := p.showCardRepo.UpdateStatus(ctx, card.ID, model.CardStatusAvailable, ""); err != nil {
		return nil, fmt.Errorf("failed to return show card to available: %w", err)
	}

	p.logger.DebugContext(ctx, "show card status changed",
		"show_card_id", card.ID, "from", card.Status, "to", model.CardStatusAvailable, "transaction_id", t.ID)

	return p.reopenLot(ctx, card)
}

// reopenLot moves the card's lot back to active when it is closed or archived.
func (p *StatusPropagator) reopenLot(ctx context.Context, card model.ShowCard) (*model.Lot, error) {
	lot, err := p.lotRepo.GetLot(ctx, card.OwnerID, card.LotID)
	if err != nil {
		return nil, err
	}
	if lot.Status == model.LotStatusActive {
		return nil, nil
	}

	from := lot.Status
	lot.Status = model.LotStatusActive
	lot.ClosedAt = nil
	lot.ClosureNotes = ""
	if err := p.lotRepo.UpdateLotStatus(ctx, &lot); err != nil {
		return nil, fmt.Errorf("failed to reopen lot: %w", err)
	}

	p.logger.DebugContext(ctx, "lot reopened by reversal",
		"owner_id", card.OwnerID, "lot_id", lot.ID, "from", from, "show_card_id", card.ID)
	return &lot, nil
}

// AvailableCount returns the number of available cards in a lot; a lot can
// only close when this is zero.
func (p *StatusPropagator) AvailableCount(ctx context.Context, lotID string) (int, error) {
	return p.showCardRepo.CountAvailable(ctx, lotID)
}
