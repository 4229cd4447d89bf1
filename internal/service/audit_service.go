package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
)

// AuditService re-derives show card status and cash reversals from the
// transaction history and reports where stored state has drifted.
// It never repairs anything.
type AuditService struct {
	showCardRepo    *repository.ShowCardRepository
	transactionRepo *repository.TransactionRepository
	cashRepo        *repository.CashTransactionRepository
	lotRepo         *repository.LotRepository
	logger          *slog.Logger
}

// NewAuditService creates a new AuditService with the provided repository dependencies.
func NewAuditService(
	showCardRepo *repository.ShowCardRepository,
	transactionRepo *repository.TransactionRepository,
	cashRepo *repository.CashTransactionRepository,
	lotRepo *repository.LotRepository,
	logger *slog.Logger,
) *AuditService {
	return &AuditService{
		showCardRepo:    showCardRepo,
		transactionRepo: transactionRepo,
		cashRepo:        cashRepo,
		lotRepo:         lotRepo,
		logger:          logger,
	}
}

// Audit checks the ledger of one owner, or of every owner when ownerID is empty.
//
// Findings:
//   - sold_without_sale: card is sold but no live show card sale references it
//   - sale_on_unsold_card: a live show card sale references a card that is not sold
//   - disposed_without_record: card is combined or lost without a matching live disposition
//   - missing_reversal: deleted transaction with revenue but no reversal cash row
//   - closed_lot_with_inventory: closed lot still holds available cards
func (s *AuditService) Audit(ctx context.Context, ownerID string) (model.AuditReport, error) {
	report := model.AuditReport{
		CheckedAt:     time.Now().UTC(),
		Discrepancies: []model.Discrepancy{},
	}
	add := func(kind model.DiscrepancyKind, owner, entityID, detail string) {
		report.Discrepancies = append(report.Discrepancies, model.Discrepancy{
			Kind: kind, OwnerID: owner, EntityID: entityID, Detail: detail,
		})
	}

	cards, err := s.showCardRepo.ListShowCards(ctx, ownerID, model.ShowCardFilter{})
	if err != nil {
		return report, err
	}
	transactions, err := s.transactionRepo.ListTransactions(ctx, ownerID, model.TransactionFilter{IncludeDeleted: true})
	if err != nil {
		return report, err
	}
	entries, err := s.cashRepo.ListCashTransactions(ctx, ownerID)
	if err != nil {
		return report, err
	}

	// live transaction types per card
	live := make(map[string]map[model.TransactionType]bool)
	reversed := make(map[string]bool)
	for _, e := range entries {
		if e.Type == model.CashTypeReversal && e.TransactionID != "" {
			reversed[e.TransactionID] = true
		}
	}

	for _, t := range transactions {
		if t.Deleted {
			if !t.Revenue.IsZero() && !reversed[t.ID] {
				add(model.DiscrepancyMissingReversal, t.OwnerID, t.ID,
					fmt.Sprintf("deleted %s with revenue %s has no reversal", t.Type, t.Revenue.String()))
			}
			continue
		}
		if t.ShowCardID == "" {
			continue
		}
		if live[t.ShowCardID] == nil {
			live[t.ShowCardID] = make(map[model.TransactionType]bool)
		}
		live[t.ShowCardID][t.Type] = true
	}

	for _, card := range cards {
		types := live[card.ID]
		switch card.Status {
		case model.CardStatusSold:
			if !types[model.TransactionTypeShowCardSale] {
				add(model.DiscrepancySoldWithoutSale, card.OwnerID, card.ID,
					fmt.Sprintf("card %q is sold without a live sale", card.Name))
			}
		case model.CardStatusCombined:
			if !types[model.TransactionTypeCombined] {
				add(model.DiscrepancyDisposedWithoutRecord, card.OwnerID, card.ID,
					fmt.Sprintf("card %q is combined without a live combined disposition", card.Name))
			}
		case model.CardStatusLost:
			if !types[model.TransactionTypeLost] && !types[model.TransactionTypeDiscarded] {
				add(model.DiscrepancyDisposedWithoutRecord, card.OwnerID, card.ID,
					fmt.Sprintf("card %q is lost without a live lost or discarded disposition", card.Name))
			}
		}
		if types[model.TransactionTypeShowCardSale] && card.Status != model.CardStatusSold {
			add(model.DiscrepancySaleOnUnsoldCard, card.OwnerID, card.ID,
				fmt.Sprintf("card %q has a live sale but is %s", card.Name, card.Status))
		}
	}

	closed, err := s.lotRepo.ListClosedLotIDs(ctx, ownerID)
	if err != nil {
		return report, err
	}
	lotIDs := make([]string, 0, len(closed))
	for id := range closed {
		lotIDs = append(lotIDs, id)
	}
	sort.Strings(lotIDs)
	for _, id := range lotIDs {
		available, err := s.showCardRepo.CountAvailable(ctx, id)
		if err != nil {
			return report, err
		}
		if available > 0 {
			add(model.DiscrepancyClosedLotWithInventory, closed[id], id,
				fmt.Sprintf("closed lot has %d available cards", available))
		}
	}

	return report, nil
}

// RunScheduled audits every owner and logs the findings.
func (s *AuditService) RunScheduled(ctx context.Context) {
	report, err := s.Audit(ctx, "")
	if err != nil {
		s.logger.ErrorContext(ctx, "consistency audit failed", "error", err)
		return
	}

	if report.Clean() {
		s.logger.InfoContext(ctx, "consistency audit clean")
		return
	}

	for _, d := range report.Discrepancies {
		s.logger.WarnContext(ctx, "ledger discrepancy",
			"kind", d.Kind, "owner_id", d.OwnerID, "entity_id", d.EntityID, "detail", d.Detail)
	}
	s.logger.WarnContext(ctx, "consistency audit found discrepancies", "count", len(report.Discrepancies))
}
