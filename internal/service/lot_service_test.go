package service_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/testutil"
)

func TestLotService_CreateLot(t *testing.T) {
	t.Run("paid from cash books a purchase", func(t *testing.T) {
		l := newLedger(t)

		lot, err := l.svc.Lot.CreateLot(l.ctx, l.owner, request.CreateLotRequest{
			Name:         "  EstateBox  ",
			PurchaseDate: saleDate,
			TotalCost:    decimal.NewFromInt(100),
			PaidFromCash: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, "EstateBox", lot.Name)
		assert.Equal(t, model.LotStatusActive, lot.Status)

		purchases := cashOfTypeFromDB(t, l, model.CashTypePurchase)
		assert.Equal(t, 1, len(purchases))
		assert.Equal(t, lot.ID, purchases[0].LotID)
		assertMoney(t, "-100", l.balance(t))
	})

	t.Run("cost alone does not touch cash", func(t *testing.T) {
		l := newLedger(t)

		_, err := l.svc.Lot.CreateLot(l.ctx, l.owner, request.CreateLotRequest{
			Name:         "Auction lot",
			PurchaseDate: saleDate,
			TotalCost:    decimal.NewFromInt(100),
		})
		assert.NoError(t, err)
		testutil.AssertRowCount(t, l.db, "cash_transaction", 0)
	})
}

func TestLotService_CloseLot(t *testing.T) {
	t.Run("available cards block closing", func(t *testing.T) {
		l := newLedger(t)
		lot, cards := testutil.CreateLotWithCards(t, l.db, l.owner, "100", 2)
		l.sell(t, cards[0].ID, "60")

		_, err := l.svc.Lot.CloseLot(l.ctx, l.owner, lot.ID, request.CloseLotRequest{})
		assert.True(t, errors.Is(err, apperrors.ErrLotHasAvailableCards))

		stored, err := l.svc.Lot.GetLot(l.ctx, l.owner, lot.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.LotStatusActive, stored.Status)
	})

	t.Run("closes once every card has left", func(t *testing.T) {
		l := newLedger(t)
		lot, cards := testutil.CreateLotWithCards(t, l.db, l.owner, "100", 2)
		l.sell(t, cards[0].ID, "60")
		_, err := l.svc.Sale.RecordDisposition(l.ctx, l.owner, request.RecordDispositionRequest{
			ShowCardID: cards[1].ID, Type: "lost", Date: saleDate,
		})
		assert.NoError(t, err)

		closed, err := l.svc.Lot.CloseLot(l.ctx, l.owner, lot.ID, request.CloseLotRequest{ClosureNotes: "all gone"})
		assert.NoError(t, err)
		assert.Equal(t, model.LotStatusClosed, closed.Status)
		assert.NotZero(t, closed.ClosedAt)
		assert.Equal(t, "all gone", closed.ClosureNotes)
	})

	t.Run("lifecycle transitions", func(t *testing.T) {
		l := newLedger(t)
		lot := testutil.NewLot(l.owner).Build(t, l.db)

		_, err := l.svc.Lot.ArchiveLot(l.ctx, l.owner, lot.ID)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidLotTransition))

		_, err = l.svc.Lot.CloseLot(l.ctx, l.owner, lot.ID, request.CloseLotRequest{})
		assert.NoError(t, err)

		reopened, err := l.svc.Lot.ReopenLot(l.ctx, l.owner, lot.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.LotStatusActive, reopened.Status)
		assert.Zero(t, reopened.ClosedAt)

		_, err = l.svc.Lot.CloseLot(l.ctx, l.owner, lot.ID, request.CloseLotRequest{})
		assert.NoError(t, err)
		archived, err := l.svc.Lot.ArchiveLot(l.ctx, l.owner, lot.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.LotStatusArchived, archived.Status)

		_, err = l.svc.Lot.CloseLot(l.ctx, l.owner, lot.ID, request.CloseLotRequest{})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidLotTransition))
	})
}

func TestLotService_LotSummary(t *testing.T) {
	l := newLedger(t)
	lot, cards := testutil.CreateLotWithCards(t, l.db, l.owner, "100", 3)
	l.sell(t, cards[0].ID, "60")
	l.sell(t, cards[1].ID, "25.50")
	testutil.NewTransaction(l.owner).WithLot(lot.ID).WithRevenue("999").AsDeleted().Build(t, l.db)

	summary, err := l.svc.Lot.LotSummary(l.ctx, l.owner, lot.ID)
	assert.NoError(t, err)
	assertMoney(t, "85.50", summary.Revenue)
	assertMoney(t, "-14.50", summary.Net)
	assert.Equal(t, 2, summary.TransactionCount)
	assert.Equal(t, 2, summary.CardCounts[model.CardStatusSold])
	assert.Equal(t, 1, summary.CardCounts[model.CardStatusAvailable])
}

func TestShowCardService_CreateShowCard(t *testing.T) {
	l := newLedger(t)
	closed := testutil.NewLot(l.owner).WithStatus(model.LotStatusClosed).Build(t, l.db)
	active := testutil.NewLot(l.owner).Build(t, l.db)

	_, err := l.svc.ShowCard.CreateShowCard(l.ctx, l.owner, request.CreateShowCardRequest{LotID: closed.ID, Name: "Holo"})
	assert.True(t, errors.Is(err, apperrors.ErrLotNotActive))

	card, err := l.svc.ShowCard.CreateShowCard(l.ctx, l.owner, request.CreateShowCardRequest{LotID: active.ID, Name: "Holo"})
	assert.NoError(t, err)
	assert.Equal(t, model.CardStatusAvailable, card.Status)

	listed, err := l.svc.ShowCard.ListShowCards(l.ctx, l.owner, model.ShowCardFilter{LotID: active.ID})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(listed))
}
