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
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

func TestReassignmentService_ReassignLot(t *testing.T) {
	t.Run("revenue moves to the destination lot", func(t *testing.T) {
		l := newLedger(t)
		source := testutil.NewLot(l.owner).WithTotalCost("100").Build(t, l.db)
		dest := testutil.NewLot(l.owner).WithTotalCost("50").Build(t, l.db)
		tx, err := l.svc.Sale.RecordBulkSale(l.ctx, l.owner, request.RecordBulkSaleRequest{
			LotID: source.ID, Revenue: decimal.NewFromInt(30), Date: saleDate,
		})
		assert.NoError(t, err)

		res, err := l.svc.Reassignment.ReassignLot(l.ctx, l.owner, tx.ID, request.ReassignLotRequest{
			FromLotID: source.ID, ToLotID: dest.ID, CorrectionNote: "bundle came from the other box",
		})
		assert.NoError(t, err)
		assert.Equal(t, dest.ID, res.Transaction.LotID)
		assert.Equal(t, 1, res.Transaction.CorrectionCount)
		assert.Equal(t, 0, len(res.Warnings))

		assertMoney(t, "-100", l.lotNet(t, source.ID))
		assertMoney(t, "-20", l.lotNet(t, dest.ID))
		// Attribution changes never touch cash
		assertMoney(t, "30", l.balance(t))
	})

	t.Run("stale source is rejected", func(t *testing.T) {
		l := newLedger(t)
		source := testutil.NewLot(l.owner).Build(t, l.db)
		dest := testutil.NewLot(l.owner).Build(t, l.db)
		tx := testutil.NewTransaction(l.owner).WithLot(source.ID).Build(t, l.db)

		_, err := l.svc.Reassignment.ReassignLot(l.ctx, l.owner, tx.ID, request.ReassignLotRequest{
			FromLotID: dest.ID, ToLotID: source.ID, CorrectionNote: "moving it back again",
		})
		assert.True(t, errors.Is(err, apperrors.ErrStaleAssignment))
	})

	t.Run("closed destination is allowed with a warning", func(t *testing.T) {
		l := newLedger(t)
		source := testutil.NewLot(l.owner).Build(t, l.db)
		dest := testutil.NewLot(l.owner).WithStatus(model.LotStatusClosed).Build(t, l.db)
		tx := testutil.NewTransaction(l.owner).WithLot(source.ID).Build(t, l.db)

		res, err := l.svc.Reassignment.ReassignLot(l.ctx, l.owner, tx.ID, request.ReassignLotRequest{
			FromLotID: source.ID, ToLotID: dest.ID, CorrectionNote: "belongs to last month's box",
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, len(res.Warnings))
		assert.Contains(t, res.Warnings[0], "closed")
	})

	t.Run("show card moves with its sale", func(t *testing.T) {
		l := newLedger(t)
		_, cards := testutil.CreateLotWithCards(t, l.db, l.owner, "100", 1)
		dest := testutil.NewLot(l.owner).Build(t, l.db)
		sale := l.sell(t, cards[0].ID, "60")

		_, err := l.svc.Reassignment.ReassignLot(l.ctx, l.owner, sale.ID, request.ReassignLotRequest{
			FromLotID: cards[0].LotID, ToLotID: dest.ID, CorrectionNote: "card was logged in the wrong lot",
		})
		assert.NoError(t, err)

		card := l.card(t, cards[0].ID)
		assert.Equal(t, dest.ID, card.LotID)
		assert.Equal(t, model.CardStatusSold, card.Status)
	})

	t.Run("combined card cannot move into its destination lot", func(t *testing.T) {
		l := newLedger(t)
		lot, cards := testutil.CreateLotWithCards(t, l.db, l.owner, "100", 1)
		dest := testutil.NewLot(l.owner).Build(t, l.db)
		tx, err := l.svc.Sale.RecordDisposition(l.ctx, l.owner, request.RecordDispositionRequest{
			ShowCardID: cards[0].ID, Type: "combined", DestinationLotID: dest.ID, Date: saleDate,
		})
		assert.NoError(t, err)

		_, err = l.svc.Reassignment.ReassignLot(l.ctx, l.owner, tx.ID, request.ReassignLotRequest{
			FromLotID: lot.ID, ToLotID: dest.ID, CorrectionNote: "combined record on wrong lot",
		})
		var verr *validation.Error
		assert.True(t, errors.As(err, &verr))
	})
}

func TestReassignmentService_ReassignShow(t *testing.T) {
	t.Run("moves a sale between shows", func(t *testing.T) {
		l := newLedger(t)
		lot := testutil.NewLot(l.owner).Build(t, l.db)
		from := testutil.NewShow(l.owner).Build(t, l.db)
		to := testutil.NewShow(l.owner).WithStatus(model.ShowStatusCompleted).Build(t, l.db)
		tx := testutil.NewTransaction(l.owner).WithLot(lot.ID).WithShow(from.ID).WithRevenue("40").Build(t, l.db)

		res, err := l.svc.Reassignment.ReassignShow(l.ctx, l.owner, tx.ID, request.ReassignShowRequest{
			FromShowID: from.ID, ToShowID: to.ID, CorrectionNote: "sold at Sunday's show",
		})
		assert.NoError(t, err)
		assert.Equal(t, to.ID, res.Transaction.ShowID)
		assert.Equal(t, 1, len(res.Warnings))

		fromSummary, err := l.svc.Show.ShowSummary(l.ctx, l.owner, from.ID)
		assert.NoError(t, err)
		toSummary, err := l.svc.Show.ShowSummary(l.ctx, l.owner, to.ID)
		assert.NoError(t, err)
		assertMoney(t, "0", fromSummary.Revenue)
		assertMoney(t, "40", toSummary.Revenue)
	})

	t.Run("dispositions have no show", func(t *testing.T) {
		l := newLedger(t)
		show := testutil.NewShow(l.owner).Build(t, l.db)
		tx := testutil.NewTransaction(l.owner).WithType(model.TransactionTypeLost).WithRevenue("0").Build(t, l.db)

		_, err := l.svc.Reassignment.ReassignShow(l.ctx, l.owner, tx.ID, request.ReassignShowRequest{
			ToShowID: show.ID, CorrectionNote: "attach to a show anyway",
		})
		assert.True(t, errors.Is(err, apperrors.ErrWrongTransactionType))
	})
}

func TestReassignmentService_ReassignShowCardSale(t *testing.T) {
	l := newLedger(t)
	_, cards := testutil.CreateLotWithCards(t, l.db, l.owner, "100", 1)
	first := testutil.NewShow(l.owner).Build(t, l.db)
	second := testutil.NewShow(l.owner).Build(t, l.db)

	sale, err := l.svc.Sale.RecordShowCardSale(l.ctx, l.owner, request.RecordShowCardSaleRequest{
		ShowCardID: cards[0].ID, ShowID: first.ID, Revenue: decimal.NewFromInt(60), Date: saleDate,
	})
	assert.NoError(t, err)

	res, err := l.svc.Reassignment.ReassignShowCardSale(l.ctx, l.owner, request.ReassignShowCardSaleRequest{
		TransactionID: sale.ID, NewShowID: second.ID, CorrectionNote: "sold at the second show",
	})
	assert.NoError(t, err)
	assert.Equal(t, second.ID, res.Transaction.ShowID)
	assert.Equal(t, model.CardStatusSold, l.card(t, cards[0].ID).Status)

	t.Run("same show is rejected", func(t *testing.T) {
		_, err := l.svc.Reassignment.ReassignShowCardSale(l.ctx, l.owner, request.ReassignShowCardSaleRequest{
			TransactionID: sale.ID, NewShowID: second.ID, CorrectionNote: "sold at the second show",
		})
		var verr *validation.Error
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, "destination show must differ from the current show", verr.Fields["new_show_id"])
	})
}
