package service_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/testutil"
)

func kinds(report model.AuditReport) map[model.DiscrepancyKind][]string {
	out := make(map[model.DiscrepancyKind][]string)
	for _, d := range report.Discrepancies {
		out[d.Kind] = append(out[d.Kind], d.EntityID)
	}
	return out
}

func TestAuditService_Audit(t *testing.T) {
	t.Run("ledger operations keep the books clean", func(t *testing.T) {
		l := newLedger(t)
		lot, cards := testutil.CreateLotWithCards(t, l.db, l.owner, "100", 3)
		dest := testutil.NewLot(l.owner).Build(t, l.db)

		sale := l.sell(t, cards[0].ID, "60")
		_, err := l.svc.Reversal.DeleteTransaction(l.ctx, l.owner, sale.ID, request.DeleteRequest{Reason: testutil.Reason})
		assert.NoError(t, err)
		l.sell(t, cards[0].ID, "55")
		l.sell(t, cards[1].ID, "20")
		_, err = l.svc.Sale.RecordDisposition(l.ctx, l.owner, request.RecordDispositionRequest{
			ShowCardID: cards[2].ID, Type: "combined", DestinationLotID: dest.ID, Date: saleDate,
		})
		assert.NoError(t, err)
		_, err = l.svc.Lot.CloseLot(l.ctx, l.owner, lot.ID, request.CloseLotRequest{})
		assert.NoError(t, err)

		report, err := l.svc.Audit.Audit(l.ctx, l.owner)
		assert.NoError(t, err)
		assert.True(t, report.Clean())
		assert.Equal(t, []model.Discrepancy{}, report.Discrepancies)
	})

	t.Run("reports every kind of drift", func(t *testing.T) {
		l := newLedger(t)
		lot := testutil.NewLot(l.owner).Build(t, l.db)
		closedLot := testutil.NewLot(l.owner).WithStatus(model.LotStatusClosed).Build(t, l.db)

		soldNoSale := testutil.NewShowCard(l.owner, lot.ID).WithStatus(model.CardStatusSold).Build(t, l.db)
		availableWithSale := testutil.NewShowCard(l.owner, lot.ID).Build(t, l.db)
		testutil.NewTransaction(l.owner).WithShowCard(availableWithSale.ID).WithLot(lot.ID).Build(t, l.db)
		lostNoRecord := testutil.NewShowCard(l.owner, lot.ID).WithStatus(model.CardStatusLost).Build(t, l.db)
		deletedNoReversal := testutil.NewTransaction(l.owner).WithLot(lot.ID).WithRevenue("30").AsDeleted().Build(t, l.db)
		testutil.NewShowCard(l.owner, closedLot.ID).Build(t, l.db)

		report, err := l.svc.Audit.Audit(l.ctx, l.owner)
		assert.NoError(t, err)
		assert.False(t, report.Clean())

		found := kinds(report)
		assert.Equal(t, []string{soldNoSale.ID}, found[model.DiscrepancySoldWithoutSale])
		assert.Equal(t, []string{availableWithSale.ID}, found[model.DiscrepancySaleOnUnsoldCard])
		assert.Equal(t, []string{lostNoRecord.ID}, found[model.DiscrepancyDisposedWithoutRecord])
		assert.Equal(t, []string{deletedNoReversal.ID}, found[model.DiscrepancyMissingReversal])
		assert.Equal(t, []string{closedLot.ID}, found[model.DiscrepancyClosedLotWithInventory])
	})

	t.Run("owners are audited separately", func(t *testing.T) {
		l := newLedger(t)
		other := testutil.MakeOwnerID()
		lot := testutil.NewLot(other).Build(t, l.db)
		testutil.NewShowCard(other, lot.ID).WithStatus(model.CardStatusSold).Build(t, l.db)

		mine, err := l.svc.Audit.Audit(l.ctx, l.owner)
		assert.NoError(t, err)
		assert.True(t, mine.Clean())

		all, err := l.svc.Audit.Audit(l.ctx, "")
		assert.NoError(t, err)
		assert.Equal(t, 1, len(all.Discrepancies))
		assert.Equal(t, other, all.Discrepancies[0].OwnerID)
	})
}

func TestDashboardService_Overview(t *testing.T) {
	l := newLedger(t)
	lot, cards := testutil.CreateLotWithCards(t, l.db, l.owner, "100", 1)
	show := testutil.NewShow(l.owner).Build(t, l.db)
	testutil.NewCashTransaction(l.owner, "50").Build(t, l.db)
	l.sell(t, cards[0].ID, "60")

	overview, err := l.svc.Dashboard.Overview(l.ctx, l.owner)
	assert.NoError(t, err)
	assert.Equal(t, l.owner, overview.OwnerID)
	assertMoney(t, "110", overview.CashBalance)
	assert.Equal(t, 1, len(overview.Lots))
	assert.Equal(t, lot.ID, overview.Lots[0].Lot.ID)
	assertMoney(t, "-40", overview.Lots[0].Net)
	assert.Equal(t, 1, len(overview.Shows))
	assert.Equal(t, show.ID, overview.Shows[0].Show.ID)
}
