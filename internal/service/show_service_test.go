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

func TestShowService_CreateShow(t *testing.T) {
	l := newLedger(t)

	show, err := l.svc.Show.CreateShow(l.ctx, l.owner, request.CreateShowRequest{
		Name:      "Spring Card Fair",
		Date:      "2025-04-12",
		TableCost: decimal.NewFromInt(40),
	})
	assert.NoError(t, err)
	assert.Equal(t, model.ShowStatusPlanned, show.Status)

	shows, err := l.svc.Show.ListShows(l.ctx, l.owner)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(shows))
}

func TestShowService_UpdateShowStatus(t *testing.T) {
	t.Run("moves backwards without activity", func(t *testing.T) {
		l := newLedger(t)
		show := testutil.NewShow(l.owner).WithStatus(model.ShowStatusCompleted).Build(t, l.db)

		updated, err := l.svc.Show.UpdateShowStatus(l.ctx, l.owner, show.ID, request.UpdateShowStatusRequest{Status: "planned"})
		assert.NoError(t, err)
		assert.Equal(t, model.ShowStatusPlanned, updated.Status)
	})

	t.Run("financial activity blocks regression", func(t *testing.T) {
		l := newLedger(t)
		lot := testutil.NewLot(l.owner).Build(t, l.db)
		show := testutil.NewShow(l.owner).WithStatus(model.ShowStatusActive).Build(t, l.db)
		testutil.NewTransaction(l.owner).WithLot(lot.ID).WithShow(show.ID).Build(t, l.db)

		_, err := l.svc.Show.UpdateShowStatus(l.ctx, l.owner, show.ID, request.UpdateShowStatusRequest{Status: "planned"})
		assert.True(t, errors.Is(err, apperrors.ErrShowStatusRegression))

		updated, err := l.svc.Show.UpdateShowStatus(l.ctx, l.owner, show.ID, request.UpdateShowStatusRequest{Status: "completed"})
		assert.NoError(t, err)
		assert.Equal(t, model.ShowStatusCompleted, updated.Status)
	})

	t.Run("deleted activity still blocks regression", func(t *testing.T) {
		l := newLedger(t)
		lot := testutil.NewLot(l.owner).Build(t, l.db)
		show := testutil.NewShow(l.owner).WithStatus(model.ShowStatusActive).Build(t, l.db)
		testutil.NewTransaction(l.owner).WithLot(lot.ID).WithShow(show.ID).AsDeleted().Build(t, l.db)

		_, err := l.svc.Show.UpdateShowStatus(l.ctx, l.owner, show.ID, request.UpdateShowStatusRequest{Status: "planned"})
		assert.True(t, errors.Is(err, apperrors.ErrShowStatusRegression))
	})

	t.Run("sale moved onto a show then deleted blocks regression", func(t *testing.T) {
		l := newLedger(t)
		_, cards := testutil.CreateLotWithCards(t, l.db, l.owner, "100", 1)
		show := testutil.NewShow(l.owner).WithStatus(model.ShowStatusActive).Build(t, l.db)
		sale := l.sell(t, cards[0].ID, "60")

		_, err := l.svc.Reassignment.ReassignShowCardSale(l.ctx, l.owner, request.ReassignShowCardSaleRequest{
			TransactionID:  sale.ID,
			NewShowID:      show.ID,
			CorrectionNote: "sold at the spring show",
		})
		assert.NoError(t, err)

		_, err = l.svc.Reversal.DeleteTransaction(l.ctx, l.owner, sale.ID, request.DeleteRequest{Reason: testutil.Reason})
		assert.NoError(t, err)

		_, err = l.svc.Show.UpdateShowStatus(l.ctx, l.owner, show.ID, request.UpdateShowStatusRequest{Status: "planned"})
		assert.True(t, errors.Is(err, apperrors.ErrShowStatusRegression))

		stored, err := l.svc.Show.GetShow(l.ctx, l.owner, show.ID)
		assert.NoError(t, err)
		assert.Equal(t, model.ShowStatusActive, stored.Status)
	})
}

func TestShowService_ShowSummary(t *testing.T) {
	l := newLedger(t)
	lot := testutil.NewLot(l.owner).Build(t, l.db)
	show := testutil.NewShow(l.owner).WithTableCost("25").Build(t, l.db)
	testutil.NewTransaction(l.owner).WithLot(lot.ID).WithShow(show.ID).WithRevenue("80").Build(t, l.db)
	testutil.NewExpense(l.owner).WithShow(show.ID).WithAmount("10").Build(t, l.db)

	summary, err := l.svc.Show.ShowSummary(l.ctx, l.owner, show.ID)
	assert.NoError(t, err)
	assertMoney(t, "80", summary.Revenue)
	assertMoney(t, "10", summary.Expenses)
	assertMoney(t, "45", summary.Net)
	assert.Equal(t, 1, summary.TransactionCount)
}
