package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/testutil"
)

const saleDate = "2025-06-01"

type ledger struct {
	db    *sql.DB
	svc   testutil.Services
	owner string
	ctx   context.Context
}

func newLedger(t *testing.T) *ledger {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return &ledger{
		db:    db,
		svc:   testutil.NewTestServices(t, db),
		owner: testutil.MakeOwnerID(),
		ctx:   context.Background(),
	}
}

func (l *ledger) sell(t *testing.T, cardID, revenue string) *model.Transaction {
	t.Helper()
	tx, err := l.svc.Sale.RecordShowCardSale(l.ctx, l.owner, request.RecordShowCardSaleRequest{
		ShowCardID: cardID,
		Revenue:    decimal.RequireFromString(revenue),
		Date:       saleDate,
	})
	assert.NoError(t, err)
	return tx
}

func (l *ledger) card(t *testing.T, cardID string) model.ShowCard {
	t.Helper()
	card, err := l.svc.ShowCard.GetShowCard(l.ctx, l.owner, cardID)
	assert.NoError(t, err)
	return card
}

func (l *ledger) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	b, err := l.svc.Cash.GetCashBalance(l.ctx, l.owner)
	assert.NoError(t, err)
	return b.Balance
}

func (l *ledger) lotNet(t *testing.T, lotID string) decimal.Decimal {
	t.Helper()
	summary, err := l.svc.Lot.LotSummary(l.ctx, l.owner, lotID)
	assert.NoError(t, err)
	return summary.Net
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, decimal.RequireFromString(want).StringFixed(2), got.StringFixed(2))
}

func cashOfType(entries []model.CashTransaction, typ model.CashTransactionType) []model.CashTransaction {
	var out []model.CashTransaction
	for _, e := range entries {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
