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

func TestCashService_GetCashBalance(t *testing.T) {
	t.Run("owner without entries has zero balance", func(t *testing.T) {
		l := newLedger(t)

		balance, err := l.svc.Cash.GetCashBalance(l.ctx, l.owner)
		assert.NoError(t, err)
		assert.True(t, balance.Balance.IsZero())
		assert.Equal(t, 0, balance.Entries)
	})

	t.Run("folds every entry of the owner only", func(t *testing.T) {
		l := newLedger(t)
		testutil.NewCashTransaction(l.owner, "250").Build(t, l.db)
		testutil.NewCashTransaction(l.owner, "-40.25").WithType(model.CashTypeWithdrawal).Build(t, l.db)
		testutil.NewCashTransaction(testutil.MakeOwnerID(), "1000").Build(t, l.db)

		balance, err := l.svc.Cash.GetCashBalance(l.ctx, l.owner)
		assert.NoError(t, err)
		assertMoney(t, "209.75", balance.Balance)
		assert.Equal(t, 2, balance.Entries)
	})
}

func TestCashService_RecordCashEntry(t *testing.T) {
	tests := []struct {
		name   string
		typ    string
		amount string
		want   string
	}{
		{"deposit keeps sign", "deposit", "100", "100"},
		{"withdrawal is stored negative", "withdrawal", "30", "-30"},
		{"negative adjustment keeps sign", "adjustment", "-2.50", "-2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(t)

			entry, err := l.svc.Cash.RecordCashEntry(l.ctx, l.owner, request.CreateCashEntryRequest{
				Type:   tt.typ,
				Amount: decimal.RequireFromString(tt.amount),
				Date:   saleDate,
			})
			assert.NoError(t, err)
			assertMoney(t, tt.want, entry.Amount)
			assertMoney(t, tt.want, l.balance(t))
		})
	}

	t.Run("sale entries cannot be recorded by hand", func(t *testing.T) {
		l := newLedger(t)

		_, err := l.svc.Cash.RecordCashEntry(l.ctx, l.owner, request.CreateCashEntryRequest{
			Type: "sale", Amount: decimal.NewFromInt(10), Date: saleDate,
		})
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})
}
