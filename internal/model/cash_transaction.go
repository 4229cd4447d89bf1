package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashTransactionType tags the origin of a ledger line.
type CashTransactionType string

const (
	CashTypeDeposit    CashTransactionType = "deposit"
	CashTypeWithdrawal CashTransactionType = "withdrawal"
	CashTypeAdjustment CashTransactionType = "adjustment"
	CashTypeSale       CashTransactionType = "sale"
	CashTypeReversal   CashTransactionType = "reversal"
	CashTypeExpense    CashTransactionType = "expense"
	CashTypePurchase   CashTransactionType = "purchase"
)

// CashTransaction is an immutable, signed ledger line. The cash balance is the
// sum of all amounts for an owner; no other entity stores a balance.
type CashTransaction struct {
	ID            string              `json:"id"`
	OwnerID       string              `json:"ownerId"`
	Amount        decimal.Decimal     `json:"amount"`
	Type          CashTransactionType `json:"type"`
	Description   string              `json:"description,omitempty"`
	Date          time.Time           `json:"date"`
	TransactionID string              `json:"transactionId,omitempty"`
	LotID         string              `json:"lotId,omitempty"`
	ExpenseID     string              `json:"expenseId,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// CashBalance is the projected cash position for an owner.
type CashBalance struct {
	OwnerID string          `json:"ownerId"`
	Balance decimal.Decimal `json:"balance"`
	Entries int             `json:"entries"`
}
