package request

import "github.com/shopspring/decimal"

// CreateCashEntryRequest records a manual deposit, withdrawal or adjustment.
// Deposits and withdrawals take a positive amount; the sign is applied by type.
type CreateCashEntryRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
}
