package request

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	ShowID      string          `json:"showId,omitempty"`
	LotID       string          `json:"lotId,omitempty"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}
