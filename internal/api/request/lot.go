package request

import "github.com/shopspring/decimal"

type CreateLotRequest struct {
	Name         string          `json:"name"`
	Source       string          `json:"source"`
	PurchaseDate string          `json:"purchaseDate"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	PaidFromCash bool            `json:"paidFromCash"`
}

type CloseLotRequest struct {
	ClosureNotes string `json:"closureNotes"`
}
