package request

import "github.com/shopspring/decimal"

type CreateShowCardRequest struct {
	LotID       string           `json:"lotId"`
	Name        string           `json:"name"`
	AskingPrice *decimal.Decimal `json:"askingPrice,omitempty"`
}
