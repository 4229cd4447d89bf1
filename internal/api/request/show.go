package request

import "github.com/shopspring/decimal"

type CreateShowRequest struct {
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	TableCost decimal.Decimal `json:"tableCost"`
	Status    string          `json:"status,omitempty"`
}

type UpdateShowStatusRequest struct {
	Status string `json:"status"`
}
