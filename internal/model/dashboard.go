package model

import "github.com/shopspring/decimal"

// Overview is the owner's cash position together with per-lot and per-show rollups.
type Overview struct {
	OwnerID     string          `json:"ownerId"`
	CashBalance decimal.Decimal `json:"cashBalance"`
	Lots        []LotSummary    `json:"lots"`
	Shows       []ShowSummary   `json:"shows"`
}
