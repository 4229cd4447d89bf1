package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShowStatus is the lifecycle state of a sales event.
type ShowStatus string

const (
	ShowStatusPlanned   ShowStatus = "planned"
	ShowStatusActive    ShowStatus = "active"
	ShowStatusCompleted ShowStatus = "completed"
)

// Rank orders show statuses so forward-only transitions can be checked.
func (s ShowStatus) Rank() int {
	switch s {
	case ShowStatusPlanned:
		return 0
	case ShowStatusActive:
		return 1
	case ShowStatusCompleted:
		return 2
	}
	return -1
}

// Show represents a sales event with a table cost and a lifecycle.
type Show struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"ownerId"`
	Name      string          `json:"name"`
	Date      time.Time       `json:"date"`
	TableCost decimal.Decimal `json:"tableCost"`
	Status    ShowStatus      `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ShowSummary is the read-time financial rollup of a show.
type ShowSummary struct {
	Show             Show            `json:"show"`
	Revenue          decimal.Decimal `json:"revenue"`
	Expenses         decimal.Decimal `json:"expenses"`
	Net              decimal.Decimal `json:"net"` // Revenue - TableCost - Expenses
	TransactionCount int             `json:"transactionCount"`
}
