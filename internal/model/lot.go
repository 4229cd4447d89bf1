package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotStatus is the lifecycle state of a purchase batch.
type LotStatus string

const (
	LotStatusActive   LotStatus = "active"
	LotStatusClosed   LotStatus = "closed"
	LotStatusArchived LotStatus = "archived"
)

// Lot represents a purchase batch of inventory with an aggregate cost.
type Lot struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"ownerId"`
	Name         string          `json:"name"`
	Source       string          `json:"source,omitempty"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Status       LotStatus       `json:"status"`
	ClosedAt     *time.Time      `json:"closedAt,omitempty"`
	ClosureNotes string          `json:"closureNotes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// LotSummary is the read-time revenue rollup of a lot.
// Revenue is derived from non-deleted transactions and never stored.
type LotSummary struct {
	Lot              Lot                `json:"lot"`
	Revenue          decimal.Decimal    `json:"revenue"`
	Net              decimal.Decimal    `json:"net"` // Revenue - TotalCost
	TransactionCount int                `json:"transactionCount"`
	CardCounts       map[CardStatus]int `json:"cardCounts"`
}
