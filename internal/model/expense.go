package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a business cost, optionally attributed to a show or a lot.
type Expense struct {
	ID             string          `json:"id"`
	OwnerID        string          `json:"ownerId"`
	ShowID         string          `json:"showId,omitempty"`
	LotID          string          `json:"lotId,omitempty"`
	Category       string          `json:"category"`
	Description    string          `json:"description,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Date           time.Time       `json:"date"`
	Deleted        bool            `json:"deleted"`
	DeletedAt      *time.Time      `json:"deletedAt,omitempty"`
	DeletionReason string          `json:"deletionReason,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}
