package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the financial event a transaction records.
type TransactionType string

const (
	TransactionTypeShowCardSale TransactionType = "show_card_sale"
	TransactionTypeBulkSale     TransactionType = "bulk_sale"
	TransactionTypeDiscarded    TransactionType = "discarded"
	TransactionTypeLost         TransactionType = "lost"
	TransactionTypeCombined     TransactionType = "combined"
)

// IsSale reports whether the transaction carries revenue.
func (t TransactionType) IsSale() bool {
	return t == TransactionTypeShowCardSale || t == TransactionTypeBulkSale
}

// IsDisposition reports whether the transaction removes a card without a sale.
func (t TransactionType) IsDisposition() bool {
	return t == TransactionTypeDiscarded || t == TransactionTypeLost || t == TransactionTypeCombined
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t.IsSale() || t.IsDisposition()
}

// Transaction represents one financial event: a show card sale, a bulk sale,
// or a disposition. Transactions are soft-deleted and never physically removed.
type Transaction struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"ownerId"`
	Type            TransactionType `json:"type"`
	Revenue         decimal.Decimal `json:"revenue"`
	Quantity        *int            `json:"quantity,omitempty"`
	Date            time.Time       `json:"date"`
	Notes           string          `json:"notes,omitempty"`
	ShowCardID      string          `json:"showCardId,omitempty"`
	LotID           string          `json:"lotId,omitempty"`
	ShowID          string          `json:"showId,omitempty"`
	Deleted         bool            `json:"deleted"`
	DeletedAt       *time.Time      `json:"deletedAt,omitempty"`
	DeletionReason  string          `json:"deletionReason,omitempty"`
	CorrectionNote  string          `json:"correctionNote,omitempty"`
	CorrectedAt     *time.Time      `json:"correctedAt,omitempty"`
	CorrectionCount int             `json:"correctionCount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	LotID          string
	ShowID         string
	ShowCardID     string
	IncludeDeleted bool
}

// FieldChange records one field's value before and after a correction.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TransactionCorrection is one entry of a transaction's correction history.
type TransactionCorrection struct {
	ID            string                 `json:"id"`
	TransactionID string                 `json:"transactionId"`
	OwnerID       string                 `json:"ownerId"`
	Sequence      int                    `json:"sequence"`
	Note          string                 `json:"note"`
	Changes       map[string]FieldChange `json:"changes"`
	CorrectedAt   time.Time              `json:"correctedAt"`
}

// ReassignmentResult is returned by lot and show reassignment.
// Warnings are non-blocking lifecycle notices about the destination.
type ReassignmentResult struct {
	Transaction Transaction `json:"transaction"`
	Warnings    []string    `json:"warnings,omitempty"`
}
