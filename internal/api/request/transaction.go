package request

import "github.com/shopspring/decimal"

type RecordShowCardSaleRequest struct {
	ShowCardID string          `json:"showCardId"`
	ShowID     string          `json:"showId,omitempty"`
	Revenue    decimal.Decimal `json:"revenue"`
	Date       string          `json:"date"`
	Notes      string          `json:"notes,omitempty"`
}

type RecordBulkSaleRequest struct {
	LotID    string          `json:"lotId"`
	ShowID   string          `json:"showId,omitempty"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity *int            `json:"quantity,omitempty"`
	Date     string          `json:"date"`
	Notes    string          `json:"notes,omitempty"`
}

type RecordDispositionRequest struct {
	ShowCardID       string `json:"showCardId"`
	Type             string `json:"type"`
	DestinationLotID string `json:"destinationLotId,omitempty"`
	Date             string `json:"date"`
	Notes            string `json:"notes,omitempty"`
}

// CorrectTransactionRequest carries the field changes of a correction.
// Nil fields are left untouched.
type CorrectTransactionRequest struct {
	Date           *string          `json:"date,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	Quantity       *int             `json:"quantity,omitempty"`
	Revenue        *decimal.Decimal `json:"revenue,omitempty"`
	CorrectionNote string           `json:"correctionNote"`
}

type ReassignLotRequest struct {
	FromLotID      string `json:"fromLotId"`
	ToLotID        string `json:"toLotId"`
	CorrectionNote string `json:"correctionNote"`
}

// ReassignShowRequest moves a transaction between shows. An empty FromShowID
// means the transaction currently has no show.
type ReassignShowRequest struct {
	FromShowID     string `json:"fromShowId"`
	ToShowID       string `json:"toShowId"`
	CorrectionNote string `json:"correctionNote"`
}

// ReassignShowCardSaleRequest is the single atomic show reassignment call for
// show card sales.
type ReassignShowCardSaleRequest struct {
	TransactionID  string `json:"transaction_id"`
	NewShowID      string `json:"new_show_id"`
	CorrectionNote string `json:"correction_note"`
}

type DeleteRequest struct {
	Reason string `json:"deletionReason"`
}
