package validation

import (
	"fmt"
	"time"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// ValidDispositionType contains the allowed disposition transaction types.
var ValidDispositionType = map[model.TransactionType]bool{
	model.TransactionTypeDiscarded: true, model.TransactionTypeLost: true, model.TransactionTypeCombined: true,
}

// ValidateShowCardSale validates a show card sale.
//
// Required fields:
//   - showCardId: valid UUID
//   - revenue: positive, two decimal places
//   - date: YYYY-MM-DD, not in the future
//
// Optional fields: showId (valid UUID), notes (at most 500 characters).
func ValidateShowCardSale(req request.RecordShowCardSaleRequest, now time.Time) error {
	errors := make(map[string]string)

	checkUUID(errors, "showCardId", req.ShowCardID)
	checkOptionalUUID(errors, "showId", req.ShowID)
	checkAmount(errors, "revenue", req.Revenue)
	checkPastDate(errors, "date", req.Date, now)
	checkNotes(errors, "notes", req.Notes)

	return result(errors)
}

// ValidateBulkSale validates a bulk sale from a lot.
func ValidateBulkSale(req request.RecordBulkSaleRequest, now time.Time) error {
	errors := make(map[string]string)

	checkUUID(errors, "lotId", req.LotID)
	checkOptionalUUID(errors, "showId", req.ShowID)
	checkAmount(errors, "revenue", req.Revenue)
	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	checkPastDate(errors, "date", req.Date, now)
	checkNotes(errors, "notes", req.Notes)

	return result(errors)
}

// ValidateDisposition validates a discard, loss or combination of a show card.
// A combination requires a destination lot.
func ValidateDisposition(req request.RecordDispositionRequest, now time.Time) error {
	errors := make(map[string]string)

	checkUUID(errors, "showCardId", req.ShowCardID)

	typ := model.TransactionType(req.Type)
	if !ValidDispositionType[typ] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}
	if typ == model.TransactionTypeCombined {
		checkUUID(errors, "destinationLotId", req.DestinationLotID)
	} else if req.DestinationLotID != "" {
		errors["destinationLotId"] = "only combined dispositions take a destination lot"
	}

	checkPastDate(errors, "date", req.Date, now)
	checkNotes(errors, "notes", req.Notes)

	return result(errors)
}

// ValidateCorrection validates the field changes and the mandatory correction note.
// At least one field must change.
func ValidateCorrection(req request.CorrectTransactionRequest, now time.Time) error {
	errors := make(map[string]string)

	checkReason(errors, "correctionNote", req.CorrectionNote)

	if req.Date == nil && req.Notes == nil && req.Quantity == nil && req.Revenue == nil {
		errors["changes"] = "at least one field must be corrected"
	}
	if req.Date != nil {
		checkPastDate(errors, "date", *req.Date, now)
	}
	if req.Notes != nil {
		checkNotes(errors, "notes", *req.Notes)
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Revenue != nil {
		checkAmount(errors, "revenue", *req.Revenue)
	}

	return result(errors)
}

// ValidateReassignLot validates a lot reassignment. The destination must differ
// from the origin.
func ValidateReassignLot(req request.ReassignLotRequest) error {
	errors := make(map[string]string)

	checkUUID(errors, "fromLotId", req.FromLotID)
	checkUUID(errors, "toLotId", req.ToLotID)
	if req.FromLotID != "" && req.FromLotID == req.ToLotID {
		errors["toLotId"] = "destination lot must differ from the current lot"
	}
	checkReason(errors, "correctionNote", req.CorrectionNote)

	return result(errors)
}

// ValidateReassignShow validates a show reassignment. FromShowID may be empty.
func ValidateReassignShow(req request.ReassignShowRequest) error {
	errors := make(map[string]string)

	checkOptionalUUID(errors, "fromShowId", req.FromShowID)
	checkUUID(errors, "toShowId", req.ToShowID)
	if req.FromShowID == req.ToShowID {
		errors["toShowId"] = "destination show must differ from the current show"
	}
	checkReason(errors, "correctionNote", req.CorrectionNote)

	return result(errors)
}

// ValidateReassignShowCardSale validates the atomic show reassignment call.
func ValidateReassignShowCardSale(req request.ReassignShowCardSaleRequest) error {
	errors := make(map[string]string)

	checkUUID(errors, "transaction_id", req.TransactionID)
	checkUUID(errors, "new_show_id", req.NewShowID)
	checkReason(errors, "correction_note", req.CorrectionNote)

	return result(errors)
}

// ValidateDeletion validates a deletion reason.
func ValidateDeletion(req request.DeleteRequest) error {
	return ValidateReason("deletionReason", req.Reason)
}
