package validation

import (
	"time"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
)

// ValidateCreateLot validates a lot creation request.
//
// Required fields:
//   - name: non-empty, at most 100 characters
//   - purchaseDate: YYYY-MM-DD, not in the future
//   - totalCost: zero or positive, two decimal places
func ValidateCreateLot(req request.CreateLotRequest, now time.Time) error {
	errors := make(map[string]string)

	checkName(errors, "name", req.Name)
	checkNotes(errors, "source", req.Source)
	checkPastDate(errors, "purchaseDate", req.PurchaseDate, now)
	checkNonNegativeAmount(errors, "totalCost", req.TotalCost)

	if req.PaidFromCash && req.TotalCost.IsZero() {
		errors["paidFromCash"] = "a lot paid from cash needs a positive totalCost"
	}

	return result(errors)
}

// ValidateCloseLot validates the optional closure notes of a lot.
func ValidateCloseLot(req request.CloseLotRequest) error {
	errors := make(map[string]string)
	checkNotes(errors, "closureNotes", req.ClosureNotes)
	return result(errors)
}
