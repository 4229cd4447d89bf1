package validation

import (
	"fmt"
	"time"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// ValidCashEntryType contains the cash entry types that may be recorded manually.
// Sale, reversal, expense and purchase rows are only written by ledger operations.
var ValidCashEntryType = map[model.CashTransactionType]bool{
	model.CashTypeDeposit: true, model.CashTypeWithdrawal: true, model.CashTypeAdjustment: true,
}

// ValidateCashEntry validates a manual cash entry.
// Deposits and withdrawals require a positive amount; adjustments are signed
// but cannot be zero.
func ValidateCashEntry(req request.CreateCashEntryRequest, now time.Time) error {
	errors := make(map[string]string)

	typ := model.CashTransactionType(req.Type)
	if !ValidCashEntryType[typ] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if typ == model.CashTypeAdjustment {
		if req.Amount.IsZero() {
			errors["amount"] = "amount cannot be zero"
		} else if !req.Amount.Equal(req.Amount.Round(2)) {
			errors["amount"] = "amount must have at most two decimal places"
		}
	} else {
		checkAmount(errors, "amount", req.Amount)
	}

	checkPastDate(errors, "date", req.Date, now)
	checkNotes(errors, "description", req.Description)

	return result(errors)
}
