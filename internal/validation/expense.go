package validation

import (
	"strings"
	"time"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
)

func ValidateCreateExpense(req request.CreateExpenseRequest, now time.Time) error {
	errors := make(map[string]string)

	checkOptionalUUID(errors, "showId", req.ShowID)
	checkOptionalUUID(errors, "lotId", req.LotID)
	if strings.TrimSpace(req.Category) == "" {
		errors["category"] = "category is required"
	} else if len(req.Category) > 50 {
		errors["category"] = "must be 50 characters or less"
	}
	checkNotes(errors, "description", req.Description)
	checkAmount(errors, "amount", req.Amount)
	checkPastDate(errors, "date", req.Date, now)

	return result(errors)
}
