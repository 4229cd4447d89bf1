package validation

import (
	"fmt"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// ValidShowStatus contains the allowed show status values.
var ValidShowStatus = map[model.ShowStatus]bool{
	model.ShowStatusPlanned: true, model.ShowStatusActive: true, model.ShowStatusCompleted: true,
}

// ValidateCreateShow validates a show creation request. Shows may be planned
// ahead, so the date is not restricted to the past.
func ValidateCreateShow(req request.CreateShowRequest) error {
	errors := make(map[string]string)

	checkName(errors, "name", req.Name)
	if _, err := ParseDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}
	checkNonNegativeAmount(errors, "tableCost", req.TableCost)

	if req.Status != "" && !ValidShowStatus[model.ShowStatus(req.Status)] {
		errors["status"] = fmt.Sprintf("invalid status: %s", req.Status)
	}

	return result(errors)
}

// ValidateUpdateShowStatus validates a show status change request.
func ValidateUpdateShowStatus(req request.UpdateShowStatusRequest) error {
	errors := make(map[string]string)

	if !ValidShowStatus[model.ShowStatus(req.Status)] {
		errors["status"] = fmt.Sprintf("invalid status: %s", req.Status)
	}

	return result(errors)
}
