package validation

import "github.com/ndewijer/Show-Ledger-Backend/internal/api/request"

func ValidateCreateShowCard(req request.CreateShowCardRequest) error {
	errors := make(map[string]string)

	checkUUID(errors, "lotId", req.LotID)
	checkName(errors, "name", req.Name)
	if req.AskingPrice != nil {
		checkAmount(errors, "askingPrice", *req.AskingPrice)
	}

	return result(errors)
}
