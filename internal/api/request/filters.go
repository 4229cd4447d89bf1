package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// ParseTransactionFilters extracts and validates transaction listing filters
// from query parameters. All parameters are optional.
//
// Validation rules:
//   - lot, show, showCard: must be valid UUIDs when present
//   - includeDeleted: must parse as a boolean (defaults to false)
func ParseTransactionFilters(lotParam, showParam, showCardParam, includeDeletedParam string) (model.TransactionFilter, error) {
	var filter model.TransactionFilter

	for _, p := range []struct {
		name  string
		value string
		dest  *string
	}{
		{"lot", lotParam, &filter.LotID},
		{"show", showParam, &filter.ShowID},
		{"showCard", showCardParam, &filter.ShowCardID},
	} {
		if p.value == "" {
			continue
		}
		if _, err := uuid.Parse(p.value); err != nil {
			return filter, fmt.Errorf("invalid %s: must be a UUID", p.name)
		}
		*p.dest = p.value
	}

	if includeDeletedParam != "" {
		include, err := strconv.ParseBool(includeDeletedParam)
		if err != nil {
			return filter, fmt.Errorf("invalid includeDeleted: must be true or false")
		}
		filter.IncludeDeleted = include
	}

	return filter, nil
}

// ParseShowCardFilters extracts and validates show card listing filters.
func ParseShowCardFilters(lotParam, statusParam string) (model.ShowCardFilter, error) {
	var filter model.ShowCardFilter

	if lotParam != "" {
		if _, err := uuid.Parse(lotParam); err != nil {
			return filter, fmt.Errorf("invalid lot: must be a UUID")
		}
		filter.LotID = lotParam
	}

	if statusParam != "" {
		status := model.CardStatus(strings.ToLower(strings.TrimSpace(statusParam)))
		switch status {
		case model.CardStatusAvailable, model.CardStatusSold, model.CardStatusCombined, model.CardStatusLost:
			filter.Status = status
		default:
			return filter, fmt.Errorf("invalid status: %s", statusParam)
		}
	}

	return filter, nil
}
