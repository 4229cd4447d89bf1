package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardStatus is the inventory state of an individually tracked item.
type CardStatus string

const (
	CardStatusAvailable CardStatus = "available"
	CardStatusSold      CardStatus = "sold"
	CardStatusCombined  CardStatus = "combined"
	CardStatusLost      CardStatus = "lost"
)

// ShowCard represents an individually tracked premium item owned by one lot.
type ShowCard struct {
	ID               string           `json:"id"`
	OwnerID          string           `json:"ownerId"`
	LotID            string           `json:"lotId"`
	Name             string           `json:"name"`
	AskingPrice      *decimal.Decimal `json:"askingPrice,omitempty"`
	Status           CardStatus       `json:"status"`
	DestinationLotID string           `json:"destinationLotId,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// ShowCardFilter narrows a show card listing.
type ShowCardFilter struct {
	LotID  string
	Status CardStatus
}
