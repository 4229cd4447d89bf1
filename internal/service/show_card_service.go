package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// ShowCardService handles show card inventory.
type ShowCardService struct {
	showCardRepo *repository.ShowCardRepository
	lotRepo      *repository.LotRepository
	logger       *slog.Logger
}

// NewShowCardService creates a new ShowCardService with the provided repository dependencies.
func NewShowCardService(
	showCardRepo *repository.ShowCardRepository,
	lotRepo *repository.LotRepository,
	logger *slog.Logger,
) *ShowCardService {
	return &ShowCardService{
		showCardRepo: showCardRepo,
		lotRepo:      lotRepo,
		logger:       logger,
	}
}

// CreateShowCard adds an available card to an active lot.
func (s *ShowCardService) CreateShowCard(ctx context.Context, ownerID string, req request.CreateShowCardRequest) (*model.ShowCard, error) {
	if err := validation.ValidateCreateShowCard(req); err != nil {
		return nil, err
	}

	lot, err := s.lotRepo.GetLot(ctx, ownerID, req.LotID)
	if err != nil {
		return nil, err
	}
	if lot.Status != model.LotStatusActive {
		return nil, fmt.Errorf("lot %s is %s: %w", lot.ID, lot.Status, apperrors.ErrLotNotActive)
	}

	card := &model.ShowCard{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		LotID:       lot.ID,
		Name:        strings.TrimSpace(req.Name),
		AskingPrice: req.AskingPrice,
		Status:      model.CardStatusAvailable,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.showCardRepo.InsertShowCard(ctx, card); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "show card created", "owner_id", ownerID, "show_card_id", card.ID, "lot_id", card.LotID)
	return card, nil
}

// GetShowCard retrieves a show card of the owner.
func (s *ShowCardService) GetShowCard(ctx context.Context, ownerID, cardID string) (model.ShowCard, error) {
	return s.showCardRepo.GetShowCard(ctx, ownerID, cardID)
}

// ListShowCards retrieves the owner's show cards, optionally by lot and status.
func (s *ShowCardService) ListShowCards(ctx context.Context, ownerID string, filter model.ShowCardFilter) ([]model.ShowCard, error) {
	return s.showCardRepo.ListShowCards(ctx, ownerID, filter)
}
