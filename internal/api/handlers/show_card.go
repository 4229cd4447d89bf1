package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Show-Ledger-Backend/internal/service"
)

// ShowCardHandler handles HTTP requests for show card endpoints.
type ShowCardHandler struct {
	showCardService *service.ShowCardService
}

// NewShowCardHandler creates a new ShowCardHandler with the provided service dependency.
func NewShowCardHandler(showCardService *service.ShowCardService) *ShowCardHandler {
	return &ShowCardHandler{
		showCardService: showCardService,
	}
}

// ListShowCards handles GET requests to list show cards.
//
// Endpoint: GET /api/show-card?lot={uuid}&status={status}
// Response: 200 OK with array of ShowCard
// Error: 400 Bad Request if a filter is invalid
func (h *ShowCardHandler) ListShowCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := request.ParseShowCardFilters(q.Get("lot"), q.Get("status"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	cards, err := h.showCardService.ListShowCards(r.Context(), ownerID(r), filter)
	if err != nil {
		respondServiceError(w, "failed to retrieve show cards", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, cards)
}

// CreateShowCard handles POST requests to add a card to a lot.
//
// Endpoint: POST /api/show-card
// Request Body: CreateShowCardRequest (lotId, name, askingPrice)
// Response: 201 Created with ShowCard
// Error: 404 Not Found if the lot does not exist
// Error: 409 Conflict if the lot is not active
func (h *ShowCardHandler) CreateShowCard(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateShowCardRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	card, err := h.showCardService.CreateShowCard(r.Context(), ownerID(r), req)
	if err != nil {
		respondServiceError(w, "failed to create show card", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, card)
}

// GetShowCard handles GET requests to retrieve a single show card.
//
// Endpoint: GET /api/show-card/{uuid}
// Response: 200 OK with ShowCard
// Error: 404 Not Found if the owner has no such card
func (h *ShowCardHandler) GetShowCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.showCardService.GetShowCard(r.Context(), ownerID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to retrieve show card", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, card)
}
