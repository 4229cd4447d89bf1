package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Show-Ledger-Backend/internal/service"
)

// ShowHandler handles HTTP requests for show endpoints.
type ShowHandler struct {
	showService *service.ShowService
}

// NewShowHandler creates a new ShowHandler with the provided service dependency.
func NewShowHandler(showService *service.ShowService) *ShowHandler {
	return &ShowHandler{
		showService: showService,
	}
}

// ListShows handles GET requests to retrieve every show of the owner.
//
// Endpoint: GET /api/show
// Response: 200 OK with array of Show
func (h *ShowHandler) ListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.showService.ListShows(r.Context(), ownerID(r))
	if err != nil {
		respondServiceError(w, "failed to retrieve shows", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, shows)
}

// CreateShow handles POST requests to create a show.
//
// Endpoint: POST /api/show
// Request Body: CreateShowRequest (name, date, tableCost, status)
// Response: 201 Created with Show
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *ShowHandler) CreateShow(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateShowRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	show, err := h.showService.CreateShow(r.Context(), ownerID(r), req)
	if err != nil {
		respondServiceError(w, "failed to create show", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, show)
}

// GetShow handles GET requests to retrieve a single show.
//
// Endpoint: GET /api/show/{uuid}
// Response: 200 OK with Show
// Error: 404 Not Found if the owner has no such show
func (h *ShowHandler) GetShow(w http.ResponseWriter, r *http.Request) {
	show, err := h.showService.GetShow(r.Context(), ownerID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to retrieve show", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, show)
}

// ShowSummary handles GET requests for the financial rollup of a show.
//
// Endpoint: GET /api/show/{uuid}/summary
// Response: 200 OK with ShowSummary
// Error: 404 Not Found if the owner has no such show
func (h *ShowHandler) ShowSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.showService.ShowSummary(r.Context(), ownerID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to summarize show", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// UpdateShowStatus handles PUT requests to change the status of a show.
//
// Endpoint: PUT /api/show/{uuid}/status
// Request Body: UpdateShowStatusRequest (status)
// Response: 200 OK with the updated Show
// Error: 404 Not Found if the owner has no such show
// Error: 409 Conflict if the change moves backwards on a show with financial activity
func (h *ShowHandler) UpdateShowStatus(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateShowStatusRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	show, err := h.showService.UpdateShowStatus(r.Context(), ownerID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, "failed to update show status", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, show)
}
