package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Show-Ledger-Backend/internal/service"
)

// LotHandler handles HTTP requests for lot endpoints.
type LotHandler struct {
	lotService *service.LotService
}

// NewLotHandler creates a new LotHandler with the provided service dependency.
func NewLotHandler(lotService *service.LotService) *LotHandler {
	return &LotHandler{
		lotService: lotService,
	}
}

// ListLots handles GET requests to retrieve every lot of the owner.
//
// Endpoint: GET /api/lot
// Response: 200 OK with array of Lot
// Error: 500 Internal Server Error if retrieval fails
func (h *LotHandler) ListLots(w http.ResponseWriter, r *http.Request) {
	lots, err := h.lotService.ListLots(r.Context(), ownerID(r))
	if err != nil {
		respondServiceError(w, "failed to retrieve lots", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, lots)
}

// CreateLot handles POST requests to create a lot.
//
// Endpoint: POST /api/lot
// Request Body: CreateLotRequest (name, source, purchaseDate, totalCost, paidFromCash)
// Response: 201 Created with Lot
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *LotHandler) CreateLot(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateLotRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	lot, err := h.lotService.CreateLot(r.Context(), ownerID(r), req)
	if err != nil {
		respondServiceError(w, "failed to create lot", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, lot)
}

// GetLot handles GET requests to retrieve a single lot.
//
// Endpoint: GET /api/lot/{uuid}
// Response: 200 OK with Lot
// Error: 404 Not Found if the owner has no such lot
func (h *LotHandler) GetLot(w http.ResponseWriter, r *http.Request) {
	lot, err := h.lotService.GetLot(r.Context(), ownerID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to retrieve lot", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, lot)
}

// LotSummary handles GET requests for the revenue rollup of a lot.
//
// Endpoint: GET /api/lot/{uuid}/summary
// Response: 200 OK with LotSummary (revenue, net, transaction and card counts)
// Error: 404 Not Found if the owner has no such lot
func (h *LotHandler) LotSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.lotService.LotSummary(r.Context(), ownerID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to summarize lot", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// CloseLot handles POST requests to close an active lot.
//
// Endpoint: POST /api/lot/{uuid}/close
// Request Body: CloseLotRequest (closureNotes)
// Response: 200 OK with the closed Lot
// Error: 404 Not Found if the owner has no such lot
// Error: 409 Conflict if the lot still has available cards or is not active
func (h *LotHandler) CloseLot(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CloseLotRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	lot, err := h.lotService.CloseLot(r.Context(), ownerID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, "failed to close lot", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, lot)
}

// ArchiveLot handles POST requests to archive a closed lot.
//
// Endpoint: POST /api/lot/{uuid}/archive
// Response: 200 OK with the archived Lot
// Error: 409 Conflict if the lot is not closed
func (h *LotHandler) ArchiveLot(w http.ResponseWriter, r *http.Request) {
	lot, err := h.lotService.ArchiveLot(r.Context(), ownerID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to archive lot", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, lot)
}

// ReopenLot handles POST requests to reopen a closed lot.
//
// Endpoint: POST /api/lot/{uuid}/reopen
// Response: 200 OK with the active Lot
// Error: 409 Conflict if the lot is not closed
func (h *LotHandler) ReopenLot(w http.ResponseWriter, r *http.Request) {
	lot, err := h.lotService.ReopenLot(r.Context(), ownerID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to reopen lot", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, lot)
}
