package handlers

import (
	"net/http"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Show-Ledger-Backend/internal/service"
)

// CashHandler handles HTTP requests for the cash ledger.
type CashHandler struct {
	cashService *service.CashService
}

// NewCashHandler creates a new CashHandler with the provided service dependency.
func NewCashHandler(cashService *service.CashService) *CashHandler {
	return &CashHandler{
		cashService: cashService,
	}
}

// Balance handles GET requests for the owner's projected cash balance.
//
// Endpoint: GET /api/cash/balance
// Response: 200 OK with CashBalance
func (h *CashHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.cashService.GetCashBalance(r.Context(), ownerID(r))
	if err != nil {
		respondServiceError(w, "failed to compute cash balance", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, balance)
}

// ListCashTransactions handles GET requests for the owner's ledger lines.
//
// Endpoint: GET /api/cash
// Response: 200 OK with array of CashTransaction
func (h *CashHandler) ListCashTransactions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.cashService.ListCashTransactions(r.Context(), ownerID(r))
	if err != nil {
		respondServiceError(w, "failed to retrieve cash transactions", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, entries)
}

// CreateCashEntry handles POST requests for a manual deposit, withdrawal or adjustment.
//
// Endpoint: POST /api/cash
// Request Body: CreateCashEntryRequest (type, amount, date, description)
// Response: 201 Created with CashTransaction
// Error: 400 Bad Request if validation fails
func (h *CashHandler) CreateCashEntry(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCashEntryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.cashService.RecordCashEntry(r.Context(), ownerID(r), req)
	if err != nil {
		respondServiceError(w, "failed to record cash entry", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, entry)
}
