package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Show-Ledger-Backend/internal/service"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter for recording, correcting, reassigning
// and deleting transactions.
type TransactionHandler struct {
	transactionService  *service.TransactionService
	saleService         *service.SaleService
	correctionService   *service.CorrectionService
	reassignmentService *service.ReassignmentService
	reversalService     *service.ReversalService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependencies.
func NewTransactionHandler(
	transactionService *service.TransactionService,
	saleService *service.SaleService,
	correctionService *service.CorrectionService,
	reassignmentService *service.ReassignmentService,
	reversalService *service.ReversalService,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService:  transactionService,
		saleService:         saleService,
		correctionService:   correctionService,
		reassignmentService: reassignmentService,
		reversalService:     reversalService,
	}
}

// ListTransactions handles GET requests to list the owner's transactions.
//
// Endpoint: GET /api/transaction?lot={uuid}&show={uuid}&showCard={uuid}&includeDeleted=true
// Response: 200 OK with array of Transaction
// Error: 400 Bad Request if a filter is invalid
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := request.ParseTransactionFilters(q.Get("lot"), q.Get("show"), q.Get("showCard"), q.Get("includeDeleted"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	transactions, err := h.transactionService.ListTransactions(r.Context(), ownerID(r), filter)
	if err != nil {
		respondServiceError(w, "failed to retrieve transactions", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction, deleted or not.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with Transaction
// Error: 404 Not Found if the owner has no such transaction
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.transactionService.GetTransaction(r.Context(), ownerID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to retrieve transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// ListCorrections handles GET requests for the correction history of a transaction.
//
// Endpoint: GET /api/transaction/{uuid}/corrections
// Response: 200 OK with array of TransactionCorrection, oldest first
// Error: 404 Not Found if the owner has no such transaction
func (h *TransactionHandler) ListCorrections(w http.ResponseWriter, r *http.Request) {
	corrections, err := h.transactionService.ListCorrections(r.Context(), ownerID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to retrieve corrections", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, corrections)
}

// RecordShowCardSale handles POST requests to sell a show card.
//
// Endpoint: POST /api/transaction/show-card-sale
// Request Body: RecordShowCardSaleRequest (showCardId, showId, revenue, date, notes)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the card or show does not exist
// Error: 409 Conflict if the card is not available
func (h *TransactionHandler) RecordShowCardSale(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RecordShowCardSaleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.saleService.RecordShowCardSale(r.Context(), ownerID(r), req)
	if err != nil {
		respondServiceError(w, "failed to record show card sale", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// RecordBulkSale handles POST requests to record a bulk sale against a lot.
//
// Endpoint: POST /api/transaction/bulk-sale
// Request Body: RecordBulkSaleRequest (lotId, showId, revenue, quantity, date, notes)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the lot or show does not exist
func (h *TransactionHandler) RecordBulkSale(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RecordBulkSaleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.saleService.RecordBulkSale(r.Context(), ownerID(r), req)
	if err != nil {
		respondServiceError(w, "failed to record bulk sale", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// RecordDisposition handles POST requests to combine, lose or discard a show card.
//
// Endpoint: POST /api/transaction/disposition
// Request Body: RecordDispositionRequest (showCardId, type, destinationLotId, date, notes)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the card is not available
func (h *TransactionHandler) RecordDisposition(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RecordDispositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.saleService.RecordDisposition(r.Context(), ownerID(r), req)
	if err != nil {
		respondServiceError(w, "failed to record disposition", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// CorrectTransaction handles PUT requests to correct a transaction's fields.
//
// Endpoint: PUT /api/transaction/{uuid}/correction
// Request Body: CorrectTransactionRequest (date, notes, quantity, revenue, correctionNote)
// Response: 200 OK with the corrected Transaction
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the owner has no such transaction
// Error: 409 Conflict if the transaction is deleted or the field does not apply to its type
func (h *TransactionHandler) CorrectTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CorrectTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.correctionService.ApplyCorrection(r.Context(), ownerID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, "failed to correct transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// ReassignLot handles PUT requests to move a transaction to another lot.
//
// Endpoint: PUT /api/transaction/{uuid}/lot
// Request Body: ReassignLotRequest (fromLotId, toLotId, correctionNote)
// Response: 200 OK with ReassignmentResult (transaction, warnings)
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the transaction or destination lot does not exist
// Error: 409 Conflict if fromLotId is stale or the transaction is deleted
func (h *TransactionHandler) ReassignLot(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ReassignLotRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.reassignmentService.ReassignLot(r.Context(), ownerID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, "failed to reassign lot", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// ReassignShow handles PUT requests to move a sale to another show.
//
// Endpoint: PUT /api/transaction/{uuid}/show
// Request Body: ReassignShowRequest (fromShowId, toShowId, correctionNote)
// Response: 200 OK with ReassignmentResult (transaction, warnings)
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the transaction or destination show does not exist
// Error: 409 Conflict if fromShowId is stale or the transaction is deleted
func (h *TransactionHandler) ReassignShow(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ReassignShowRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.reassignmentService.ReassignShow(r.Context(), ownerID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, "failed to reassign show", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// ReassignShowCardSale handles the single atomic call that moves a show card
// sale to another show.
//
// Endpoint: POST /api/transaction/reassign-show-card-sale
// Request Body: ReassignShowCardSaleRequest (transaction_id, new_show_id, correction_note)
// Response: 200 OK with ReassignmentResult
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the transaction or show does not exist
// Error: 409 Conflict if the transaction is not a live show card sale
func (h *TransactionHandler) ReassignShowCardSale(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ReassignShowCardSaleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.reassignmentService.ReassignShowCardSale(r.Context(), ownerID(r), req)
	if err != nil {
		respondServiceError(w, "failed to reassign show card sale", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// DeleteTransaction handles DELETE requests to soft-delete a transaction and
// write its reversal.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Request Body: DeleteRequest (deletionReason)
// Response: 200 OK with the deleted Transaction
// Error: 400 Bad Request if the reason is invalid
// Error: 404 Not Found if the owner has no such transaction
// Error: 409 Conflict if the transaction is already deleted
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.DeleteRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.reversalService.DeleteTransaction(r.Context(), ownerID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, "failed to delete transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}
