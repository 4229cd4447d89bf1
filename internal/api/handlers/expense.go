package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Show-Ledger-Backend/internal/service"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// ExpenseHandler handles HTTP requests for expense endpoints.
type ExpenseHandler struct {
	expenseService  *service.ExpenseService
	reversalService *service.ReversalService
}

// NewExpenseHandler creates a new ExpenseHandler with the provided service dependencies.
func NewExpenseHandler(expenseService *service.ExpenseService, reversalService *service.ReversalService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService:  expenseService,
		reversalService: reversalService,
	}
}

// ListExpenses handles GET requests to list live expenses.
//
// Endpoint: GET /api/expense?show={uuid}
// Response: 200 OK with array of Expense
// Error: 400 Bad Request if the show filter is not a UUID
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	showID := r.URL.Query().Get("show")
	if showID != "" {
		if err := validation.ValidateUUID(showID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
			return
		}
	}

	expenses, err := h.expenseService.ListExpenses(r.Context(), ownerID(r), showID)
	if err != nil {
		respondServiceError(w, "failed to retrieve expenses", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, expenses)
}

// CreateExpense handles POST requests to record an expense paid from cash.
//
// Endpoint: POST /api/expense
// Request Body: CreateExpenseRequest (showId, lotId, category, description, amount, date)
// Response: 201 Created with Expense
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the referenced show or lot does not exist
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateExpenseRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseService.CreateExpense(r.Context(), ownerID(r), req)
	if err != nil {
		respondServiceError(w, "failed to record expense", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, expense)
}

// GetExpense handles GET requests to retrieve a single expense.
//
// Endpoint: GET /api/expense/{uuid}
// Response: 200 OK with Expense
// Error: 404 Not Found if the owner has no such expense
func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenseService.GetExpense(r.Context(), ownerID(r), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to retrieve expense", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, expense)
}

// DeleteExpense handles DELETE requests to soft-delete an expense and refund its cash.
//
// Endpoint: DELETE /api/expense/{uuid}
// Request Body: DeleteRequest (deletionReason)
// Response: 200 OK with the deleted Expense
// Error: 400 Bad Request if the reason is invalid
// Error: 409 Conflict if the expense is already deleted
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.DeleteRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.reversalService.DeleteExpense(r.Context(), ownerID(r), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, "failed to delete expense", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, expense)
}
