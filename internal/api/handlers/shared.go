package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/middleware"
	"github.com/ndewijer/Show-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// maxBodyBytes bounds request bodies; ledger payloads are small.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, fmt.Errorf("request body is empty")
		}
		return req, err
	}

	return req, nil
}

// ownerID returns the owner stored on the request by middleware.RequireOwner.
func ownerID(r *http.Request) string {
	return middleware.OwnerFromContext(r.Context())
}

// respondServiceError maps a service error onto an HTTP status.
//
// Mapping:
//   - apperrors.ErrPartialFailure: 500 Internal Server Error, manual reconciliation required
//   - validation.Error: 400 Bad Request with the field messages as details
//   - apperrors.ErrValidation: 400 Bad Request
//   - apperrors.ErrNotFound: 404 Not Found
//   - apperrors.ErrConsistencyViolation: 409 Conflict
//   - anything else: 500 Internal Server Error with message
func respondServiceError(w http.ResponseWriter, message string, err error) {
	var verr *validation.Error

	switch {
	case errors.Is(err, apperrors.ErrPartialFailure):
		response.RespondError(w, http.StatusInternalServerError, "ledger may be inconsistent, manual reconciliation required", err.Error())
	case errors.As(err, &verr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.Is(err, apperrors.ErrValidation):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), message)
	case errors.Is(err, apperrors.ErrConsistencyViolation):
		response.RespondError(w, http.StatusConflict, message, err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
