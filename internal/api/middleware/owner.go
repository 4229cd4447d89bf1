package middleware

import (
	"context"
	"net/http"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// OwnerHeader carries the identity every ledger call acts for.
const OwnerHeader = "X-Owner-ID"

type ownerKey struct{}

// RequireOwner reads the X-Owner-ID header, validates it as a UUID and stores
// it on the request context. Returns 400 Bad Request when it is missing or invalid.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get(OwnerHeader)

		if ownerID == "" {
			response.RespondError(w, http.StatusBadRequest, "owner is required", OwnerHeader+" header is missing")
			return
		}

		if err := validation.ValidateUUID(ownerID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid owner", err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), ownerID)))
	})
}

// WithOwner returns a copy of ctx carrying ownerID.
func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

// OwnerFromContext returns the owner stored by RequireOwner, or "" if none.
func OwnerFromContext(ctx context.Context) string {
	ownerID, _ := ctx.Value(ownerKey{}).(string)
	return ownerID
}
