package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/middleware"
)

func TestRequireOwner(t *testing.T) {
	const ownerID = "7d1c3a52-9a1e-4c8e-9f2b-0e6b2d9c4a11"

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"valid owner passes through", ownerID, http.StatusOK, true},
		{"missing header returns 400", "", http.StatusBadRequest, false},
		{"malformed owner returns 400", "owner-1", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				seen = middleware.OwnerFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/lot", nil)
			if tt.header != "" {
				req.Header.Set(middleware.OwnerHeader, tt.header)
			}
			w := httptest.NewRecorder()

			middleware.RequireOwner(next).ServeHTTP(w, req)

			if handlerCalled != tt.wantCalled {
				t.Errorf("Expected handler called = %v, got %v", tt.wantCalled, handlerCalled)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantCalled && seen != ownerID {
				t.Errorf("Expected owner %s in context, got %q", ownerID, seen)
			}
		})
	}
}

func TestOwnerFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := middleware.OwnerFromContext(req.Context()); got != "" {
		t.Errorf("Expected empty owner, got %q", got)
	}
}
