package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Show-Ledger-Backend/internal/api/middleware"
)

func TestValidateUUIDMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		param      string
		wantStatus int
		wantCalled bool
	}{
		{"passes through valid lot UUID", "550e8400-e29b-41d4-a716-446655440000", http.StatusOK, true},
		{"accepts upper case UUID", "550E8400-E29B-41D4-A716-446655440000", http.StatusOK, true},
		{"returns 400 for invalid UUID", "invalid-id", http.StatusBadRequest, false},
		{"returns 400 for truncated UUID", "550e8400-e29b-41d4-a716", http.StatusBadRequest, false},
		{"returns 400 for empty UUID", "", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/lot/"+tt.param, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uuid", tt.param)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			middleware.ValidateUUIDMiddleware(next).ServeHTTP(w, req)

			if handlerCalled != tt.wantCalled {
				t.Errorf("Expected handler called = %v, got %v", tt.wantCalled, handlerCalled)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
