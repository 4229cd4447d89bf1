package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api"
	"github.com/ndewijer/Show-Ledger-Backend/internal/api/middleware"
	"github.com/ndewijer/Show-Ledger-Backend/internal/config"
	"github.com/ndewijer/Show-Ledger-Backend/internal/logging"
	"github.com/ndewijer/Show-Ledger-Backend/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestServices(t, db)

	return api.NewRouter(api.Services{
		System:       svc.System,
		Lot:          svc.Lot,
		Show:         svc.Show,
		ShowCard:     svc.ShowCard,
		Transaction:  svc.Transaction,
		Sale:         svc.Sale,
		Correction:   svc.Correction,
		Reassignment: svc.Reassignment,
		Reversal:     svc.Reversal,
		Cash:         svc.Cash,
		Expense:      svc.Expense,
		Dashboard:    svc.Dashboard,
		Audit:        svc.Audit,
	}, &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}, logging.Discard())
}

func TestRouter(t *testing.T) {
	router := newTestRouter(t)
	owner := testutil.MakeOwnerID()

	tests := []struct {
		name       string
		method     string
		path       string
		owner      string
		body       string
		wantStatus int
	}{
		{"health needs no owner", http.MethodGet, "/api/system/health", "", "", http.StatusOK},
		{"ledger routes require an owner", http.MethodGet, "/api/lot", "", "", http.StatusBadRequest},
		{"owner must be a UUID", http.MethodGet, "/api/lot", "bob", "", http.StatusBadRequest},
		{"lists lots", http.MethodGet, "/api/lot", owner, "", http.StatusOK},
		{"rejects a malformed id", http.MethodGet, "/api/lot/not-a-uuid", owner, "", http.StatusBadRequest},
		{"unknown lot", http.MethodGet, "/api/lot/" + testutil.MakeID(), owner, "", http.StatusNotFound},
		{"cash balance", http.MethodGet, "/api/cash/balance", owner, "", http.StatusOK},
		{"consistency report", http.MethodGet, "/api/audit/consistency", owner, "", http.StatusOK},
		{
			"show card sale reassignment validates its body", http.MethodPost,
			"/api/transaction/reassign-show-card-sale", owner, `{}`, http.StatusBadRequest,
		},
		{
			"show reassignment of an unknown transaction", http.MethodPut,
			"/api/transaction/" + testutil.MakeID() + "/show", owner,
			`{"fromShowId":"","toShowId":"` + testutil.MakeID() + `","correctionNote":"moved to the right show"}`,
			http.StatusNotFound,
		},
		{
			"creates a lot", http.MethodPost, "/api/lot", owner,
			`{"name":"EstateBox","purchaseDate":"2025-05-01","totalCost":"100"}`, http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.owner != "" {
				req.Header.Set(middleware.OwnerHeader, tt.owner)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}
