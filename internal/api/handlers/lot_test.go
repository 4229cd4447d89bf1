package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/testutil"
)

func TestLotHandler(t *testing.T) {
	setupHandler := func(t *testing.T) (*LotHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewLotHandler(testutil.NewTestLotService(t, db)), db
	}

	t.Run("creates a lot", func(t *testing.T) {
		handler, db := setupHandler(t)
		owner := testutil.MakeOwnerID()

		body := map[string]any{"name": "EstateBox", "purchaseDate": "2025-05-01", "totalCost": "100", "paidFromCash": true}
		req := testutil.NewOwnerRequest(t, http.MethodPost, "/api/lot", body, owner, nil)
		w := httptest.NewRecorder()

		handler.CreateLot(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "lot", 1)
		testutil.AssertRowCount(t, db, "cash_transaction", 1)
	})

	t.Run("returns 404 for an unknown lot", func(t *testing.T) {
		handler, _ := setupHandler(t)
		id := testutil.MakeID()

		req := testutil.NewOwnerRequest(t, http.MethodGet, "/api/lot/"+id, nil, testutil.MakeOwnerID(), map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetLot(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("close returns 409 while cards are available", func(t *testing.T) {
		handler, db := setupHandler(t)
		owner := testutil.MakeOwnerID()
		lot, _ := testutil.CreateLotWithCards(t, db, owner, "100", 1)

		req := testutil.NewOwnerRequest(t, http.MethodPost, "/api/lot/"+lot.ID+"/close", map[string]string{}, owner, map[string]string{"uuid": lot.ID})
		w := httptest.NewRecorder()

		handler.CloseLot(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("summary reports net", func(t *testing.T) {
		handler, db := setupHandler(t)
		owner := testutil.MakeOwnerID()
		lot := testutil.NewLot(owner).WithTotalCost("100").Build(t, db)
		testutil.NewTransaction(owner).WithLot(lot.ID).WithRevenue("60").Build(t, db)

		req := testutil.NewOwnerRequest(t, http.MethodGet, "/api/lot/"+lot.ID+"/summary", nil, owner, map[string]string{"uuid": lot.ID})
		w := httptest.NewRecorder()

		handler.LotSummary(w, req)

		var response model.LotSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Net.StringFixed(2) != "-40.00" {
			t.Errorf("Expected net -40.00, got %s", response.Net.StringFixed(2))
		}
	})
}
