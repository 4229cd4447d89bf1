package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/middleware"
)

func TestLogger(t *testing.T) {
	t.Run("logs method path and status", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/lot/abc/close", nil)
		w := httptest.NewRecorder()
		middleware.Logger(logger)(next).ServeHTTP(w, req)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Expected one JSON log line, got %q: %v", buf.String(), err)
		}
		if entry["method"] != "POST" {
			t.Errorf("Expected method POST, got %v", entry["method"])
		}
		if entry["path"] != "/api/lot/abc/close" {
			t.Errorf("Expected path to be logged, got %v", entry["path"])
		}
		if entry["status"] != float64(http.StatusConflict) {
			t.Errorf("Expected status 409, got %v", entry["status"])
		}
		if entry["level"] != "WARN" {
			t.Errorf("Expected WARN level for 4xx, got %v", entry["level"])
		}
	})

	t.Run("defaults to 200 when handler does not write a header", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		middleware.Logger(logger)(next).ServeHTTP(httptest.NewRecorder(), req)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Expected JSON log line: %v", err)
		}
		if entry["status"] != float64(http.StatusOK) {
			t.Errorf("Expected status 200, got %v", entry["status"])
		}
		if entry["level"] != "INFO" {
			t.Errorf("Expected INFO level, got %v", entry["level"])
		}
	})
}
