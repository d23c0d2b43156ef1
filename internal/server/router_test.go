package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/solobilling/solo-billing/internal/models"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.Item{}, &models.Sale{}, &models.SaleLine{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func TestHealthz(t *testing.T) {
	h := setupRouter(t)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := setupRouter(t)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected generated X-Request-ID header")
	}

	r2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	r2.Header.Set("X-Request-ID", "req-123")
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r2)
	if got := w2.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("expected caller request id echoed, got %q", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := setupRouter(t)
	r := httptest.NewRequest(http.MethodPatch, "/api/items", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w.Code)
	}
}

func TestItemRoutesWired(t *testing.T) {
	h := setupRouter(t)
	r := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != "[]" {
		t.Fatalf("expected empty array got %s", body)
	}
}
