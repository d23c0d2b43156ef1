package server

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/solobilling/solo-billing/internal/handlers"
	"github.com/solobilling/solo-billing/internal/httpx"
	"github.com/solobilling/solo-billing/internal/services"
)

// New constructs the API http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight DB check (SELECT 1) – detailed errors stay out of the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	ih := handlers.NewItemHandler(db)
	mux.HandleFunc("GET /api/items", ih.List)
	mux.HandleFunc("POST /api/items", ih.Create)
	mux.HandleFunc("PUT /api/items/{id}", ih.Update)
	mux.HandleFunc("DELETE /api/items/{id}", ih.Delete)

	sh := handlers.NewSaleHandler(db, services.NewOrderService(db))
	mux.HandleFunc("GET /api/sales", sh.List)
	mux.HandleFunc("POST /api/orders", sh.CreateOrder)
	mux.HandleFunc("DELETE /api/sales/{id}", sh.Delete)
	mux.HandleFunc("GET /api/sales/{id}/details", sh.Details)

	return withRecover(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s rid=%s", r.Method, r.URL.Path, time.Since(start), rid)
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
