package main

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/solobilling/solo-billing/internal/server"
)

// NewApp combines the JSON API with the bundled static UI. Anything under
// /api/ (plus the health endpoints) goes to the router; the rest is served
// from staticDir, with "/" mapping to index.html.
func NewApp(dbConn *gorm.DB, staticDir string) http.Handler {
	api := server.New(dbConn)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if strings.HasPrefix(p, "/api/") || p == "/health" || p == "/healthz" {
			api.ServeHTTP(w, r)
			return
		}
		if p == "/" {
			p = "/index.html"
		}
		serveStatic(w, r, staticDir, strings.TrimPrefix(p, "/"))
	})
}

// serveStatic writes one asset with an ETag and cache headers. Small files
// only; the UI bundle is a handful of pages.
func serveStatic(w http.ResponseWriter, r *http.Request, dir, name string) {
	path := filepath.Join(dir, filepath.Clean("/"+name))
	f, err := os.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		http.NotFound(w, r)
		return
	}
	h := sha1.New()
	if _, cerr := io.Copy(h, f); cerr == nil {
		etag := fmt.Sprintf("\"%x\"", h.Sum(nil)[:8])
		w.Header().Set("ETag", etag)
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	switch filepath.Ext(name) {
	case ".css":
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
	case ".js":
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	case ".html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	if os.Getenv("DEV") != "1" {
		w.Header().Set("Cache-Control", "public, max-age=86400")
	} else {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	}
	if _, serr := f.Seek(0, io.SeekStart); serr != nil {
		http.Error(w, "read error", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, name, fi.ModTime(), f)
}
