package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lvmingyin/react-chat/internal/api/middleware"
	"github.com/lvmingyin/react-chat/internal/config"
	"github.com/lvmingyin/react-chat/internal/handlers"
)

// NewRouter creates and configures the HTTP router. wsHandler is the
// WebSocket upgrade endpoint produced by the transport package.
func NewRouter(cfg *config.Config, logger zerolog.Logger, h *handlers.Handler, wsHandler http.HandlerFunc) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// CORS for the JSON endpoints; the WebSocket handshake enforces its
	// own origin check during upgrade.
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API surface
	r.Get("/healthz", h.Health)
	r.Get("/rooms", h.ListRooms)

	// The event protocol rides on one WebSocket per connection.
	r.Get("/ws", wsHandler)

	// Compiled client bundle with history fallback: client-side routes
	// rewrite to index.html, real files are served as-is.
	r.NotFound(spaHandler(cfg.StaticDir))

	return r
}

// spaHandler serves files from staticDir and falls back to index.html
// for paths that look like client-side routes rather than assets.
func spaHandler(staticDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(staticDir))

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		// Asset requests that miss stay 404; route-looking paths get the
		// app shell.
		if strings.Contains(filepath.Base(r.URL.Path), ".") {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	}
}
