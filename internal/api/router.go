package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/api/handler"
	mw "github.com/jackxcreation/downloader-ninjaX-backend/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	infoHandler *handler.InfoHandler,
	mergeHandler *handler.MergeHandler,
	relayHandler *handler.RelayHandler,
	cookieHandler *handler.CookieHandler,
	healthHandler *handler.HealthHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Minute))
	r.Use(mw.CORS)

	// Health probes
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)

	// Resolve a URL into downloadable formats
	r.Post("/get_info", infoHandler.GetInfo)

	// Combine a chosen video stream and audio stream into one file
	r.Post("/merge", mergeHandler.Merge)

	// Single-stream relays
	r.Get("/stream_media", relayHandler.Stream)
	r.Get("/proxy_media", relayHandler.Stream)
	r.Get("/proxy_download", relayHandler.Download)

	// Per-platform session cookies
	r.Post("/update_cookies/{platform}", cookieHandler.Update)

	return r
}
