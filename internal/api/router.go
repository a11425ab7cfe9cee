// Package api wires HTTP handlers onto the chi router.
package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/vidseo/internal/api/handler"
	mw "github.com/iconidentify/vidseo/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	analysisHandler *handler.AnalysisHandler,
	healthHandler *handler.HealthHandler,
	uiHandler *handler.UIHandler,
	apiKey string,
	requestTimeout time.Duration,
	logger *slog.Logger,
) *chi.Mux {
	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Minute
	}

	r := chi.NewRouter()

	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(mw.Recovery(logger))
	r.Use(mw.CORS)

	// Health endpoints (no auth)
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)

	// Web UI (no auth - the page sends the API key itself)
	r.Get("/", uiHandler.Index)
	r.Get("/ui", uiHandler.Index)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(apiKey))
		// Sync analyses run three LLM stages inside the request.
		r.Use(middleware.Timeout(requestTimeout))

		r.Get("/stats", healthHandler.Stats)
		r.Get("/languages", analysisHandler.Languages)

		r.Post("/analyses", analysisHandler.Submit)
		r.Post("/analyses/sync", analysisHandler.AnalyzeSync)
		r.Get("/analyses", analysisHandler.List)
		r.Get("/analyses/{runID}", analysisHandler.Get)
		r.Get("/analyses/{runID}/thumbnails/{index}/preview", analysisHandler.Preview)
		r.Post("/analyses/{runID}/thumbnails/{index}/regenerate", analysisHandler.RegeneratePreview)
	})

	return r
}
