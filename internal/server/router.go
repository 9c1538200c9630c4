package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/trtslyr/islajournal/internal/api"
	"github.com/trtslyr/islajournal/internal/api/handlers"
	"github.com/trtslyr/islajournal/internal/api/middleware"
)

type RouterConfig struct {
	FilesHandler    *handlers.FilesHandler
	SearchHandler   *handlers.SearchHandler
	QueryHandler    *handlers.QueryHandler
	SettingsHandler *handlers.SettingsHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/files", func(r chi.Router) {
		r.Post("/", cfg.FilesHandler.Import)
		r.Get("/", cfg.FilesHandler.List)
		r.Get("/{id}", cfg.FilesHandler.Get)
		r.Post("/{id}/reindex", cfg.FilesHandler.Reindex)
		r.Delete("/{id}", cfg.FilesHandler.Delete)
	})

	r.Post("/search", cfg.SearchHandler.Search)
	r.Post("/query", cfg.QueryHandler.Query)

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", cfg.SettingsHandler.Get)
		r.Put("/", cfg.SettingsHandler.Update)
	})

	return r
}
