package api

import (
	"net/http"

	"github.com/dvloznov/finance-entry/internal/api/handlers"
	"github.com/dvloznov/finance-entry/internal/api/middleware"
	"github.com/dvloznov/finance-entry/internal/categories"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// NewRouter wires the lookup endpoints. A nil directory leaves the account
// and pillar routes unregistered.
func NewRouter(source categories.Source, dir handlers.Directory, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Logger(log),
		middleware.CORS,
	)

	r.Get("/health", handlers.Health)

	categoriesHandler := handlers.NewCategoriesHandler(source)
	r.Get("/api/categories/{type}", categoriesHandler.GetCategories)

	if dir != nil {
		directoryHandler := handlers.NewDirectoryHandler(dir)
		r.Get("/api/accounts", directoryHandler.ListAccounts)
		r.Get("/api/pillars", directoryHandler.ListPillars)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
