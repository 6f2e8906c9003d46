package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dvloznov/finance-entry/internal/api/middleware"
	"github.com/dvloznov/finance-entry/internal/categories"
	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/dvloznov/finance-entry/internal/logger"
	"github.com/go-chi/chi/v5"
)

// CategoriesHandler handles category lookups.
type CategoriesHandler struct {
	source categories.Source
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(source categories.Source) *CategoriesHandler {
	return &CategoriesHandler{source: source}
}

// GetCategories handles GET /api/categories/{type}
func (h *CategoriesHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := chi.URLParam(r, "type")
	log := logger.FromContext(ctx).With().Str("transaction_type", raw).Logger()

	t, err := domain.ParseTransactionType(raw)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown transaction type")
		return
	}

	tree, err := h.source.Categories(ctx, t)
	switch {
	case errors.Is(err, categories.ErrUnsupportedType):
		middleware.WriteError(w, http.StatusBadRequest, "Transaction type has no categories")
		return
	case errors.Is(err, context.Canceled):
		log.Debug().Msg("Category lookup cancelled by client")
		return
	case err != nil:
		log.Error().Err(err).Msg("Failed to load categories")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, tree.Normalized())
}

// Directory lists the accounts and pillars the form offers.
type Directory interface {
	Accounts(ctx context.Context) (categories.Accounts, error)
	Pillars(ctx context.Context) ([]domain.Category, error)
}

// DirectoryHandler handles account and pillar listings.
type DirectoryHandler struct {
	dir Directory
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(dir Directory) *DirectoryHandler {
	return &DirectoryHandler{dir: dir}
}

// ListAccounts handles GET /api/accounts
func (h *DirectoryHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.dir.Accounts(r.Context())
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("Failed to list accounts")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, accounts)
}

// ListPillars handles GET /api/pillars
func (h *DirectoryHandler) ListPillars(w http.ResponseWriter, r *http.Request) {
	pillars, err := h.dir.Pillars(r.Context())
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("Failed to list pillars")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list pillars")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"pillars": pillars,
		"count":   len(pillars),
	})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
