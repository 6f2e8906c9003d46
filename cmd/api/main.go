package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/finance-entry/internal/api"
	"github.com/dvloznov/finance-entry/internal/api/handlers"
	"github.com/dvloznov/finance-entry/internal/categories"
	"github.com/dvloznov/finance-entry/internal/config"
	infraBQ "github.com/dvloznov/finance-entry/internal/infra/bigquery"
	"github.com/dvloznov/finance-entry/internal/logger"
	"github.com/dvloznov/finance-entry/internal/notion"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New()
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Parse command-line flags
	port := flag.String("port", cfg.Port, "HTTP server port (or set PORT env)")
	flag.Parse()

	// Initialize logger
	log := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))

	if err := cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if !cfg.SSLVerify {
		log.Warn().Msg("TLS certificate verification is disabled for outbound requests")
	}

	ctx := context.Background()

	// Initialize category source
	var (
		source categories.Source
		dir    handlers.Directory
	)
	switch cfg.CategoryBackend {
	case config.BackendBigQuery:
		repo, err := infraBQ.NewCategoryRepository(ctx, cfg.BigQueryProjectID, cfg.BigQueryDatasetID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create category repository")
		}
		defer repo.Close()
		source = categories.NewBigQuerySource(repo)
	default:
		source = categories.NewNotionSource(
			notion.NewClient(cfg.NotionAPIKey, cfg.HTTPClient()),
			cfg.CategoriesDBID,
			log,
		)
	}

	// Account and pillar listings come from Notion whenever it is configured
	if cfg.NotionAPIKey != "" && cfg.AccountsDBID != "" && cfg.PillarsDBID != "" {
		dir = categories.NewNotionDirectory(
			notion.NewClient(cfg.NotionAPIKey, cfg.HTTPClient()),
			cfg.AccountsDBID,
			cfg.PillarsDBID,
			log,
		)
	} else {
		log.Warn().Msg("Accounts or pillars database not configured - listing endpoints disabled")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      api.NewRouter(source, dir, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().
			Str("port", *port).
			Str("backend", string(cfg.CategoryBackend)).
			Msg("Starting category service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
