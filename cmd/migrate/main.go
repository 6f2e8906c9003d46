package main

import (
	"context"
	"flag"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/dvloznov/finance-entry/internal/config"
	infraBQ "github.com/dvloznov/finance-entry/internal/infra/bigquery"
	"github.com/dvloznov/finance-entry/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New()
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}

	var (
		projectID = flag.String("project", cfg.BigQueryProjectID, "GCP project ID (or set BIGQUERY_PROJECT_ID env)")
		datasetID = flag.String("dataset", cfg.BigQueryDatasetID, "BigQuery dataset ID")
		appliedBy = flag.String("applied-by", "migrate-cli", "Name of the tool applying migrations")
		dryRun    = flag.Bool("dry-run", false, "List the embedded migrations without applying them")
	)
	flag.Parse()

	log := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))

	if *projectID == "" {
		log.Fatal().Msg("Error: -project flag is required. Please specify your GCP project ID.")
	}

	migrations, err := infraBQ.Migrations(*projectID, *datasetID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read migrations")
	}

	if *dryRun {
		for _, m := range migrations {
			log.Info().Int("version", m.Version).Str("name", m.Name).Str("checksum", m.Checksum[:12]).Msg("Migration")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client, err := bigquery.NewClient(ctx, *projectID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create BigQuery client")
	}
	defer client.Close()

	log.Info().Str("project", *projectID).Str("dataset", *datasetID).Msg("Connected to BigQuery")

	migrator := infraBQ.NewMigrator(client, *projectID, *datasetID, *appliedBy, log)
	count, err := migrator.Apply(ctx, migrations)
	if err != nil {
		log.Fatal().Err(err).Int("applied", count).Msg("Migration failed")
	}

	if count == 0 {
		log.Info().Msg("No new migrations to apply. Database is up to date.")
	} else {
		log.Info().Int("applied", count).Msg("Successfully applied migrations")
	}
}
