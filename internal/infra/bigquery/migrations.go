package bigquery

import (
	"context"
	"crypto/sha256"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// migrationPattern matches migration files: 0001_name.sql
var migrationPattern = regexp.MustCompile(`^(\d{4})_(.+)\.sql$`)

// Migration is a single schema change.
type Migration struct {
	Version  int
	Name     string
	Filename string
	SQL      string
	Checksum string
}

// AppliedMigration is a row of schema_migrations.
type AppliedMigration struct {
	Version   int
	Name      string
	AppliedAt time.Time
	Checksum  string
	AppliedBy string
}

// Migrations returns the schema changes shipped with the binary, with the
// project and dataset placeholders filled in.
func Migrations(projectID, datasetID string) ([]Migration, error) {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("Migrations: %w", err)
	}
	return ReadMigrations(sub, projectID, datasetID)
}

// ReadMigrations reads every NNNN_name.sql file at the root of fsys, sorted
// by version. Other files are skipped. The checksum covers the file as
// written, before placeholders are replaced.
func ReadMigrations(fsys fs.FS, projectID, datasetID string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("ReadMigrations: reading directory: %w", err)
	}

	var migrations []Migration
	seen := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matches := migrationPattern.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}
		version, err := strconv.Atoi(matches[1])
		if err != nil {
			continue
		}
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("ReadMigrations: version %04d used by %s and %s", version, prev, entry.Name())
		}
		seen[version] = entry.Name()

		content, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("ReadMigrations: reading %s: %w", entry.Name(), err)
		}

		sql := strings.ReplaceAll(string(content), "{{PROJECT_ID}}", projectID)
		sql = strings.ReplaceAll(sql, "{{DATASET_ID}}", datasetID)

		migrations = append(migrations, Migration{
			Version:  version,
			Name:     matches[2],
			Filename: entry.Name(),
			SQL:      sql,
			Checksum: fmt.Sprintf("%x", sha256.Sum256(content)),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// Pending returns the migrations whose version is not in applied.
func Pending(migrations []Migration, applied []AppliedMigration) []Migration {
	done := make(map[int]bool, len(applied))
	for _, am := range applied {
		done[am.Version] = true
	}

	var pending []Migration
	for _, m := range migrations {
		if !done[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending
}

// Migrator applies migrations and records them in schema_migrations.
type Migrator struct {
	client    *bigquery.Client
	projectID string
	datasetID string
	appliedBy string
	log       zerolog.Logger
}

// NewMigrator creates a migrator for projectID.datasetID.
func NewMigrator(client *bigquery.Client, projectID, datasetID, appliedBy string, log zerolog.Logger) *Migrator {
	return &Migrator{
		client:    client,
		projectID: projectID,
		datasetID: datasetID,
		appliedBy: appliedBy,
		log:       log,
	}
}

// Apply runs every pending migration in order and returns how many ran.
// It stops at the first failure.
func (m *Migrator) Apply(ctx context.Context, migrations []Migration) (int, error) {
	if err := m.ensureSchemaMigrationsTable(ctx); err != nil {
		return 0, fmt.Errorf("Apply: %w", err)
	}

	applied, err := m.Applied(ctx)
	if err != nil {
		return 0, fmt.Errorf("Apply: %w", err)
	}

	pending := Pending(migrations, applied)
	m.log.Info().
		Int("known", len(migrations)).
		Int("applied", len(applied)).
		Int("pending", len(pending)).
		Msg("Loaded migrations")

	for i, mig := range pending {
		log := m.log.With().Int("version", mig.Version).Str("name", mig.Name).Logger()
		log.Info().Msg("Applying migration")

		if err := m.run(ctx, m.client.Query(mig.SQL)); err != nil {
			return i, fmt.Errorf("Apply: migration %04d_%s: %w", mig.Version, mig.Name, err)
		}
		if err := m.record(ctx, mig); err != nil {
			return i, fmt.Errorf("Apply: recording %04d_%s: %w", mig.Version, mig.Name, err)
		}
		log.Info().Msg("Migration applied")
	}
	return len(pending), nil
}

func (m *Migrator) table(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", m.projectID, m.datasetID, name)
}

func (m *Migrator) ensureSchemaMigrationsTable(ctx context.Context) error {
	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version       INT64 NOT NULL,
			name          STRING NOT NULL,
			applied_at    TIMESTAMP NOT NULL,
			checksum      STRING,
			applied_by    STRING
		)
	`, m.table("schema_migrations"))

	if err := m.run(ctx, m.client.Query(sql)); err != nil {
		return fmt.Errorf("ensureSchemaMigrationsTable: %w", err)
	}
	return nil
}

// Applied lists the recorded migrations in version order.
func (m *Migrator) Applied(ctx context.Context) ([]AppliedMigration, error) {
	sql := fmt.Sprintf(`
		SELECT version, name, applied_at, checksum, applied_by
		FROM %s
		ORDER BY version ASC
	`, m.table("schema_migrations"))

	it, err := m.client.Query(sql).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("Applied: query read: %w", err)
	}

	var applied []AppliedMigration
	for {
		var row struct {
			Version   int64               `bigquery:"version"`
			Name      string              `bigquery:"name"`
			AppliedAt time.Time           `bigquery:"applied_at"`
			Checksum  bigquery.NullString `bigquery:"checksum"`
			AppliedBy bigquery.NullString `bigquery:"applied_by"`
		}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Applied: iter next: %w", err)
		}

		applied = append(applied, AppliedMigration{
			Version:   int(row.Version),
			Name:      row.Name,
			AppliedAt: row.AppliedAt,
			Checksum:  row.Checksum.StringVal,
			AppliedBy: row.AppliedBy.StringVal,
		})
	}
	return applied, nil
}

func (m *Migrator) record(ctx context.Context, mig Migration) error {
	q := m.client.Query(fmt.Sprintf(`
		INSERT INTO %s
		(version, name, applied_at, checksum, applied_by)
		VALUES (@version, @name, CURRENT_TIMESTAMP(), @checksum, @applied_by)
	`, m.table("schema_migrations")))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "version", Value: mig.Version},
		{Name: "name", Value: mig.Name},
		{Name: "checksum", Value: mig.Checksum},
		{Name: "applied_by", Value: m.appliedBy},
	}
	return m.run(ctx, q)
}

func (m *Migrator) run(ctx context.Context, q *bigquery.Query) error {
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}
	return nil
}
