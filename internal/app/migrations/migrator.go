package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	createVersionTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	selectVersions = `SELECT version FROM schema_migrations`
	insertVersion  = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

// Migrator applies ordered SQL files and records them in schema_migrations
type Migrator struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger.With().Str("component", "migrator").Logger(),
	}
}

// Version extracts the version prefix of a migration file ("001_init.sql" => "001")
func Version(filePath string) string {
	return strings.SplitN(filepath.Base(filePath), "_", 2)[0]
}

// SQLFiles lists the .sql files of dirPath in execution order
func SQLFiles(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, filepath.Join(dirPath, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Pending returns the files whose version is not in applied, keeping their order
func Pending(files []string, applied map[string]bool) []string {
	var pending []string
	for _, file := range files {
		if !applied[Version(file)] {
			pending = append(pending, file)
		}
	}
	return pending
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	if _, err := m.db.Exec(ctx, createVersionTable); err != nil {
		return nil, fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	rows, err := m.db.Query(ctx, selectVersions)
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

// apply runs one file and records its version in the same transaction
func (m *Migrator) apply(ctx context.Context, filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	name := filepath.Base(filePath)
	err = pgx.BeginTxFunc(ctx, m.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, insertVersion, Version(filePath)); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("file", name).Msg("Migration applied")
	return nil
}

// MigrateFromDirectory applies every pending SQL file of dirPath in order
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	files, err := SQLFiles(dirPath)
	if err != nil {
		return err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return err
	}

	pending := Pending(files, applied)
	m.logger.Debug().Int("total", len(files)).Int("pending", len(pending)).Msg("Migration plan")
	for _, file := range pending {
		if err := m.apply(ctx, file); err != nil {
			return err
		}
	}
	return nil
}
