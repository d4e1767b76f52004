package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"sport_club_backend/internal/database/migrations"
	"sport_club_backend/pkg/utils"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Open connects to PostgreSQL, verifies the connection and tunes the pool.
func Open(ctx context.Context, dsn string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(maxConns)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	utils.LogInfo("Successfully connected to the database")
	return db, nil
}

// Migration is one versioned schema file.
type Migration struct {
	Version int
	Name    string
}

// PendingMigrations lists the NNN_name.up.sql files in fsys newer than current, in version order.
func PendingMigrations(fsys fs.FS, current int) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var pending []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}
		pending = append(pending, Migration{Version: version, Name: name})
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })
	return pending, nil
}

// Migrate applies the embedded migrations that have not run yet and returns how many ran.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	return MigrateFS(ctx, db, migrations.FS)
}

// MigrateFS is Migrate over an arbitrary file system.
func MigrateFS(ctx context.Context, db *sql.DB, fsys fs.FS) (int, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return 0, fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}

	pending, err := PendingMigrations(fsys, current)
	if err != nil {
		return 0, err
	}

	for i, m := range pending {
		content, err := fs.ReadFile(fsys, m.Name)
		if err != nil {
			return i, fmt.Errorf("reading migration %s: %w", m.Name, err)
		}
		if err := applyMigration(ctx, db, m, string(content)); err != nil {
			return i, err
		}
		utils.LogInfo("Migration applied", map[string]interface{}{"version": m.Version, "name": m.Name})
	}
	return len(pending), nil
}

func applyMigration(ctx context.Context, db *sql.DB, m Migration, content string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration %s: %w", m.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, content); err != nil {
		return fmt.Errorf("executing migration %s: %w", m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
		return fmt.Errorf("recording migration %s: %w", m.Name, err)
	}
	return tx.Commit()
}

// ApplySchemaFile executes an extra SQL script, e.g. seed data. An empty path is a no-op.
func ApplySchemaFile(ctx context.Context, db *sql.DB, schemaPath string) error {
	if schemaPath == "" {
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}
	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema file applied", map[string]interface{}{"path": schemaPath})
	return nil
}
