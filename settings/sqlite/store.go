// Package sqlite keeps one row per (guild, feature system). Upserting only
// the rows named by a patch gives the same merge semantics as the other stores.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/nexus-dashboard/settings"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var _ settings.Repo = (*Store)(nil)

const upsertSQL = `
INSERT INTO guild_settings (guild_id, system, value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (guild_id, system) DO UPDATE
SET value = excluded.value, updated_at = excluded.updated_at`

// Store persists settings in a SQLite file.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string, clock clockwork.Clock) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", cleanPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, clock: clock}, nil
}

func applyMigrations(db *sql.DB) error {
	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, name := range files {
		body, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := db.Exec(string(body)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Merge(ctx context.Context, guildID string, patch settings.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.clock.Now().UTC().UnixMilli()
	for system, blob := range patch {
		if _, err := tx.ExecContext(ctx, upsertSQL, guildID, system, string(blob), now); err != nil {
			return fmt.Errorf("upsert %s/%s: %w", guildID, system, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, guildID string) (settings.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT system, value FROM guild_settings WHERE guild_id = ?`, guildID)
	if err != nil {
		return nil, fmt.Errorf("query guild %s: %w", guildID, err)
	}
	defer rows.Close()

	doc := settings.Document{}
	for rows.Next() {
		var system, value string
		if err := rows.Scan(&system, &value); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		doc[system] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return doc, nil
}
