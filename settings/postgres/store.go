// Package postgres stores each guild's settings as one JSONB document and
// merges writes with the jsonb concatenation operator, which replaces only
// the top-level keys present in the patch.
package postgres

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var _ settings.Repo = (*Store)(nil)

const upsertSQL = `
INSERT INTO guild_settings (guild_id, settings, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (guild_id) DO UPDATE
SET settings = guild_settings.settings || EXCLUDED.settings,
    updated_at = now()`

const selectSQL = `SELECT settings FROM guild_settings WHERE guild_id = $1`

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return pool, nil
}

// Migrate applies the embedded schema files in name order. Every file is
// written to be re-runnable.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return errors.Wrap(err, "list migrations")
	}
	sort.Strings(files)
	for _, name := range files {
		body, err := migrationFS.ReadFile(name)
		if err != nil {
			return errors.Wrapf(err, "read %s", name)
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return errors.Wrapf(err, "apply %s", name)
		}
	}
	return nil
}

func (s *Store) Merge(ctx context.Context, guildID string, patch settings.Document) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return errors.Wrap(err, "encode patch")
	}
	if _, err := s.pool.Exec(ctx, upsertSQL, guildID, string(body)); err != nil {
		return fmt.Errorf("upsert guild %s: %w", guildID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, guildID string) (settings.Document, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, selectSQL, guildID).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return settings.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select guild %s: %w", guildID, err)
	}
	doc := settings.Document{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrap(err, "decode settings")
	}
	return doc, nil
}
