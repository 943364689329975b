// Package redisstore keeps each guild's settings in a Redis hash, one field per
// feature system. HSET only touches the fields it names, which gives merge
// semantics without a read.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "guildSettings:"

var _ settings.Repo = (*Store)(nil)

type Store struct {
	rdb redis.Cmdable
}

func NewStore(rdb redis.Cmdable) *Store {
	return &Store{rdb: rdb}
}

// NewClient creates a go-redis client from a URL such as redis://localhost:6379/0.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

func key(guildID string) string {
	return keyPrefix + guildID
}

func (s *Store) Merge(ctx context.Context, guildID string, patch settings.Document) error {
	if len(patch) == 0 {
		return nil
	}
	values := make(map[string]any, len(patch))
	for system, blob := range patch {
		values[system] = string(blob)
	}
	if err := s.rdb.HSet(ctx, key(guildID), values).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", key(guildID), err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, guildID string) (settings.Document, error) {
	fields, err := s.rdb.HGetAll(ctx, key(guildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key(guildID), err)
	}
	doc := make(settings.Document, len(fields))
	for system, blob := range fields {
		doc[system] = json.RawMessage(blob)
	}
	return doc, nil
}
