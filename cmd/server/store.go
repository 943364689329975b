package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/nexus-dashboard/internal/config"
	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/jrsteele09/nexus-dashboard/settings/memory"
	"github.com/jrsteele09/nexus-dashboard/settings/postgres"
	"github.com/jrsteele09/nexus-dashboard/settings/redisstore"
	"github.com/jrsteele09/nexus-dashboard/settings/sqlite"
	"github.com/rs/zerolog/log"
)

// openSettingsRepo opens the backend named by STORE_DRIVER. The returned func
// releases its connections.
func openSettingsRepo(ctx context.Context, c config.Config) (settings.Repo, func(), error) {
	log.Info().Str("driver", c.StoreDriver).Msg("opening settings store")

	switch c.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("settings are kept in memory and lost on restart")
		return memory.NewRepo(), func() {}, nil

	case config.StoreRedis:
		rdb, err := redisstore.NewClient(ctx, c.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewStore(rdb), func() { _ = rdb.Close() }, nil

	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, c.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewStore(pool), pool.Close, nil

	case config.StoreSQLite:
		store, err := sqlite.Open(c.SQLitePath, clockwork.NewRealClock())
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", c.StoreDriver)
}
