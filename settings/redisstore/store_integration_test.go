//go:build integration

package redisstore_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/jrsteele09/nexus-dashboard/settings/redisstore"
	"github.com/jrsteele09/nexus-dashboard/settings/settingstest"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

var testRedisURL string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}
	testRedisURL, err = container.ConnectionString(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis connection string: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()
	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
	}
	os.Exit(code)
}

func newStore(t *testing.T) settings.Repo {
	t.Helper()
	ctx := context.Background()
	rdb, err := redisstore.NewClient(ctx, testRedisURL)
	require.NoError(t, err)
	require.NoError(t, rdb.FlushAll(ctx).Err())
	t.Cleanup(func() { _ = rdb.Close() })
	return redisstore.NewStore(rdb)
}

func TestStoreContract(t *testing.T) {
	settingstest.RunRepoContract(t, newStore)
}

func TestStore_HashLayout(t *testing.T) {
	ctx := context.Background()
	rdb, err := redisstore.NewClient(ctx, testRedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.FlushAll(ctx).Err())

	store := redisstore.NewStore(rdb)
	require.NoError(t, store.Merge(ctx, "G1", settingstest.Doc("welcome", `{"enabled":true}`)))

	raw, err := rdb.HGet(ctx, "guildSettings:G1", "welcome").Result()
	require.NoError(t, err)
	require.JSONEq(t, `{"enabled":true}`, raw)
}
