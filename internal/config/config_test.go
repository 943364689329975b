package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/nexus-dashboard/internal/config"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_CLIENT_ID", "client-1")
	t.Setenv("DISCORD_CLIENT_SECRET", "secret-1")
	t.Setenv("DISCORD_REDIRECT_URI", "http://localhost:3002/auth/login-callback")
	t.Setenv("OWNER_ID", "owner-1")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := config.Load()
		require.NoError(t, err)
		require.Equal(t, ":3002", cfg.GetAddr())
		require.Equal(t, "https://discord.com/api", cfg.GetAPIBaseURL())
		require.Equal(t, config.StoreMemory, cfg.StoreDriver)
		require.Equal(t, time.Hour, cfg.GetSessionTTL())
		require.Equal(t, "client-1", cfg.GetSessionAudience())
		require.True(t, cfg.GetAllowedOrigins().IsAllowedOrigin("*"))
	})

	t.Run("missing owner", func(t *testing.T) {
		setRequired(t)
		t.Setenv("OWNER_ID", "")

		_, err := config.Load()
		require.EqualError(t, err, "OWNER_ID is required")
	})

	t.Run("redis driver needs url", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORE_DRIVER", "redis")

		_, err := config.Load()
		require.EqualError(t, err, "REDIS_URL is required")
	})

	t.Run("unknown driver", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORE_DRIVER", "firestore")

		_, err := config.Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown STORE_DRIVER")
	})

	t.Run("origins", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("PORT", ":9000")

		cfg, err := config.Load()
		require.NoError(t, err)
		require.Equal(t, ":9000", cfg.GetAddr())
		origins := cfg.GetAllowedOrigins()
		require.True(t, origins.IsAllowedOrigin("https://a.example"))
		require.True(t, origins.IsAllowedOrigin("https://b.example"))
		require.False(t, origins.IsAllowedOrigin("*"))
		require.Equal(t, "https://a.example, https://b.example", origins.String())
	})
}

func TestLoadBot(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	cfg, err := config.LoadBot()
	require.NoError(t, err)
	require.Empty(t, cfg.DiscordToken)

	t.Setenv("DISCORD_TOKEN", "bot-token")
	cfg, err = config.LoadBot()
	require.NoError(t, err)
	require.Equal(t, "bot-token", cfg.DiscordToken)
}
