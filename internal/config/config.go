package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config is loaded once at process start and never mutated afterwards.
type Config struct {
	Env      string `env:"ENV" envDefault:"DEV"`
	AppName  string `env:"APP_NAME" envDefault:"Nexus Dashboard"`
	Port     string `env:"PORT" envDefault:"3002"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DiscordClientID     string `env:"DISCORD_CLIENT_ID"`
	DiscordClientSecret string `env:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURI  string `env:"DISCORD_REDIRECT_URI"`
	DiscordAPIBaseURL   string `env:"DISCORD_API_BASE_URL" envDefault:"https://discord.com/api"`
	OwnerID             string `env:"OWNER_ID"`

	SessionIssuer     string        `env:"SESSION_ISSUER" envDefault:"nexus-dashboard"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"1h"`
	SessionSigningKey string        `env:"SESSION_SIGNING_KEY"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"./data/settings.db"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// UpstreamConfig is what the login workflow and upstream client need.
type UpstreamConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetAPIBaseURL() string
}

// SessionConfig describes how session credentials are issued.
type SessionConfig interface {
	GetSessionIssuer() string
	GetSessionAudience() string
	GetSessionTTL() time.Duration
	GetSessionSigningKey() string
}

var (
	_ UpstreamConfig = Config{}
	_ SessionConfig  = Config{}
	_ CorsConfig     = Config{}
)

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to read .env file")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate only checks that the required values are present.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DISCORD_CLIENT_ID", c.DiscordClientID},
		{"DISCORD_CLIENT_SECRET", c.DiscordClientSecret},
		{"DISCORD_REDIRECT_URI", c.DiscordRedirectURI},
		{"OWNER_ID", c.OwnerID},
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StoreRedis:
		required = append(required, struct{ name, value string }{"REDIS_URL", c.RedisURL})
	case StorePostgres:
		required = append(required, struct{ name, value string }{"DATABASE_URL", c.DatabaseURL})
	case StoreSQLite:
		required = append(required, struct{ name, value string }{"SQLITE_PATH", c.SQLitePath})
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}
	return nil
}

func (c Config) GetEnv() string     { return c.Env }
func (c Config) GetAppName() string { return c.AppName }

// GetAddr returns the listen address, always prefixed with ':'.
func (c Config) GetAddr() string {
	if c.Port != "" && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) GetClientID() string     { return c.DiscordClientID }
func (c Config) GetClientSecret() string { return c.DiscordClientSecret }
func (c Config) GetRedirectURI() string  { return c.DiscordRedirectURI }
func (c Config) GetAPIBaseURL() string   { return c.DiscordAPIBaseURL }

func (c Config) GetSessionIssuer() string { return c.SessionIssuer }

// GetSessionAudience scopes credentials to this application's OAuth client.
func (c Config) GetSessionAudience() string   { return c.DiscordClientID }
func (c Config) GetSessionTTL() time.Duration { return c.SessionTTL }
func (c Config) GetSessionSigningKey() string { return c.SessionSigningKey }
