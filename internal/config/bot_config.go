package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// BotConfig is the bot process configuration. The token is optional: without
// it the bot starts but never connects.
type BotConfig struct {
	Env          string `env:"ENV" envDefault:"DEV"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	DiscordToken string `env:"DISCORD_TOKEN"`
}

func LoadBot() (BotConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to read .env file")
	}

	var cfg BotConfig
	if err := env.Parse(&cfg); err != nil {
		return BotConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
