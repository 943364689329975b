package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jrsteele09/nexus-dashboard/bot"
	"github.com/jrsteele09/nexus-dashboard/internal/config"
	"github.com/jrsteele09/nexus-dashboard/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	c, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(c.Env, c.LogLevel)
	log.Info().Msg("Bot process started")

	if c.DiscordToken == "" {
		log.Warn().Msg("DISCORD_TOKEN is not set. Bot will not log in.")
	} else {
		b, err := bot.New(c.DiscordToken)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create bot")
		}
		if err := b.Open(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect bot")
		}
		defer func() {
			if err := b.Close(); err != nil {
				log.Err(err).Msg("failed to close bot session")
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("Bot process stopped")
}
