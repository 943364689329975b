package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/nexus-dashboard/auth"
	"github.com/jrsteele09/nexus-dashboard/guilds"
	"github.com/jrsteele09/nexus-dashboard/internal/config"
	"github.com/jrsteele09/nexus-dashboard/internal/logging"
	"github.com/jrsteele09/nexus-dashboard/server"
	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/jrsteele09/nexus-dashboard/token"
	"github.com/jrsteele09/nexus-dashboard/upstream"
	"github.com/rs/zerolog/log"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.Load()
	if err != nil {
		// Configuration does not fix itself between restarts.
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(c.GetEnv(), c.LogLevel)
	displayAppname(c.GetAppName())

	ctx := context.Background()
	repo, closeRepo, err := openSettingsRepo(ctx, c)
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	defer closeRepo()

	handler, err := newHandler(c, repo)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.GetAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func newHandler(c config.Config, repo settings.Repo) (*server.Server, error) {
	keyPair, err := token.KeyPairFromConfig(c.GetSessionSigningKey())
	if err != nil {
		return nil, fmt.Errorf("load signing key: %w", err)
	}
	signer := token.NewKeyPairSigner(keyPair)
	clock := clockwork.NewRealClock()

	// Upstream calls use the default transport with no timeout of their own.
	upstreamClient := upstream.NewClient(c.GetAPIBaseURL(), nil)

	return server.New(c, server.Services{
		Login: auth.NewLoginService(
			upstream.NewOAuthExchanger(c, nil),
			upstreamClient,
			token.NewIssuer(signer, c, clock),
			auth.OwnerPolicy{OwnerID: c.OwnerID},
		),
		Guilds:   guilds.NewService(upstreamClient),
		Settings: settings.NewService(repo),
		Verifier: token.NewVerifier(signer.PublicKey(), c, clock),
	})
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
