package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/nexus-dashboard/auth"
	"github.com/jrsteele09/nexus-dashboard/internal/config"
	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/jrsteele09/nexus-dashboard/token"
	"github.com/jrsteele09/nexus-dashboard/upstream"
	"github.com/rs/zerolog/log"
)

// LoginWorkflow starts and completes an upstream login.
type LoginWorkflow interface {
	StartURL() string
	Complete(ctx context.Context, code string) (*auth.LoginResult, error)
}

// GuildLister lists what the caller's upstream token can see.
type GuildLister interface {
	ListGuilds(ctx context.Context, claims *token.Claims) ([]upstream.GuildSummary, error)
	ListChannels(ctx context.Context, claims *token.Claims, guildID string) ([]upstream.ChannelSummary, error)
}

// SettingsService reads and merge-writes guild settings.
type SettingsService interface {
	Apply(ctx context.Context, guildID string, patch settings.Document) error
	Get(ctx context.Context, guildID string) (settings.Document, error)
}

// CredentialVerifier validates a bearer session credential.
type CredentialVerifier interface {
	Verify(ctx context.Context, rawCredential string) (*token.Claims, error)
}

// Services holds the workflow dependencies of the HTTP layer.
type Services struct {
	Login    LoginWorkflow
	Guilds   GuildLister
	Settings SettingsService
	Verifier CredentialVerifier
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	cors     config.CorsConfig
	services Services
}

func New(cfg config.Config, services Services) (*Server, error) {
	if services.Login == nil || services.Guilds == nil || services.Settings == nil || services.Verifier == nil {
		return nil, fmt.Errorf("[Server New] all services are required")
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		cors:     cfg,
		services: services,
	}

	log.Info().Str("allowed_origins", cfg.GetAllowedOrigins().String()).Msg("cors configured")

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes returns the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func colouredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", colouredMethod(method), path)
}
