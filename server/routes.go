package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLoginStart, ChainMiddleware(s.LoginStartHandler(), s.StdMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLoginCallback, ChainMiddleware(s.LoginCallbackHandler(), s.StdMiddleware()...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteGuilds, ChainMiddleware(s.GuildsHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteChannels, ChainMiddleware(s.ChannelsHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteSettings, ChainMiddleware(s.ApplySettingsHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteGuildSettings, ChainMiddleware(s.GetSettingsHandler(), s.APIMiddleware(s.RequireAuth())...))

	// Preflight requests carry no credential.
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.RecoverMiddleware))
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
	// Anything unmatched, including a known path with the wrong method.
	s.RegisterRouteFunc("/", ChainMiddleware(s.NotFoundHandler(), s.StdMiddleware()...))
}
