package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Login workflow
	RouteLoginStart    = "/auth/login-start"
	RouteLoginCallback = "/auth/login-callback"

	// API Routes (bearer session credential)
	RouteGuilds        = "/api/guilds"
	RouteChannels      = "/api/channels/{guildId}"
	RouteSettings      = "/api/settings"
	RouteGuildSettings = "/api/settings/{guildId}"

	// Operational
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)

// Path and query parameter names
const (
	PathParamGuildID      = "guildId"
	QueryParamCode        = "code"
	QueryParamManageable  = "manageable"
	QueryParamChannelType = "type"
	HeaderRequestID       = "X-Request-ID"
	maxSettingsBodyLength = 1 << 20
)
