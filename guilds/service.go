// Package guilds lists the servers and channels visible to the logged-in user,
// using the upstream token embedded in their session credential.
package guilds

import (
	"context"
	"strings"

	"github.com/jrsteele09/nexus-dashboard/internal/errors"
	"github.com/jrsteele09/nexus-dashboard/token"
	"github.com/jrsteele09/nexus-dashboard/upstream"
)

// Upstream is the subset of the upstream client the listings need.
type Upstream interface {
	CurrentUserGuilds(ctx context.Context, accessToken string) ([]upstream.GuildSummary, error)
	GuildChannels(ctx context.Context, guildID, accessToken string) ([]upstream.ChannelSummary, error)
}

type Service struct {
	upstream Upstream
}

func NewService(u Upstream) *Service {
	return &Service{upstream: u}
}

// ListGuilds returns the caller's guilds as currently reported upstream, not
// the snapshot taken at login.
func (s *Service) ListGuilds(ctx context.Context, claims *token.Claims) ([]upstream.GuildSummary, error) {
	accessToken, err := claims.UpstreamAccessToken()
	if err != nil {
		return nil, err
	}
	return s.upstream.CurrentUserGuilds(ctx, accessToken)
}

// ListChannels returns every channel of guildID, in upstream order.
func (s *Service) ListChannels(ctx context.Context, claims *token.Claims, guildID string) ([]upstream.ChannelSummary, error) {
	if strings.TrimSpace(guildID) == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "guild id is required")
	}
	accessToken, err := claims.UpstreamAccessToken()
	if err != nil {
		return nil, err
	}
	return s.upstream.GuildChannels(ctx, guildID, accessToken)
}
