package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/nexus-dashboard/internal/errors"
	"github.com/jrsteele09/nexus-dashboard/internal/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Resource paths relative to the API base URL
const (
	PathCurrentUser       = "/users/@me"
	PathCurrentUserGuilds = "/users/@me/guilds"
)

// PathGuildChannels returns the channels resource of a guild.
func PathGuildChannels(guildID string) string {
	return "/guilds/" + url.PathEscape(guildID) + "/channels"
}

// Client calls the chat platform REST API on behalf of a user.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL (e.g. "https://discord.com/api").
// A nil httpClient uses http.DefaultClient and its transport defaults.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchAsUser performs GET resourcePath with accessToken as the bearer credential and
// decodes the JSON body into out. Every failure is reported as ErrUpstreamUnavailable;
// the upstream status code is only logged.
func (c *Client) FetchAsUser(ctx context.Context, resourcePath, accessToken string, out any) error {
	return c.fetch(ctx, "raw", resourcePath, accessToken, out)
}

// CurrentUser fetches the profile of the token's owner.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*Profile, error) {
	var p Profile
	if err := c.fetch(ctx, "user", PathCurrentUser, accessToken, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CurrentUserGuilds fetches the guilds the token's owner is a member of.
func (c *Client) CurrentUserGuilds(ctx context.Context, accessToken string) ([]GuildSummary, error) {
	guilds := []GuildSummary{}
	if err := c.fetch(ctx, "guilds", PathCurrentUserGuilds, accessToken, &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

// GuildChannels fetches the channels of guildID.
func (c *Client) GuildChannels(ctx context.Context, guildID, accessToken string) ([]ChannelSummary, error) {
	channels := []ChannelSummary{}
	if err := c.fetch(ctx, "channels", PathGuildChannels(guildID), accessToken, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (c *Client) fetch(ctx context.Context, resource, resourcePath, accessToken string, out any) error {
	if accessToken == "" {
		return errors.ErrMissingUpstreamToken
	}

	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+resourcePath, nil)
	if err != nil {
		return c.fail(resource, resourcePath, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return c.fail(resource, resourcePath, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn().
			Str("resource", resourcePath).
			Int("status", resp.StatusCode).
			Bytes("body", body).
			Msg("upstream returned non-2xx")
		return c.fail(resource, resourcePath, fmt.Errorf("upstream returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(resource, resourcePath, fmt.Errorf("failed to decode response: %w", err))
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(resource, metrics.OutcomeSuccess).Inc()
	return nil
}

func (c *Client) fail(resource, resourcePath string, cause error) error {
	metrics.UpstreamRequestsTotal.WithLabelValues(resource, metrics.OutcomeFailure).Inc()
	log.Err(cause).Str("resource", resourcePath).Msg("upstream request failed")
	return errors.Mark(errors.ErrUpstreamUnavailable, cause)
}
