package auth

import (
	"context"
	"strings"

	"github.com/jrsteele09/nexus-dashboard/internal/errors"
	"github.com/jrsteele09/nexus-dashboard/internal/metrics"
	"github.com/jrsteele09/nexus-dashboard/token"
	"github.com/jrsteele09/nexus-dashboard/upstream"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// CodeExchanger is the upstream side of the authorization_code grant.
type CodeExchanger interface {
	AuthCodeURL() string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// IdentityFetcher reads the logged-in user's profile and guilds.
type IdentityFetcher interface {
	CurrentUser(ctx context.Context, accessToken string) (*upstream.Profile, error)
	CurrentUserGuilds(ctx context.Context, accessToken string) ([]upstream.GuildSummary, error)
}

// CredentialIssuer signs a session credential.
type CredentialIssuer interface {
	Issue(s token.Session) (string, error)
}

// LoginResult is handed back to the browser after a successful login.
type LoginResult struct {
	SessionCredential string                  `json:"sessionCredential"`
	Profile           upstream.Profile        `json:"profile"`
	Servers           []upstream.GuildSummary `json:"servers"`
}

// LoginService runs the login workflow. It keeps no state between the
// start and completion of a login.
type LoginService struct {
	exchanger  CodeExchanger
	identity   IdentityFetcher
	issuer     CredentialIssuer
	authorizer Authorizer
}

func NewLoginService(exchanger CodeExchanger, identity IdentityFetcher, issuer CredentialIssuer, authorizer Authorizer) *LoginService {
	return &LoginService{
		exchanger:  exchanger,
		identity:   identity,
		issuer:     issuer,
		authorizer: authorizer,
	}
}

// StartURL is where the browser goes to consent.
func (s *LoginService) StartURL() string {
	return s.exchanger.AuthCodeURL()
}

// Complete exchanges code for upstream tokens, checks the caller is the owner
// and issues a session credential. Guilds are only fetched for the owner.
func (s *LoginService) Complete(ctx context.Context, code string) (*LoginResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		metrics.LoginsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, errors.ErrMissingCode
	}

	tok, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		return nil, s.failed("code exchange failed", err)
	}

	profile, err := s.identity.CurrentUser(ctx, tok.AccessToken)
	if err != nil {
		return nil, s.failed("profile fetch failed", err)
	}

	if !s.authorizer.IsAuthorized(ctx, *profile) {
		metrics.LoginsTotal.WithLabelValues(metrics.OutcomeDenied).Inc()
		log.Warn().Str("user_id", profile.ID).Msg("login rejected: not the owner")
		return nil, errors.ErrNotOwner
	}

	guilds, err := s.identity.CurrentUserGuilds(ctx, tok.AccessToken)
	if err != nil {
		return nil, s.failed("guild fetch failed", err)
	}

	credential, err := s.issuer.Issue(token.Session{
		UserID:       profile.ID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Profile:      *profile,
		Guilds:       guilds,
	})
	if err != nil {
		return nil, s.failed("credential issue failed", err)
	}

	metrics.LoginsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info().Str("user_id", profile.ID).Int("guilds", len(guilds)).Msg("login completed")
	return &LoginResult{
		SessionCredential: credential,
		Profile:           *profile,
		Servers:           guilds,
	}, nil
}

func (s *LoginService) failed(msg string, cause error) error {
	metrics.LoginsTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
	log.Err(cause).Msg(msg)
	return errors.Mark(errors.ErrAuthenticationFailed, cause)
}
