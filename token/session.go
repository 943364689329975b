package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/nexus-dashboard/internal/config"
	"github.com/jrsteele09/nexus-dashboard/upstream"
	"github.com/pkg/errors"
)

// Claim names embedded in a session credential
const (
	ClaimAccessToken  = "discordAccessToken"
	ClaimRefreshToken = "discordRefreshToken"
	ClaimUser         = "user"
	ClaimGuilds       = "guilds"
)

// Session is what a successful login bundles into a credential.
type Session struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	Profile      upstream.Profile
	Guilds       []upstream.GuildSummary
}

// Issuer signs session credentials. The backend never stores them.
type Issuer struct {
	signer   Signer
	issuer   string
	audience string
	ttl      time.Duration
	clock    clockwork.Clock
}

// NewIssuer creates an issuer; a nil clock uses the real clock.
func NewIssuer(signer Signer, cfg config.SessionConfig, clock clockwork.Clock) *Issuer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Issuer{
		signer:   signer,
		issuer:   cfg.GetSessionIssuer(),
		audience: cfg.GetSessionAudience(),
		ttl:      cfg.GetSessionTTL(),
		clock:    clock,
	}
}

// Issue creates a signed credential for s.
func (i *Issuer) Issue(s Session) (string, error) {
	if s.UserID == "" {
		return "", errors.New("session has no user id")
	}

	guilds := s.Guilds
	if guilds == nil {
		guilds = []upstream.GuildSummary{}
	}

	now := i.clock.Now()
	claims := jwt.MapClaims{
		"iss":             i.issuer,
		"aud":             i.audience,
		"sub":             s.UserID,
		"iat":             now.Unix(),
		"exp":             now.Add(i.ttl).Unix(),
		"jti":             uuid.New().String(),
		ClaimAccessToken:  s.AccessToken,
		ClaimRefreshToken: s.RefreshToken,
		ClaimUser:         s.Profile,
		ClaimGuilds:       guilds,
	}

	signed, err := i.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "failed to issue session credential")
	}
	return signed, nil
}
