package token

import (
	"context"
	"crypto"
	"encoding/json"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/nexus-dashboard/internal/config"
	"github.com/jrsteele09/nexus-dashboard/internal/errors"
)

// Claims are the verified contents of a session credential.
type Claims struct {
	Subject      string          `json:"sub"`
	AccessToken  string          `json:"discordAccessToken"`
	RefreshToken string          `json:"discordRefreshToken"`
	User         json.RawMessage `json:"user"`
	Guilds       json.RawMessage `json:"guilds"`
}

// UpstreamAccessToken returns the embedded upstream token, or ErrMissingUpstreamToken.
func (c *Claims) UpstreamAccessToken() (string, error) {
	if c == nil || c.AccessToken == "" {
		return "", errors.ErrMissingUpstreamToken
	}
	return c.AccessToken, nil
}

// Verifier checks signature, issuer, audience and expiry of session credentials.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewVerifier verifies against a single static public key; a nil clock uses the real clock.
func NewVerifier(publicKey crypto.PublicKey, cfg config.SessionConfig, clock clockwork.Clock) *Verifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	keySet := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{publicKey}}
	return &Verifier{
		verifier: oidc.NewVerifier(cfg.GetSessionIssuer(), keySet, &oidc.Config{
			ClientID:             cfg.GetSessionAudience(),
			SupportedSigningAlgs: []string{oidc.ES256, oidc.RS256},
			Now:                  clock.Now,
		}),
	}
}

// Verify returns the claims of a valid credential. Anything else is ErrUnauthenticated.
func (v *Verifier) Verify(ctx context.Context, rawCredential string) (*Claims, error) {
	if strings.TrimSpace(rawCredential) == "" {
		return nil, errors.ErrUnauthenticated
	}

	idToken, err := v.verifier.Verify(ctx, rawCredential)
	if err != nil {
		return nil, errors.Mark(errors.ErrUnauthenticated, err)
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Mark(errors.ErrUnauthenticated, err)
	}
	claims.Subject = idToken.Subject
	return &claims, nil
}
