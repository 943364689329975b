package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/nexus-dashboard/internal/errors"
	"github.com/jrsteele09/nexus-dashboard/token"
	"github.com/rs/zerolog"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the verified session claims
	ContextKeyClaims ContextKey = "claims"
)

// ClaimsFromContext returns the claims stored by RequireAuth, or nil.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims
}

// bearerCredential extracts the credential from an "Authorization: Bearer <x>" header.
func bearerCredential(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth is middleware that validates the bearer session credential
// and injects its claims into the request context.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			credential := bearerCredential(r)
			if credential == "" {
				writeError(w, r, errors.ErrUnauthenticated)
				return
			}

			claims, err := s.services.Verifier.Verify(r.Context(), credential)
			if err != nil {
				writeError(w, r, errors.Mark(errors.ErrUnauthenticated, err))
				return
			}

			logger := zerolog.Ctx(r.Context()).With().Str("user_id", claims.Subject).Logger()
			ctx := logger.WithContext(r.Context())
			ctx = context.WithValue(ctx, ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}
