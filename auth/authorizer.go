package auth

import (
	"context"

	"github.com/jrsteele09/nexus-dashboard/upstream"
)

// Authorizer decides whether an upstream identity may use the dashboard.
type Authorizer interface {
	IsAuthorized(ctx context.Context, profile upstream.Profile) bool
}

// OwnerPolicy admits exactly one configured identity. An empty OwnerID admits nobody.
type OwnerPolicy struct {
	OwnerID string
}

func (p OwnerPolicy) IsAuthorized(_ context.Context, profile upstream.Profile) bool {
	return p.OwnerID != "" && profile.ID == p.OwnerID
}
