package settings_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/jrsteele09/nexus-dashboard/internal/errors"
	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/jrsteele09/nexus-dashboard/settings/memory"
	"github.com/jrsteele09/nexus-dashboard/settings/settingstest"
	"github.com/stretchr/testify/require"
)

// countingRepo records writes and can be made to fail.
type countingRepo struct {
	settings.Repo
	merges int
	err    error
}

func (r *countingRepo) Merge(ctx context.Context, guildID string, patch settings.Document) error {
	r.merges++
	if r.err != nil {
		return r.err
	}
	return r.Repo.Merge(ctx, guildID, patch)
}

func (r *countingRepo) Get(ctx context.Context, guildID string) (settings.Document, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.Repo.Get(ctx, guildID)
}

func TestService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("welcome then music keeps both", func(t *testing.T) {
		repo := &countingRepo{Repo: memory.NewRepo()}
		svc := settings.NewService(repo)

		require.NoError(t, svc.Apply(ctx, "G1", settingstest.Doc("welcome", `{"enabled":true}`)))
		require.NoError(t, svc.Apply(ctx, "G1", settingstest.Doc("music", `{"enabled":false}`)))

		doc, err := svc.Get(ctx, "G1")
		require.NoError(t, err)
		settingstest.RequireDocEqual(t, settingstest.Doc(
			"welcome", `{"enabled":true}`,
			"music", `{"enabled":false}`,
		), doc)
	})

	invalid := []struct {
		name    string
		guildID string
		patch   settings.Document
	}{
		{"empty guild", "", settingstest.Doc("welcome", `{}`)},
		{"blank guild", "   ", settingstest.Doc("welcome", `{}`)},
		{"nil patch", "G1", nil},
		{"empty patch", "G1", settings.Document{}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := &countingRepo{Repo: memory.NewRepo()}
			svc := settings.NewService(repo)

			err := svc.Apply(ctx, tt.guildID, tt.patch)
			require.ErrorIs(t, err, errors.ErrInvalidRequest)
			require.Zero(t, repo.merges, "no store write expected")
		})
	}

	t.Run("store failure", func(t *testing.T) {
		cause := stderrors.New("connection reset")
		repo := &countingRepo{Repo: memory.NewRepo(), err: cause}
		svc := settings.NewService(repo)

		err := svc.Apply(ctx, "G1", settingstest.Doc("welcome", `{}`))
		require.ErrorIs(t, err, errors.ErrStoreUnavailable)
		require.ErrorIs(t, err, cause)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown guild is empty object", func(t *testing.T) {
		svc := settings.NewService(memory.NewRepo())
		doc, err := svc.Get(ctx, "G9")
		require.NoError(t, err)
		require.NotNil(t, doc)
		require.Empty(t, doc)
	})

	t.Run("missing guild id", func(t *testing.T) {
		svc := settings.NewService(memory.NewRepo())
		_, err := svc.Get(ctx, "")
		require.ErrorIs(t, err, errors.ErrInvalidRequest)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := settings.NewService(&countingRepo{Repo: memory.NewRepo(), err: stderrors.New("down")})
		_, err := svc.Get(ctx, "G1")
		require.ErrorIs(t, err, errors.ErrStoreUnavailable)
	})
}
