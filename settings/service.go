package settings

import (
	"context"
	"strings"

	"github.com/jrsteele09/nexus-dashboard/internal/errors"
	"github.com/jrsteele09/nexus-dashboard/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Service applies partial settings documents to the store.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Apply merges patch into the guild's document. An empty guild id or patch is
// rejected before the store is touched.
func (s *Service) Apply(ctx context.Context, guildID string, patch Document) error {
	if strings.TrimSpace(guildID) == "" || len(patch) == 0 {
		metrics.SettingsWritesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return errors.ErrInvalidRequest
	}

	systems := make([]string, 0, len(patch))
	for k := range patch {
		systems = append(systems, k)
	}

	if err := s.repo.Merge(ctx, guildID, patch); err != nil {
		metrics.SettingsWritesTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Err(err).Str("guild_id", guildID).Strs("systems", systems).Msg("settings merge failed")
		return errors.Mark(errors.ErrStoreUnavailable, err)
	}

	metrics.SettingsWritesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Info().Str("guild_id", guildID).Strs("systems", systems).Msg("settings updated")
	return nil
}

// Get returns the stored document for guildID.
func (s *Service) Get(ctx context.Context, guildID string) (Document, error) {
	if strings.TrimSpace(guildID) == "" {
		return nil, errors.ErrInvalidRequest
	}
	doc, err := s.repo.Get(ctx, guildID)
	if err != nil {
		log.Err(err).Str("guild_id", guildID).Msg("settings read failed")
		return nil, errors.Mark(errors.ErrStoreUnavailable, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}
