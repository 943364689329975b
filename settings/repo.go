package settings

import "context"

// Repo is a document store keyed by guild id.
type Repo interface {
	// Merge creates the guild's document if needed and overwrites only the keys in patch.
	Merge(ctx context.Context, guildID string, patch Document) error

	// Get returns the guild's document, empty when nothing was ever written.
	Get(ctx context.Context, guildID string) (Document, error)
}
