package memory

import (
	"context"
	"sync"

	"github.com/jrsteele09/nexus-dashboard/settings"
)

var _ settings.Repo = (*Repo)(nil)

// Repo is a thread-safe in-memory settings store.
type Repo struct {
	mu   sync.RWMutex
	docs map[string]settings.Document
}

func NewRepo() *Repo {
	return &Repo{
		docs: make(map[string]settings.Document),
	}
}

func (r *Repo) Merge(_ context.Context, guildID string, patch settings.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[guildID] = settings.Merge(r.docs[guildID], patch)
	return nil
}

func (r *Repo) Get(_ context.Context, guildID string) (settings.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy to prevent external modifications
	return r.docs[guildID].Clone(), nil
}
