// Package settingstest holds the behaviour every settings.Repo must share.
package settingstest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/stretchr/testify/require"
)

// Doc builds a document from inline JSON blobs.
func Doc(kv ...string) settings.Document {
	d := settings.Document{}
	for i := 0; i+1 < len(kv); i += 2 {
		d[kv[i]] = json.RawMessage(kv[i+1])
	}
	return d
}

// Decode turns blobs into plain values so stores that re-encode JSON
// (jsonb drops whitespace and reorders keys) compare equal.
func Decode(t *testing.T, d settings.Document) map[string]any {
	t.Helper()
	out := make(map[string]any, len(d))
	for k, v := range d {
		var val any
		require.NoError(t, json.Unmarshal(v, &val), "key %q", k)
		out[k] = val
	}
	return out
}

// RequireDocEqual fails with a diff when the documents differ.
func RequireDocEqual(t *testing.T, want, got settings.Document) {
	t.Helper()
	if diff := cmp.Diff(Decode(t, want), Decode(t, got)); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

// RunRepoContract exercises merge semantics against a fresh repo per subtest.
func RunRepoContract(t *testing.T, newRepo func(t *testing.T) settings.Repo) {
	ctx := context.Background()

	t.Run("missing guild is empty", func(t *testing.T) {
		repo := newRepo(t)
		doc, err := repo.Get(ctx, "never-written")
		require.NoError(t, err)
		require.Empty(t, doc)
	})

	t.Run("first write creates document", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Merge(ctx, "G1", Doc("welcome", `{"enabled":true}`)))

		doc, err := repo.Get(ctx, "G1")
		require.NoError(t, err)
		RequireDocEqual(t, Doc("welcome", `{"enabled":true}`), doc)
	})

	t.Run("sibling systems survive", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Merge(ctx, "G1", Doc("welcome", `{"enabled":true}`)))
		require.NoError(t, repo.Merge(ctx, "G1", Doc("music", `{"enabled":false}`)))

		doc, err := repo.Get(ctx, "G1")
		require.NoError(t, err)
		RequireDocEqual(t, Doc(
			"welcome", `{"enabled":true}`,
			"music", `{"enabled":false}`,
		), doc)
	})

	t.Run("named system is replaced whole", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Merge(ctx, "G1", Doc("welcome", `{"enabled":true,"channel":"C1"}`)))
		require.NoError(t, repo.Merge(ctx, "G1", Doc("welcome", `{"enabled":false}`)))

		doc, err := repo.Get(ctx, "G1")
		require.NoError(t, err)
		RequireDocEqual(t, Doc("welcome", `{"enabled":false}`), doc)
	})

	t.Run("sequence equals merge of patches", func(t *testing.T) {
		repo := newRepo(t)
		prior := Doc("security", `{"antiSpam":true}`, "level", `{"multiplier":"2"}`)
		p1 := Doc("level", `{"multiplier":"3"}`, "ticket", `{"enabled":true}`)
		p2 := Doc("ticket", `{"enabled":false,"category":"X"}`, "vcgen", `{"channel":"V"}`)

		require.NoError(t, repo.Merge(ctx, "G1", prior))
		require.NoError(t, repo.Merge(ctx, "G1", p1))
		require.NoError(t, repo.Merge(ctx, "G1", p2))

		doc, err := repo.Get(ctx, "G1")
		require.NoError(t, err)
		RequireDocEqual(t, settings.Merge(settings.Merge(prior, p1), p2), doc)
	})

	t.Run("idempotent", func(t *testing.T) {
		repo := newRepo(t)
		p := Doc("music", `{"djRole":"R1","maxQueue":"50"}`)
		require.NoError(t, repo.Merge(ctx, "G1", p))
		first, err := repo.Get(ctx, "G1")
		require.NoError(t, err)

		require.NoError(t, repo.Merge(ctx, "G1", p))
		second, err := repo.Get(ctx, "G1")
		require.NoError(t, err)
		RequireDocEqual(t, first, second)
	})

	t.Run("guilds are isolated", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Merge(ctx, "G1", Doc("welcome", `{"enabled":true}`)))
		require.NoError(t, repo.Merge(ctx, "G2", Doc("music", `{"enabled":true}`)))

		doc, err := repo.Get(ctx, "G1")
		require.NoError(t, err)
		RequireDocEqual(t, Doc("welcome", `{"enabled":true}`), doc)
	})

	t.Run("non-object blobs are stored as-is", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Merge(ctx, "G1", Doc("prefix", `"!"`, "limits", `[1,2,3]`)))

		doc, err := repo.Get(ctx, "G1")
		require.NoError(t, err)
		RequireDocEqual(t, Doc("prefix", `"!"`, "limits", `[1,2,3]`), doc)
	})
}
