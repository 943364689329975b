package settings_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/jrsteele09/nexus-dashboard/settings/settingstest"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		prior settings.Document
		patch settings.Document
		want  settings.Document
	}{
		{
			name:  "into nothing",
			prior: nil,
			patch: settingstest.Doc("welcome", `{"enabled":true}`),
			want:  settingstest.Doc("welcome", `{"enabled":true}`),
		},
		{
			name:  "adds sibling",
			prior: settingstest.Doc("welcome", `{"enabled":true}`),
			patch: settingstest.Doc("music", `{"enabled":false}`),
			want:  settingstest.Doc("welcome", `{"enabled":true}`, "music", `{"enabled":false}`),
		},
		{
			name:  "does not recurse into blobs",
			prior: settingstest.Doc("welcome", `{"enabled":true,"channel":"C1"}`),
			patch: settingstest.Doc("welcome", `{"message":"hi"}`),
			want:  settingstest.Doc("welcome", `{"message":"hi"}`),
		},
		{
			name:  "empty patch",
			prior: settingstest.Doc("welcome", `{}`),
			patch: nil,
			want:  settingstest.Doc("welcome", `{}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := settings.Merge(tt.prior, tt.patch)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	prior := settingstest.Doc("welcome", `{"enabled":true}`)
	patch := settingstest.Doc("music", `{"enabled":false}`)

	got := settings.Merge(prior, patch)
	got["security"] = json.RawMessage(`{}`)

	if diff := cmp.Diff(settingstest.Doc("welcome", `{"enabled":true}`), prior); diff != "" {
		t.Errorf("prior mutated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(settingstest.Doc("music", `{"enabled":false}`), patch); diff != "" {
		t.Errorf("patch mutated (-want +got):\n%s", diff)
	}
}
