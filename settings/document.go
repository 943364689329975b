// Package settings persists per-guild feature settings with merge semantics:
// a write replaces only the feature systems it names and leaves siblings intact.
package settings

import "encoding/json"

// Feature systems the dashboard UI writes. Keys are not validated against this list.
const (
	SystemWelcome          = "welcome"
	SystemLevel            = "level"
	SystemMusic            = "music"
	SystemVCGen            = "vcgen"
	SystemTicket           = "ticket"
	SystemSelfRole         = "selfrole"
	SystemYouTubeNotify    = "yt_notify"
	SystemServerManagement = "server_management"
	SystemSecurity         = "security"
)

// Document maps a feature-system name to an opaque settings blob.
type Document map[string]json.RawMessage

// Merge returns prior with every key of patch overwritten. Values are replaced
// whole; nested objects are never merged. Neither argument is modified.
func Merge(prior, patch Document) Document {
	out := make(Document, len(prior)+len(patch))
	for k, v := range prior {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	return Merge(nil, d)
}
