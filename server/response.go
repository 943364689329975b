package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/nexus-dashboard/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

// publicKinds are the failure kinds whose message may be shown to the client.
// Causes wrapped beneath them are only logged.
var publicKinds = []error{
	errors.ErrUnauthenticated,
	errors.ErrMissingUpstreamToken,
	errors.ErrNotOwner,
	errors.ErrMissingCode,
	errors.ErrInvalidRequest,
	errors.ErrNotFound,
	errors.ErrAuthenticationFailed,
	errors.ErrUpstreamUnavailable,
	errors.ErrStoreUnavailable,
}

func publicMessage(err error) string {
	for _, kind := range publicKinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "internal server error"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

// writeError maps err to its status and a JSON {"error"} body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
	} else {
		logger.Warn().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, errorResponse{Error: publicMessage(err)})
}
