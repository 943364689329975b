package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/jrsteele09/nexus-dashboard/internal/errors"
	"github.com/jrsteele09/nexus-dashboard/settings"
	"github.com/jrsteele09/nexus-dashboard/upstream"
)

// LoginStartHandler redirects the browser to the upstream consent screen.
func (s *Server) LoginStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.services.Login.StartURL(), http.StatusFound)
	}
}

// LoginCallbackHandler completes the login with the code the upstream redirected back with.
func (s *Server) LoginCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.services.Login.Complete(r.Context(), r.URL.Query().Get(QueryParamCode))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// GuildsHandler lists the caller's guilds. ?manageable=true keeps only the
// guilds the caller can manage.
func (s *Server) GuildsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guilds, err := s.services.Guilds.ListGuilds(r.Context(), ClaimsFromContext(r.Context()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if manageable, _ := strconv.ParseBool(r.URL.Query().Get(QueryParamManageable)); manageable {
			guilds = upstream.FilterManageable(guilds)
		}
		if guilds == nil {
			guilds = []upstream.GuildSummary{}
		}
		writeJSON(w, http.StatusOK, guilds)
	}
}

func (s *Server) ChannelsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := r.URL.Query().Get(QueryParamChannelType)
		if _, ok := upstream.FilterChannels(nil, kind); !ok {
			writeError(w, r, errors.Wrapf(errors.ErrInvalidRequest, "unknown channel type %q", kind))
			return
		}
		channels, err := s.services.Guilds.ListChannels(r.Context(), ClaimsFromContext(r.Context()), r.PathValue(PathParamGuildID))
		if err != nil {
			writeError(w, r, err)
			return
		}
		channels, _ = upstream.FilterChannels(channels, kind)
		if channels == nil {
			channels = []upstream.ChannelSummary{}
		}
		writeJSON(w, http.StatusOK, channels)
	}
}

type applySettingsRequest struct {
	GuildID  string            `json:"guildId"`
	Settings settings.Document `json:"settings"`
}

type applySettingsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ApplySettingsHandler merges the posted feature systems into the guild's document.
func (s *Server) ApplySettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applySettingsRequest
		body := http.MaxBytesReader(w, r.Body, maxSettingsBodyLength)
		if err := json.NewDecoder(body).Decode(&req); err != nil && err != io.EOF {
			writeError(w, r, errors.Mark(errors.ErrInvalidRequest, err))
			return
		}

		if err := s.services.Settings.Apply(r.Context(), req.GuildID, req.Settings); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, applySettingsResponse{
			Success: true,
			Message: "Settings updated successfully",
		})
	}
}

func (s *Server) GetSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.services.Settings.Get(r.Context(), r.PathValue(PathParamGuildID))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// PreflightHandler answers CORS preflights; the headers are set by CorsMiddleware.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

// NotFoundHandler answers any request no other route matched.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errors.ErrNotFound)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
