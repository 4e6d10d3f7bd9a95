package httpapi

import (
	"encoding/json"
	"net/http"

	"studylist/internal/app/users"
	"studylist/internal/models"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.users.Directory(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Users []*models.UserProfile `json:"users"`
	}{Users: profiles})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	profile, err := s.users.Profile(r.Context(), r.PathValue("uid"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleUserPlaylists serves another user's public playlists. The owner
// may ask for private ones too with ?includePrivate=1.
func (s *Server) handleUserPlaylists(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")

	includePrivate := false
	if r.URL.Query().Get("includePrivate") == "1" {
		ident, err := s.identity(r)
		if err != nil {
			respondError(w, err)
			return
		}
		includePrivate = ident.UID == uid
	}

	list, err := s.playlists.ByAuthor(r.Context(), uid, includePrivate)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlistListResponse{Playlists: annotatePlaylists(list, s.callerUID(r))})
}

func (s *Server) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	ident, err := s.identity(r)
	if err != nil {
		respondError(w, err)
		return
	}

	profile, err := s.users.ProfileOrDefault(r.Context(), ident)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type saveProfileResponse struct {
	Profile *models.UserProfile `json:"profile"`
	Fanout  *users.FanoutReport `json:"fanout,omitempty"`
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	ident, err := s.identity(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	saved, report, err := s.users.SaveProfile(r.Context(), ident, update)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saveProfileResponse{Profile: saved, Fanout: report})
}
