package httpapi

import (
	"encoding/json"
	"net/http"

	"studylist/internal/app/playlists"
	"studylist/internal/models"
)

// playlistResponse augments a playlist document with the caller's own
// like state, saving the UI a membership scan.
type playlistResponse struct {
	*models.Playlist
	LikedByMe bool `json:"likedByMe"`
}

type playlistListResponse struct {
	Playlists []playlistResponse `json:"playlists"`
}

func annotatePlaylist(playlist *models.Playlist, uid string) playlistResponse {
	return playlistResponse{
		Playlist:  playlist,
		LikedByMe: uid != "" && playlist.LikedByUser(uid),
	}
}

func annotatePlaylists(list []*models.Playlist, uid string) []playlistResponse {
	annotated := make([]playlistResponse, len(list))
	for i, playlist := range list {
		annotated[i] = annotatePlaylist(playlist, uid)
	}
	return annotated
}

// callerUID resolves the acting uid when a valid bearer token is
// present; anonymous reads get "".
func (s *Server) callerUID(r *http.Request) string {
	ident, err := s.identity(r)
	if err != nil {
		return ""
	}
	return ident.UID
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.playlists.Feed(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlistListResponse{Playlists: annotatePlaylists(feed, s.callerUID(r))})
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := s.playlists.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, annotatePlaylist(playlist, s.callerUID(r)))
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	ident, err := s.identity(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req playlists.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	created, err := s.playlists.Create(r.Context(), ident, req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, annotatePlaylist(created, ident.UID))
}

func (s *Server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	ident, err := s.identity(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var update models.PlaylistUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	updated, err := s.playlists.Update(r.Context(), ident.UID, r.PathValue("id"), update)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, annotatePlaylist(updated, ident.UID))
}

func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	ident, err := s.identity(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.playlists.Delete(r.Context(), ident.UID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	ident, err := s.identity(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.likes.Like(r.Context(), r.PathValue("id"), ident.UID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnlike(w http.ResponseWriter, r *http.Request) {
	ident, err := s.identity(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.likes.Unlike(r.Context(), r.PathValue("id"), ident.UID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
