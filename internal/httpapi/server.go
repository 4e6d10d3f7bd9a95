package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"studylist/internal/app/playlists"
	"studylist/internal/app/users"
	"studylist/internal/auth"
	"studylist/internal/models"
	"studylist/internal/store"
)

// PlaylistService coordinates playlist-related operations.
type PlaylistService interface {
	Feed(ctx context.Context) ([]*models.Playlist, error)
	Get(ctx context.Context, id string) (*models.Playlist, error)
	ByAuthor(ctx context.Context, authorID string, includePrivate bool) ([]*models.Playlist, error)
	Create(ctx context.Context, ident auth.Identity, req playlists.CreateRequest) (*models.Playlist, error)
	Update(ctx context.Context, actorUID, id string, update models.PlaylistUpdate) (*models.Playlist, error)
	Delete(ctx context.Context, actorUID, id string) error
}

// UserService coordinates profile workflows and the author fan-out.
type UserService interface {
	Profile(ctx context.Context, uid string) (*models.UserProfile, error)
	ProfileOrDefault(ctx context.Context, ident auth.Identity) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, ident auth.Identity, update models.ProfileUpdate) (*models.UserProfile, *users.FanoutReport, error)
	Directory(ctx context.Context) ([]*models.UserProfile, error)
}

// LikeService coordinates the like/unlike engine.
type LikeService interface {
	Like(ctx context.Context, playlistID, userID string) error
	Unlike(ctx context.Context, playlistID, userID string) error
}

// TokenVerifier extracts a caller identity from a bearer token.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	playlists PlaylistService
	users     UserService
	likes     LikeService
	verifier  TokenVerifier
}

// New configures a Server with the given services.
func New(playlistSvc PlaylistService, userSvc UserService, likeSvc LikeService, verifier TokenVerifier) *Server {
	return &Server{
		playlists: playlistSvc,
		users:     userSvc,
		likes:     likeSvc,
		verifier:  verifier,
	}
}

// Routes exposes the HTTP handlers for playlist and profile management.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Playlist routes
	mux.HandleFunc("GET /api/v1/playlists", s.handleFeed)
	mux.HandleFunc("POST /api/v1/playlists", s.handleCreatePlaylist)
	mux.HandleFunc("GET /api/v1/playlists/{id}", s.handleGetPlaylist)
	mux.HandleFunc("PUT /api/v1/playlists/{id}", s.handleUpdatePlaylist)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}", s.handleDeletePlaylist)

	// Like routes
	mux.HandleFunc("POST /api/v1/playlists/{id}/like", s.handleLike)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}/like", s.handleUnlike)

	// User routes
	mux.HandleFunc("GET /api/v1/users", s.handleListUsers)
	mux.HandleFunc("GET /api/v1/users/{uid}", s.handleGetUser)
	mux.HandleFunc("GET /api/v1/users/{uid}/playlists", s.handleUserPlaylists)
	mux.HandleFunc("GET /api/v1/me/profile", s.handleMyProfile)
	mux.HandleFunc("PUT /api/v1/me/profile", s.handleSaveProfile)

	// Media resolution
	mux.HandleFunc("GET /api/v1/media/resolve", s.handleResolveMedia)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

// identity resolves the acting identity from the Authorization header.
func (s *Server) identity(r *http.Request) (auth.Identity, error) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return auth.Identity{}, auth.ErrInvalidToken
	}
	return s.verifier.Verify(token)
}

// respondError maps domain sentinels onto HTTP statuses. Absence is a
// normal outcome (404), never an internal error.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrPlaylistNotFound), errors.Is(err, store.ErrProfileNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, playlists.ErrNotOwner), errors.Is(err, auth.ErrRestricted):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrInvalidPlaylist), errors.Is(err, store.ErrInvalidProfile):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
