package playlists

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"studylist/internal/auth"
	"studylist/internal/media"
	"studylist/internal/models"
)

// ErrNotOwner indicates the acting identity does not own the playlist it
// is trying to mutate. The ownership policy lives here, in front of
// storage, rather than being trusted to the UI boundary.
var ErrNotOwner = errors.New("not the playlist owner")

// Store captures the persistence needs for playlist workflows.
type Store interface {
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)
	ListPlaylists(ctx context.Context) ([]*models.Playlist, error)
	ListPlaylistsByAuthor(ctx context.Context, authorID string, includePrivate bool) ([]*models.Playlist, error)
	CreatePlaylist(ctx context.Context, np models.NewPlaylist) (*models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id string, update models.PlaylistUpdate) error
	DeletePlaylist(ctx context.Context, id string) error
	GetUserProfile(ctx context.Context, uid string) (*models.UserProfile, error)
}

// CreateRequest carries the author-supplied fields of a new playlist.
// Author identity and denormalized author metadata are filled in by the
// service from the acting identity's profile.
type CreateRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Items       []models.PlaylistItem `json:"items"`
	IsPublic    *bool                 `json:"isPublic"`
}

// Service coordinates playlist workflows: hydration-aware reads through
// the store, ownership checks on every mutation, and item normalization.
type Service interface {
	Feed(ctx context.Context) ([]*models.Playlist, error)
	Get(ctx context.Context, id string) (*models.Playlist, error)
	ByAuthor(ctx context.Context, authorID string, includePrivate bool) ([]*models.Playlist, error)
	Create(ctx context.Context, ident auth.Identity, req CreateRequest) (*models.Playlist, error)
	Update(ctx context.Context, actorUID, id string, update models.PlaylistUpdate) (*models.Playlist, error)
	Delete(ctx context.Context, actorUID, id string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Feed(ctx context.Context) ([]*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetPlaylist(ctx, id)
}

func (s *service) ByAuthor(ctx context.Context, authorID string, includePrivate bool) ([]*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylistsByAuthor(ctx, authorID, includePrivate)
}

func (s *service) Create(ctx context.Context, ident auth.Identity, req CreateRequest) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	authorName, authorLevel := s.authorDetails(ctx, ident)

	np := models.NewPlaylist{
		Name:        req.Name,
		Description: req.Description,
		AuthorID:    ident.UID,
		AuthorName:  authorName,
		AuthorLevel: authorLevel,
		Items:       normalizeItems(req.Items),
		IsPublic:    req.IsPublic,
	}
	return s.store.CreatePlaylist(ctx, np)
}

func (s *service) Update(ctx context.Context, actorUID, id string, update models.PlaylistUpdate) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.requireOwner(ctx, actorUID, id); err != nil {
		return nil, err
	}

	if update.Items != nil {
		normalized := normalizeItems(*update.Items)
		update.Items = &normalized
	}

	if err := s.store.UpdatePlaylist(ctx, id, update); err != nil {
		return nil, err
	}
	return s.store.GetPlaylist(ctx, id)
}

func (s *service) Delete(ctx context.Context, actorUID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.requireOwner(ctx, actorUID, id); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, id)
}

// requireOwner loads the playlist and rejects the mutation when the
// actor is not its author.
func (s *service) requireOwner(ctx context.Context, actorUID, id string) error {
	playlist, err := s.store.GetPlaylist(ctx, id)
	if err != nil {
		return err
	}
	if playlist.AuthorID != actorUID {
		return ErrNotOwner
	}
	return nil
}

// authorDetails resolves the denormalized author fields captured on the
// playlist at write time. A user who has never saved a profile falls
// back to the provider identity and the default level.
func (s *service) authorDetails(ctx context.Context, ident auth.Identity) (string, int) {
	profile, err := s.store.GetUserProfile(ctx, ident.UID)
	if err != nil {
		// Absent profile or store failure: fall back to identity fields
		// rather than failing the create.
		return ident.DisplayName, models.MinLevel
	}

	name := profile.DisplayName
	if name == "" {
		name = ident.DisplayName
	}
	level := profile.Level
	if level == 0 {
		level = models.MinLevel
	}
	return name, level
}

// normalizeItems assigns stable ids to new items and classifies items
// that arrive without a type from their URL. Existing ids are preserved
// so the ordering key survives edits.
func normalizeItems(items []models.PlaylistItem) []models.PlaylistItem {
	normalized := make([]models.PlaylistItem, len(items))
	for i, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.Type == "" {
			item.Type = media.InferItemType(item.URL)
		}
		normalized[i] = item
	}
	return normalized
}
