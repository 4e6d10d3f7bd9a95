package users

import (
	"context"
	"errors"
	"sync"

	"studylist/internal/auth"
	"studylist/internal/models"
	"studylist/internal/store"
)

// Store describes the persistence operations required by the user
// service, including the playlist writes used by the author fan-out.
type Store interface {
	GetUserProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	UpsertUserProfile(ctx context.Context, uid string, update models.ProfileUpdate) error
	ListUsers(ctx context.Context) ([]*models.UserProfile, error)
	PlaylistIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	UpdateAuthorDetails(ctx context.Context, playlistID string, details models.AuthorDetails) error
}

// FanoutFailure records one playlist the fan-out could not update.
type FanoutFailure struct {
	PlaylistID string `json:"playlistId"`
	Error      string `json:"error"`
}

// FanoutReport is the per-document outcome of an author fan-out. The
// fan-out is best effort: partial failure is possible, is not rolled
// back, and is reported here so callers can detect and retry.
type FanoutReport struct {
	Total   int             `json:"total"`
	Updated int             `json:"updated"`
	Failed  []FanoutFailure `json:"failed,omitempty"`
}

// Service exposes profile workflows and the author fan-out.
type Service interface {
	Profile(ctx context.Context, uid string) (*models.UserProfile, error)
	ProfileOrDefault(ctx context.Context, ident auth.Identity) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, ident auth.Identity, update models.ProfileUpdate) (*models.UserProfile, *FanoutReport, error)
	Directory(ctx context.Context) ([]*models.UserProfile, error)
	SyncAuthorPlaylists(ctx context.Context, authorID string, details models.AuthorDetails) (*FanoutReport, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Profile(ctx context.Context, uid string) (*models.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetUserProfile(ctx, uid)
}

// ProfileOrDefault returns the stored profile, or synthesizes a default
// from the provider identity when none exists yet. The default is not
// persisted until an explicit save.
func (s *service) ProfileOrDefault(ctx context.Context, ident auth.Identity) (*models.UserProfile, error) {
	profile, err := s.store.GetUserProfile(ctx, ident.UID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrProfileNotFound) {
		return nil, err
	}
	return &models.UserProfile{
		UID:         ident.UID,
		Email:       ident.Email,
		DisplayName: ident.DisplayName,
		PhotoURL:    ident.PhotoURL,
		Level:       models.MinLevel,
	}, nil
}

// SaveProfile merge-writes the update, re-syncing the provider identity
// fields on every save, then propagates any display-name or level change
// to the user's playlists. The returned report covers that fan-out.
func (s *service) SaveProfile(ctx context.Context, ident auth.Identity, update models.ProfileUpdate) (*models.UserProfile, *FanoutReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// Identity fields always come from the provider, never the caller.
	update.Email = &ident.Email
	update.DisplayName = &ident.DisplayName
	update.PhotoURL = &ident.PhotoURL

	if err := s.store.UpsertUserProfile(ctx, ident.UID, update); err != nil {
		return nil, nil, err
	}

	saved, err := s.store.GetUserProfile(ctx, ident.UID)
	if err != nil {
		return nil, nil, err
	}

	details := models.AuthorDetails{AuthorName: &saved.DisplayName}
	if update.Level != nil {
		details.AuthorLevel = update.Level
	}
	report, err := s.SyncAuthorPlaylists(ctx, ident.UID, details)
	if err != nil {
		return saved, nil, err
	}
	return saved, report, nil
}

func (s *service) Directory(ctx context.Context) ([]*models.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx)
}

// SyncAuthorPlaylists propagates denormalized author fields to every
// playlist owned by authorID. Per-document updates run in parallel with
// no ordering guarantee and no cross-document atomicity; each outcome
// lands in the report independently.
func (s *service) SyncAuthorPlaylists(ctx context.Context, authorID string, details models.AuthorDetails) (*FanoutReport, error) {
	if details.Empty() {
		return &FanoutReport{}, nil
	}

	ids, err := s.store.PlaylistIDsByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	report := &FanoutReport{Total: len(ids)}
	if len(ids) == 0 {
		return report, nil
	}

	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = s.store.UpdateAuthorDetails(ctx, id, details)
		}(i, id)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			report.Failed = append(report.Failed, FanoutFailure{PlaylistID: ids[i], Error: err.Error()})
			continue
		}
		report.Updated++
	}
	return report, nil
}
