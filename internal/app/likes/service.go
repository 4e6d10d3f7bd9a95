// Package likes coordinates the like/unlike engine. Both operations are
// single atomic document updates in the store; membership guards there
// keep the counter equal to the size of the liked-by set even under
// double-click races. The engine performs no retry — callers own the
// optimistic update and its revert on failure.
package likes

import "context"

// Store defines the persistence operations required by the engine.
type Store interface {
	LikePlaylist(ctx context.Context, id, userID string) error
	UnlikePlaylist(ctx context.Context, id, userID string) error
}

// Service exposes like/unlike workflows.
type Service interface {
	Like(ctx context.Context, playlistID, userID string) error
	Unlike(ctx context.Context, playlistID, userID string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Like(ctx context.Context, playlistID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.LikePlaylist(ctx, playlistID, userID)
}

func (s *service) Unlike(ctx context.Context, playlistID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UnlikePlaylist(ctx, playlistID, userID)
}
