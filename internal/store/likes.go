package store

import (
	"context"
	"fmt"
)

// LikePlaylist adds userID to the playlist's liked-by set and bumps the
// like counter, as one atomic document update. The membership guard in
// the WHERE clause makes the whole call a no-op when the user already
// likes the playlist, so a double-click race cannot increment the
// counter twice. Concurrent likes from different users both pass the
// guard and both deltas apply, because the arithmetic happens store-side
// rather than read-modify-write on the client.
func (s *Store) LikePlaylist(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE playlists
		SET liked_by = array_append(liked_by, $2),
		    likes = likes + 1,
		    updated_at = $3
		WHERE id = $1 AND NOT ($2 = ANY(liked_by))`, id, userID, nowMillis())
	if err != nil {
		return fmt.Errorf("like playlist: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return s.playlistMissing(ctx, id)
	}
	return nil
}

// UnlikePlaylist removes userID from the liked-by set and decrements the
// counter atomically. The membership guard keeps repeated unlikes from
// double-decrementing; likes can never go negative.
func (s *Store) UnlikePlaylist(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE playlists
		SET liked_by = array_remove(liked_by, $2),
		    likes = likes - 1,
		    updated_at = $3
		WHERE id = $1 AND $2 = ANY(liked_by)`, id, userID, nowMillis())
	if err != nil {
		return fmt.Errorf("unlike playlist: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return s.playlistMissing(ctx, id)
	}
	return nil
}

// playlistMissing distinguishes "guard rejected the write" (a no-op,
// nil) from "no such playlist" (ErrPlaylistNotFound) after a zero-row
// update.
func (s *Store) playlistMissing(ctx context.Context, id string) error {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM playlists WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check playlist: %w", err)
	}
	if !exists {
		return ErrPlaylistNotFound
	}
	return nil
}
