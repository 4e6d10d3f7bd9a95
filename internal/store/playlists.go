package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"studylist/internal/models"
)

// ErrInvalidPlaylist indicates validation failure for playlist data.
var ErrInvalidPlaylist = errors.New("invalid playlist")

const playlistColumns = `id, name, description, author_id, author_name, author_level, items, is_public, likes, liked_by, created_at, updated_at`

// GetPlaylist fetches one playlist document by id.
func (s *Store) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists
		WHERE id = $1`, id)

	playlist, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return playlist, nil
}

// ListPlaylists returns every public playlist, most recent first. The
// visibility filter runs after hydration so documents written before the
// is_public column existed are included.
func (s *Store) ListPlaylists(ctx context.Context) ([]*models.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	all, err := scanPlaylistRows(rows)
	if err != nil {
		return nil, err
	}

	public := make([]*models.Playlist, 0, len(all))
	for _, playlist := range all {
		if playlist.IsPublic {
			public = append(public, playlist)
		}
	}
	return public, nil
}

// ListPlaylistsByAuthor returns the playlists owned by authorID. Private
// playlists are filtered out unless includePrivate is set (the owner's
// own dashboard).
func (s *Store) ListPlaylistsByAuthor(ctx context.Context, authorID string, includePrivate bool) ([]*models.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list playlists by author: %w", err)
	}
	defer rows.Close()

	all, err := scanPlaylistRows(rows)
	if err != nil {
		return nil, err
	}

	if includePrivate {
		return all, nil
	}

	public := make([]*models.Playlist, 0, len(all))
	for _, playlist := range all {
		if playlist.IsPublic {
			public = append(public, playlist)
		}
	}
	return public, nil
}

// CreatePlaylist persists a new playlist document. The store assigns the
// id, zeroes the like counters and stamps both timestamps with the same
// write-time instant. Visibility defaults to public when the caller left
// it unset.
func (s *Store) CreatePlaylist(ctx context.Context, np models.NewPlaylist) (*models.Playlist, error) {
	if err := validateNewPlaylist(np); err != nil {
		return nil, err
	}

	isPublic := true
	if np.IsPublic != nil {
		isPublic = *np.IsPublic
	}

	items := np.Items
	if items == nil {
		items = []models.PlaylistItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("prepare items payload: %w", err)
	}

	now := nowMillis()
	playlist := &models.Playlist{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(np.Name),
		Description: np.Description,
		AuthorID:    np.AuthorID,
		AuthorName:  np.AuthorName,
		AuthorLevel: np.AuthorLevel,
		Items:       items,
		IsPublic:    isPublic,
		Likes:       0,
		LikedBy:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO playlists (id, name, description, author_id, author_name, author_level, items, is_public, likes, liked_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, 0, '{}', $9, $9)`,
		playlist.ID, playlist.Name, playlist.Description, playlist.AuthorID, playlist.AuthorName,
		playlist.AuthorLevel, string(itemsJSON), playlist.IsPublic, now); err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}

	return playlist, nil
}

// UpdatePlaylist merges the provided fields into an existing document.
// Absent fields are left untouched; in particular is_public is only
// written when explicitly present. updated_at refreshes on every call.
func (s *Store) UpdatePlaylist(ctx context.Context, id string, update models.PlaylistUpdate) error {
	var (
		clauses []string
		args    []any
	)

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return fmt.Errorf("%w: name is required", ErrInvalidPlaylist)
		}
		args = append(args, name)
		clauses = append(clauses, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		clauses = append(clauses, fmt.Sprintf("description = $%d", len(args)))
	}
	if update.Items != nil {
		if err := validateItems(*update.Items); err != nil {
			return err
		}
		itemsJSON, err := json.Marshal(*update.Items)
		if err != nil {
			return fmt.Errorf("prepare items payload: %w", err)
		}
		args = append(args, string(itemsJSON))
		clauses = append(clauses, fmt.Sprintf("items = $%d::jsonb", len(args)))
	}
	if update.IsPublic != nil {
		args = append(args, *update.IsPublic)
		clauses = append(clauses, fmt.Sprintf("is_public = $%d", len(args)))
	}

	args = append(args, nowMillis())
	clauses = append(clauses, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE playlists
		SET %s
		WHERE id = $%d`, strings.Join(clauses, ", "), len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// DeletePlaylist permanently removes a playlist document. Likes are
// embedded in the document, so there is no cascading cleanup.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// PlaylistIDsByAuthor returns the ids of every playlist owned by
// authorID. Feeds the author fan-out.
func (s *Store) PlaylistIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id
		FROM playlists
		WHERE author_id = $1`, authorID)
	if err != nil {
		return nil, fmt.Errorf("select playlist ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan playlist id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist ids: %w", err)
	}
	return ids, nil
}

// UpdateAuthorDetails refreshes the denormalized author fields on a
// single playlist document. Only the provided fields are written, plus
// updated_at. Each call is an independent single-document write; the
// fan-out above it offers no cross-document atomicity.
func (s *Store) UpdateAuthorDetails(ctx context.Context, playlistID string, details models.AuthorDetails) error {
	var (
		clauses []string
		args    []any
	)

	if details.AuthorName != nil {
		args = append(args, *details.AuthorName)
		clauses = append(clauses, fmt.Sprintf("author_name = $%d", len(args)))
	}
	if details.AuthorLevel != nil {
		args = append(args, *details.AuthorLevel)
		clauses = append(clauses, fmt.Sprintf("author_level = $%d", len(args)))
	}

	args = append(args, nowMillis())
	clauses = append(clauses, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, playlistID)
	query := fmt.Sprintf(`
		UPDATE playlists
		SET %s
		WHERE id = $%d`, strings.Join(clauses, ", "), len(args))

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update author details: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// hydratePlaylist is the versioned schema-upgrade step applied on every
// read path. Documents created before the visibility flag existed carry
// a NULL is_public and are treated as public; item bodies written under
// the legacy notes key resolve into the description field.
func hydratePlaylist(playlist *models.Playlist, isPublic sql.NullBool) {
	if isPublic.Valid {
		playlist.IsPublic = isPublic.Bool
	} else {
		playlist.IsPublic = true
	}
	if playlist.Items == nil {
		playlist.Items = []models.PlaylistItem{}
	}
	for i, item := range playlist.Items {
		playlist.Items[i].Description = item.Body()
	}
	if playlist.LikedBy == nil {
		playlist.LikedBy = []string{}
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlaylist(row rowScanner) (*models.Playlist, error) {
	var (
		playlist  models.Playlist
		itemsJSON []byte
		isPublic  sql.NullBool
	)
	if err := row.Scan(&playlist.ID, &playlist.Name, &playlist.Description, &playlist.AuthorID,
		&playlist.AuthorName, &playlist.AuthorLevel, &itemsJSON, &isPublic, &playlist.Likes,
		pq.Array(&playlist.LikedBy), &playlist.CreatedAt, &playlist.UpdatedAt); err != nil {
		return nil, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &playlist.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	}
	hydratePlaylist(&playlist, isPublic)
	return &playlist, nil
}

func scanPlaylistRows(rows *sql.Rows) ([]*models.Playlist, error) {
	var playlists []*models.Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

func validateNewPlaylist(np models.NewPlaylist) error {
	if strings.TrimSpace(np.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPlaylist)
	}
	if np.AuthorID == "" {
		return fmt.Errorf("%w: author id is required", ErrInvalidPlaylist)
	}
	return validateItems(np.Items)
}

func validateItems(items []models.PlaylistItem) error {
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			return fmt.Errorf("%w: item title is required", ErrInvalidPlaylist)
		}
		if !item.Type.Valid() {
			return fmt.Errorf("%w: unknown item type %q", ErrInvalidPlaylist, item.Type)
		}
		if item.Type != models.ItemNote && item.URL == "" {
			return fmt.Errorf("%w: %s item requires a url", ErrInvalidPlaylist, item.Type)
		}
	}
	return nil
}
