package playlists

import (
	"context"
	"errors"
	"testing"

	"studylist/internal/auth"
	"studylist/internal/models"
	"studylist/internal/store"
)

type stubStore struct {
	playlists map[string]*models.Playlist
	profiles  map[string]*models.UserProfile

	created   *models.NewPlaylist
	updated   *models.PlaylistUpdate
	updatedID string
	deletedID string
}

func newStubStore() *stubStore {
	return &stubStore{
		playlists: make(map[string]*models.Playlist),
		profiles:  make(map[string]*models.UserProfile),
	}
}

func (s *stubStore) GetPlaylist(_ context.Context, id string) (*models.Playlist, error) {
	playlist, ok := s.playlists[id]
	if !ok {
		return nil, store.ErrPlaylistNotFound
	}
	return playlist, nil
}

func (s *stubStore) ListPlaylists(context.Context) ([]*models.Playlist, error) {
	var out []*models.Playlist
	for _, p := range s.playlists {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubStore) ListPlaylistsByAuthor(_ context.Context, authorID string, includePrivate bool) ([]*models.Playlist, error) {
	var out []*models.Playlist
	for _, p := range s.playlists {
		if p.AuthorID != authorID {
			continue
		}
		if !p.IsPublic && !includePrivate {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubStore) CreatePlaylist(_ context.Context, np models.NewPlaylist) (*models.Playlist, error) {
	s.created = &np
	return &models.Playlist{
		ID:          "new-id",
		Name:        np.Name,
		AuthorID:    np.AuthorID,
		AuthorName:  np.AuthorName,
		AuthorLevel: np.AuthorLevel,
		Items:       np.Items,
		IsPublic:    np.IsPublic == nil || *np.IsPublic,
	}, nil
}

func (s *stubStore) UpdatePlaylist(_ context.Context, id string, update models.PlaylistUpdate) error {
	if _, ok := s.playlists[id]; !ok {
		return store.ErrPlaylistNotFound
	}
	s.updatedID = id
	s.updated = &update
	return nil
}

func (s *stubStore) DeletePlaylist(_ context.Context, id string) error {
	if _, ok := s.playlists[id]; !ok {
		return store.ErrPlaylistNotFound
	}
	s.deletedID = id
	delete(s.playlists, id)
	return nil
}

func (s *stubStore) GetUserProfile(_ context.Context, uid string) (*models.UserProfile, error) {
	profile, ok := s.profiles[uid]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return profile, nil
}

func TestCreateUsesProfileAuthorDetails(t *testing.T) {
	st := newStubStore()
	st.profiles["u1"] = &models.UserProfile{
		UID:         "u1",
		DisplayName: "Ada Lovelace",
		Level:       3,
	}

	svc := New(st)
	ident := auth.Identity{UID: "u1", DisplayName: "ada"}

	playlist, err := svc.Create(context.Background(), ident, CreateRequest{Name: "Calculus"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if playlist.AuthorName != "Ada Lovelace" {
		t.Fatalf("expected profile display name, got %q", playlist.AuthorName)
	}
	if playlist.AuthorLevel != 3 {
		t.Fatalf("expected profile level 3, got %d", playlist.AuthorLevel)
	}
}

func TestCreateFallsBackToIdentityWithoutProfile(t *testing.T) {
	st := newStubStore()
	svc := New(st)
	ident := auth.Identity{UID: "u1", DisplayName: "ada"}

	playlist, err := svc.Create(context.Background(), ident, CreateRequest{Name: "Calculus"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if playlist.AuthorName != "ada" {
		t.Fatalf("expected identity display name, got %q", playlist.AuthorName)
	}
	if playlist.AuthorLevel != models.MinLevel {
		t.Fatalf("expected default level %d, got %d", models.MinLevel, playlist.AuthorLevel)
	}
}

func TestCreateNormalizesItems(t *testing.T) {
	st := newStubStore()
	svc := New(st)

	items := []models.PlaylistItem{
		{Title: "Lecture", URL: "https://www.youtube.com/watch?v=abc123"},
		{ID: "keep-me", Title: "Paper", URL: "https://arxiv.org/abs/1234.pdf"},
		{Title: "Reminder"},
	}

	_, err := svc.Create(context.Background(), auth.Identity{UID: "u1"}, CreateRequest{
		Name:  "ML",
		Items: items,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got := st.created.Items
	if got[0].ID == "" {
		t.Fatal("expected generated id for first item")
	}
	if got[0].Type != models.ItemVideo {
		t.Fatalf("expected video type, got %q", got[0].Type)
	}
	if got[1].ID != "keep-me" {
		t.Fatalf("existing id replaced: %q", got[1].ID)
	}
	if got[1].Type != models.ItemDocument {
		t.Fatalf("expected document type, got %q", got[1].Type)
	}
	if got[2].Type != models.ItemNote {
		t.Fatalf("expected note type for url-less item, got %q", got[2].Type)
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	st := newStubStore()
	st.playlists["p1"] = &models.Playlist{ID: "p1", AuthorID: "owner"}

	svc := New(st)

	name := "renamed"
	_, err := svc.Update(context.Background(), "intruder", "p1", models.PlaylistUpdate{Name: &name})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if st.updated != nil {
		t.Fatal("update reached the store despite ownership failure")
	}
}

func TestUpdateNormalizesReplacedItems(t *testing.T) {
	st := newStubStore()
	st.playlists["p1"] = &models.Playlist{ID: "p1", AuthorID: "owner"}

	svc := New(st)

	items := []models.PlaylistItem{{Title: "Repo", URL: "https://github.com/golang/go"}}
	_, err := svc.Update(context.Background(), "owner", "p1", models.PlaylistUpdate{Items: &items})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	got := *st.updated.Items
	if got[0].ID == "" {
		t.Fatal("expected generated item id")
	}
	if got[0].Type != models.ItemDocument {
		t.Fatalf("expected document type, got %q", got[0].Type)
	}
}

func TestUpdateMissingPlaylist(t *testing.T) {
	svc := New(newStubStore())

	name := "x"
	_, err := svc.Update(context.Background(), "u1", "missing", models.PlaylistUpdate{Name: &name})
	if !errors.Is(err, store.ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestDeleteRejectsNonOwner(t *testing.T) {
	st := newStubStore()
	st.playlists["p1"] = &models.Playlist{ID: "p1", AuthorID: "owner"}

	svc := New(st)

	if err := svc.Delete(context.Background(), "intruder", "p1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, ok := st.playlists["p1"]; !ok {
		t.Fatal("playlist deleted despite ownership failure")
	}
}

func TestDeleteByOwner(t *testing.T) {
	st := newStubStore()
	st.playlists["p1"] = &models.Playlist{ID: "p1", AuthorID: "owner"}

	svc := New(st)

	if err := svc.Delete(context.Background(), "owner", "p1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if st.deletedID != "p1" {
		t.Fatalf("expected delete of p1, got %q", st.deletedID)
	}
}
