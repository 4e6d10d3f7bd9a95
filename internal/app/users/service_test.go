package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"studylist/internal/auth"
	"studylist/internal/models"
	"studylist/internal/store"
)

type stubStore struct {
	mu sync.Mutex

	profiles    map[string]*models.UserProfile
	playlistIDs []string
	failIDs     map[string]error

	upsertUID    string
	upsertUpdate *models.ProfileUpdate
	synced       map[string]models.AuthorDetails
}

func newStubStore() *stubStore {
	return &stubStore{
		profiles: make(map[string]*models.UserProfile),
		failIDs:  make(map[string]error),
		synced:   make(map[string]models.AuthorDetails),
	}
}

func (s *stubStore) GetUserProfile(_ context.Context, uid string) (*models.UserProfile, error) {
	profile, ok := s.profiles[uid]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return profile, nil
}

func (s *stubStore) UpsertUserProfile(_ context.Context, uid string, update models.ProfileUpdate) error {
	s.upsertUID = uid
	s.upsertUpdate = &update

	profile, ok := s.profiles[uid]
	if !ok {
		profile = &models.UserProfile{UID: uid}
		s.profiles[uid] = profile
	}
	if update.Email != nil {
		profile.Email = *update.Email
	}
	if update.DisplayName != nil {
		profile.DisplayName = *update.DisplayName
	}
	if update.PhotoURL != nil {
		profile.PhotoURL = *update.PhotoURL
	}
	if update.Level != nil {
		profile.Level = *update.Level
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	return nil
}

func (s *stubStore) ListUsers(context.Context) ([]*models.UserProfile, error) {
	var out []*models.UserProfile
	for _, p := range s.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubStore) PlaylistIDsByAuthor(context.Context, string) ([]string, error) {
	return s.playlistIDs, nil
}

func (s *stubStore) UpdateAuthorDetails(_ context.Context, playlistID string, details models.AuthorDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failIDs[playlistID]; ok {
		return err
	}
	s.synced[playlistID] = details
	return nil
}

func TestProfileOrDefaultReturnsStored(t *testing.T) {
	st := newStubStore()
	st.profiles["u1"] = &models.UserProfile{UID: "u1", DisplayName: "Ada", Level: 4}

	svc := New(st)

	profile, err := svc.ProfileOrDefault(context.Background(), auth.Identity{UID: "u1", DisplayName: "other"})
	if err != nil {
		t.Fatalf("ProfileOrDefault error: %v", err)
	}
	if profile.DisplayName != "Ada" || profile.Level != 4 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestProfileOrDefaultSynthesizes(t *testing.T) {
	svc := New(newStubStore())

	ident := auth.Identity{
		UID:         "u1",
		Email:       "ada@example.edu",
		DisplayName: "Ada",
		PhotoURL:    "https://img/ada.png",
	}
	profile, err := svc.ProfileOrDefault(context.Background(), ident)
	if err != nil {
		t.Fatalf("ProfileOrDefault error: %v", err)
	}
	if profile.UID != "u1" || profile.Email != ident.Email || profile.DisplayName != "Ada" {
		t.Fatalf("unexpected default profile: %+v", profile)
	}
	if profile.Level != models.MinLevel {
		t.Fatalf("expected default level %d, got %d", models.MinLevel, profile.Level)
	}
}

func TestSaveProfileForcesIdentityFields(t *testing.T) {
	st := newStubStore()
	svc := New(st)

	ident := auth.Identity{
		UID:         "u1",
		Email:       "ada@example.edu",
		DisplayName: "Ada",
		PhotoURL:    "https://img/ada.png",
	}
	spoofed := "impostor@evil.test"
	bio := "studying topology"

	saved, _, err := svc.SaveProfile(context.Background(), ident, models.ProfileUpdate{
		Email: &spoofed,
		Bio:   &bio,
	})
	if err != nil {
		t.Fatalf("SaveProfile error: %v", err)
	}
	if *st.upsertUpdate.Email != ident.Email {
		t.Fatalf("caller email not overridden: %q", *st.upsertUpdate.Email)
	}
	if saved.Email != ident.Email {
		t.Fatalf("saved profile kept spoofed email: %q", saved.Email)
	}
	if saved.Bio != bio {
		t.Fatalf("bio lost: %q", saved.Bio)
	}
}

func TestSaveProfileFansOutLevel(t *testing.T) {
	st := newStubStore()
	st.playlistIDs = []string{"p1", "p2"}
	svc := New(st)

	level := 2
	_, report, err := svc.SaveProfile(context.Background(), auth.Identity{UID: "u1", DisplayName: "Ada"}, models.ProfileUpdate{Level: &level})
	if err != nil {
		t.Fatalf("SaveProfile error: %v", err)
	}
	if report.Total != 2 || report.Updated != 2 || len(report.Failed) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	for _, id := range st.playlistIDs {
		details := st.synced[id]
		if details.AuthorName == nil || *details.AuthorName != "Ada" {
			t.Fatalf("author name not propagated to %s: %+v", id, details)
		}
		if details.AuthorLevel == nil || *details.AuthorLevel != 2 {
			t.Fatalf("author level not propagated to %s: %+v", id, details)
		}
	}
}

func TestSyncAuthorPlaylistsPartialFailure(t *testing.T) {
	st := newStubStore()
	st.playlistIDs = []string{"p1", "p2", "p3"}
	st.failIDs["p2"] = errors.New("write conflict")
	svc := New(st)

	name := "Ada"
	report, err := svc.SyncAuthorPlaylists(context.Background(), "u1", models.AuthorDetails{AuthorName: &name})
	if err != nil {
		t.Fatalf("SyncAuthorPlaylists error: %v", err)
	}
	if report.Total != 3 || report.Updated != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Failed) != 1 || report.Failed[0].PlaylistID != "p2" {
		t.Fatalf("unexpected failures: %+v", report.Failed)
	}
	if report.Failed[0].Error != "write conflict" {
		t.Fatalf("unexpected failure message: %q", report.Failed[0].Error)
	}
}

func TestSyncAuthorPlaylistsEmptyDetails(t *testing.T) {
	st := newStubStore()
	st.playlistIDs = []string{"p1"}
	svc := New(st)

	report, err := svc.SyncAuthorPlaylists(context.Background(), "u1", models.AuthorDetails{})
	if err != nil {
		t.Fatalf("SyncAuthorPlaylists error: %v", err)
	}
	if report.Total != 0 || len(st.synced) != 0 {
		t.Fatalf("fan-out ran with nothing to propagate: %+v", report)
	}
}
