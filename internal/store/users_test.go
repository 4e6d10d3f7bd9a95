package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"studylist/internal/models"
)

func userRowColumns() []string {
	return []string{"uid", "email", "display_name", "photo_url", "level", "subjects", "projects", "bio"}
}

func TestGetUserProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE uid = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userRowColumns()).
			AddRow("u1", "ada@example.edu", "Ada", "", 3, []byte(`{Math,CS}`), []byte(`{}`), "hi"))

	profile, err := s.GetUserProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetUserProfile error: %v", err)
	}
	if profile.UID != "u1" || profile.DisplayName != "Ada" || profile.Level != 3 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if len(profile.Subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %v", profile.Subjects)
	}
}

func TestGetUserProfileNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(`SELECT (.+) FROM users\s+WHERE uid = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userRowColumns()))

	_, err = s.GetUserProfile(context.Background(), "missing")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestUpsertUserProfileMergesProvidedFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	email := "ada@example.edu"
	level := 3
	mock.ExpectExec(`INSERT INTO users \(uid, email, level\)\s+VALUES \(\$1, \$2, \$3\) ON CONFLICT \(uid\) DO UPDATE SET email = EXCLUDED\.email, level = EXCLUDED\.level`).
		WithArgs("u1", email, level).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = s.UpsertUserProfile(context.Background(), "u1", models.ProfileUpdate{
		Email: &email,
		Level: &level,
	})
	if err != nil {
		t.Fatalf("UpsertUserProfile error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertUserProfileArrays(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	subjects := []string{"Math", "CS"}
	mock.ExpectExec(`INSERT INTO users \(uid, subjects\)`).
		WithArgs("u1", pq.Array(subjects)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = s.UpsertUserProfile(context.Background(), "u1", models.ProfileUpdate{Subjects: &subjects})
	if err != nil {
		t.Fatalf("UpsertUserProfile error: %v", err)
	}
}

func TestUpsertUserProfileValidation(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	intPtr := func(v int) *int { return &v }
	tooMany := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name   string
		uid    string
		update models.ProfileUpdate
	}{
		{name: "level too low", uid: "u1", update: models.ProfileUpdate{Level: intPtr(0)}},
		{name: "level too high", uid: "u1", update: models.ProfileUpdate{Level: intPtr(5)}},
		{name: "too many subjects", uid: "u1", update: models.ProfileUpdate{Subjects: &tooMany}},
		{name: "too many projects", uid: "u1", update: models.ProfileUpdate{Projects: &tooMany}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.UpsertUserProfile(context.Background(), tc.uid, tc.update); !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}

	if err := s.UpsertUserProfile(context.Background(), "", models.ProfileUpdate{}); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile for empty uid, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WillReturnRows(sqlmock.NewRows(userRowColumns()).
			AddRow("u1", "a@x", "A", "", 1, []byte(`{}`), []byte(`{}`), "").
			AddRow("u2", "b@x", "B", "", 2, []byte(`{}`), []byte(`{}`), ""))

	users, err := s.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
