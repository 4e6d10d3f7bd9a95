package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"studylist/internal/models"
)

// ErrInvalidProfile indicates validation failure for profile data.
var ErrInvalidProfile = errors.New("invalid profile")

const userColumns = `uid, email, display_name, photo_url, level, subjects, projects, bio`

// GetUserProfile fetches one profile document by uid.
func (s *Store) GetUserProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE uid = $1`, uid)

	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// ListUsers returns every profile document. Unordered full scan with no
// pagination; acceptable only at classroom scale.
func (s *Store) ListUsers(ctx context.Context) ([]*models.UserProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var profiles []*models.UserProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

// UpsertUserProfile merge-writes the provided fields into the profile
// document for uid, creating it on first save. Fields absent from the
// partial are preserved, never cleared.
func (s *Store) UpsertUserProfile(ctx context.Context, uid string, update models.ProfileUpdate) error {
	if uid == "" {
		return fmt.Errorf("%w: uid is required", ErrInvalidProfile)
	}
	if err := validateProfileUpdate(update); err != nil {
		return err
	}

	cols := []string{"uid"}
	args := []any{uid}

	add := func(col string, val any) {
		cols = append(cols, col)
		args = append(args, val)
	}

	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.DisplayName != nil {
		add("display_name", *update.DisplayName)
	}
	if update.PhotoURL != nil {
		add("photo_url", *update.PhotoURL)
	}
	if update.Level != nil {
		add("level", *update.Level)
	}
	if update.Subjects != nil {
		add("subjects", pq.Array(*update.Subjects))
	}
	if update.Projects != nil {
		add("projects", pq.Array(*update.Projects))
	}
	if update.Bio != nil {
		add("bio", *update.Bio)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO users (%s)
		VALUES (%s)`, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	if len(cols) == 1 {
		query += ` ON CONFLICT (uid) DO NOTHING`
	} else {
		var sets []string
		for _, col := range cols[1:] {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
		query += fmt.Sprintf(` ON CONFLICT (uid) DO UPDATE SET %s`, strings.Join(sets, ", "))
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func scanProfile(row rowScanner) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := row.Scan(&profile.UID, &profile.Email, &profile.DisplayName, &profile.PhotoURL,
		&profile.Level, pq.Array(&profile.Subjects), pq.Array(&profile.Projects), &profile.Bio); err != nil {
		return nil, err
	}
	return &profile, nil
}

func validateProfileUpdate(update models.ProfileUpdate) error {
	if update.Level != nil && (*update.Level < models.MinLevel || *update.Level > models.MaxLevel) {
		return fmt.Errorf("%w: level must be between %d and %d", ErrInvalidProfile, models.MinLevel, models.MaxLevel)
	}
	if update.Subjects != nil && len(*update.Subjects) > models.MaxTags {
		return fmt.Errorf("%w: at most %d subjects", ErrInvalidProfile, models.MaxTags)
	}
	if update.Projects != nil && len(*update.Projects) > models.MaxTags {
		return fmt.Errorf("%w: at most %d projects", ErrInvalidProfile, models.MaxTags)
	}
	return nil
}
