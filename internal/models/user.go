package models

const (
	// MinLevel and MaxLevel bound the degree/maturity tier.
	MinLevel = 1
	MaxLevel = 4
	// MaxTags caps the subjects and projects lists.
	MaxTags = 4
)

// UserProfile holds a user's public profile. UID equals the
// authentication subject's identifier; Email, DisplayName and PhotoURL
// are re-synced from the provider on every save.
type UserProfile struct {
	UID         string   `json:"uid" db:"uid"`
	Email       string   `json:"email" db:"email"`
	DisplayName string   `json:"displayName" db:"display_name"`
	PhotoURL    string   `json:"photoURL,omitempty" db:"photo_url"`
	Level       int      `json:"level" db:"level"`
	Subjects    []string `json:"subjects,omitempty" db:"subjects"`
	Projects    []string `json:"projects,omitempty" db:"projects"`
	Bio         string   `json:"bio,omitempty" db:"bio"`
}

// ProfileUpdate describes a partial profile save. Nil fields are
// preserved in storage (merge-write, never a full overwrite).
type ProfileUpdate struct {
	Email       *string   `json:"email,omitempty"`
	DisplayName *string   `json:"displayName,omitempty"`
	PhotoURL    *string   `json:"photoURL,omitempty"`
	Level       *int      `json:"level,omitempty"`
	Subjects    *[]string `json:"subjects,omitempty"`
	Projects    *[]string `json:"projects,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u ProfileUpdate) Empty() bool {
	return u.Email == nil && u.DisplayName == nil && u.PhotoURL == nil &&
		u.Level == nil && u.Subjects == nil && u.Projects == nil && u.Bio == nil
}
