package models

// ItemType classifies a playlist entry by the kind of resource it points at.
type ItemType string

const (
	ItemVideo    ItemType = "video"
	ItemDocument ItemType = "document"
	ItemLink     ItemType = "link"
	ItemNote     ItemType = "note"
)

// Valid reports whether t is one of the recognised item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemVideo, ItemDocument, ItemLink, ItemNote:
		return true
	}
	return false
}

// PlaylistItem is one entry in a playlist's ordered sequence. The slice
// order in Playlist.Items is the syllabus order and is preserved exactly
// as stored.
type PlaylistItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Type        ItemType `json:"type"`
	URL         string   `json:"url,omitempty"`
	Description string   `json:"description,omitempty"`
	// Notes is a legacy alias for Description kept for documents written
	// before the rename. Description wins when both are present.
	Notes string `json:"notes,omitempty"`
}

// Body returns the markdown body, preferring Description over the
// legacy Notes field.
func (i PlaylistItem) Body() string {
	if i.Description != "" {
		return i.Description
	}
	return i.Notes
}

// Playlist captures a user-curated course: an ordered list of items plus
// denormalized author fields for list rendering without a join.
type Playlist struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description,omitempty" db:"description"`
	AuthorID    string         `json:"authorId" db:"author_id"`
	AuthorName  string         `json:"authorName" db:"author_name"`
	AuthorLevel int            `json:"authorLevel,omitempty" db:"author_level"`
	Items       []PlaylistItem `json:"items"`
	IsPublic    bool           `json:"isPublic" db:"is_public"`
	Likes       int            `json:"likes" db:"likes"`
	LikedBy     []string       `json:"likedBy" db:"liked_by"`
	CreatedAt   int64          `json:"createdAt" db:"created_at"`
	UpdatedAt   int64          `json:"updatedAt" db:"updated_at"`
}

// LikedByUser reports whether uid is in the playlist's liked-by set.
func (p *Playlist) LikedByUser(uid string) bool {
	for _, id := range p.LikedBy {
		if id == uid {
			return true
		}
	}
	return false
}

// NewPlaylist carries the caller-supplied fields of a playlist about to
// be created. The store assigns the id, the like counters and both
// timestamps. A nil IsPublic means the caller left visibility unset and
// the playlist defaults to public.
type NewPlaylist struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	AuthorID    string         `json:"authorId"`
	AuthorName  string         `json:"authorName"`
	AuthorLevel int            `json:"authorLevel,omitempty"`
	Items       []PlaylistItem `json:"items"`
	IsPublic    *bool          `json:"isPublic,omitempty"`
}

// PlaylistUpdate describes a partial playlist mutation. Nil fields are
// left untouched in storage; IsPublic in particular is only written when
// explicitly present. AuthorID is immutable and deliberately absent.
type PlaylistUpdate struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Items       *[]PlaylistItem `json:"items,omitempty"`
	IsPublic    *bool           `json:"isPublic,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u PlaylistUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Items == nil && u.IsPublic == nil
}

// AuthorDetails carries the denormalized author fields propagated to a
// user's playlists after a profile edit.
type AuthorDetails struct {
	AuthorName  *string `json:"authorName,omitempty"`
	AuthorLevel *int    `json:"authorLevel,omitempty"`
}

// Empty reports whether there is nothing to propagate.
func (d AuthorDetails) Empty() bool {
	return d.AuthorName == nil && d.AuthorLevel == nil
}
