package store

import (
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrPlaylistNotFound signals a missing playlist document.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrProfileNotFound signals a missing user profile document.
	ErrProfileNotFound = errors.New("profile not found")
)

// Store provides persistence backed by Postgres. It holds the two
// collections of the application: users and playlists.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// nowMillis is the write-time clock, epoch milliseconds. Stubbed in tests.
var nowMillis = func() int64 {
	return time.Now().UnixMilli()
}
