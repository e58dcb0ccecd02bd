package session

import (
	"github.com/tmattson/flix/internal/models"
)

// Session is the client-held authenticated identity: a bearer token and the
// last-known copy of the user record it belongs to. The two fields are
// written and cleared together; a token without a user (or the reverse) is
// never readable from a Store.
type Session struct {
	Token string
	User  models.User
}

// Store is the single owner of session lifecycle. Implementations persist
// the pair durably ([SQLiteStore]) or in memory for tests ([MemoryStore]).
//
// Load never fails for "no session present"; that is the (Session{}, false)
// result. A stored record that cannot be decoded is treated the same way and
// the underlying storage is wiped, so a corrupt session can never be read
// back partially.
type Store interface {
	// Save writes token and user as one unit.
	Save(token string, user models.User) error

	// Load returns the current session, with ok=false when none is stored.
	Load() (Session, bool, error)

	// Clear removes the session unconditionally. Idempotent.
	Clear() error

	// UpdateUser overwrites the cached user record, preserving the token.
	// Returns shared.ErrNotAuthenticated when no session is stored.
	UpdateUser(user models.User) error
}
