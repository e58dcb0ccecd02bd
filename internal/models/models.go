package models

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/tmattson/flix/internal/shared"
)

// emailPattern accepts the local@domain.tld shape and nothing looser.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Genre describes a movie genre.
type Genre struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

// Director describes a movie director. Birth and Death are calendar date
// strings as returned by the backend; Death is empty for living directors.
type Director struct {
	Name  string `json:"Name"`
	Bio   string `json:"Bio"`
	Birth string `json:"Birth,omitempty"`
	Death string `json:"Death,omitempty"`
}

// Movie is a read-only projection of a catalog entry.
type Movie struct {
	ID          string   `json:"_id"`
	Title       string   `json:"Title"`
	Description string   `json:"Description"`
	Genre       Genre    `json:"Genre"`
	Director    Director `json:"Director"`
	ImagePath   string   `json:"ImagePath"`
	Featured    bool     `json:"Featured"`
}

// User is the backend's user record. FavoriteMovies holds movie IDs with
// set semantics; order carries no meaning.
type User struct {
	ID             string   `json:"_id,omitempty"`
	Username       string   `json:"Username"`
	Email          string   `json:"Email"`
	Birthday       string   `json:"Birthday,omitempty"`
	FavoriteMovies []string `json:"FavoriteMovies"`
}

// HasFavorite reports whether movieID is in the user's favorites list.
func (u User) HasFavorite(movieID string) bool {
	return slices.Contains(u.FavoriteMovies, movieID)
}

// Credentials are the login inputs.
type Credentials struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// Validate checks that both login fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}
	return nil
}

// Registration is the payload for creating a new account.
type Registration struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
	Email    string `json:"Email"`
	Birthday string `json:"Birthday,omitempty"`
}

// Validate checks the required registration fields before any network call.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", shared.ErrInvalidInput)
	}
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("%w: malformed email address %q", shared.ErrInvalidInput, r.Email)
	}
	return nil
}

// UserPatch carries profile edits. Zero-valued fields are omitted from the
// request so the backend keeps its current values.
type UserPatch struct {
	Username string `json:"Username,omitempty"`
	Password string `json:"Password,omitempty"`
	Email    string `json:"Email,omitempty"`
	Birthday string `json:"Birthday,omitempty"`
}

// Validate rejects a patch that changes nothing and a malformed email.
func (p UserPatch) Validate() error {
	if p.Username == "" && p.Password == "" && p.Email == "" && p.Birthday == "" {
		return fmt.Errorf("%w: nothing to update", shared.ErrInvalidInput)
	}
	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		return fmt.Errorf("%w: malformed email address %q", shared.ErrInvalidInput, p.Email)
	}
	return nil
}

// LoginResponse is the backend's successful login payload.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
