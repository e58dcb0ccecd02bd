package session

import (
	"sync"

	"github.com/tmattson/flix/internal/models"
	"github.com/tmattson/flix/internal/shared"
)

// MemoryStore is an in-memory [Store] used by tests and by one-shot commands
// that must not touch the database. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	token   string
	user    models.User
	present bool
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = user
	s.present = true
	return nil
}

func (s *MemoryStore) Load() (Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.present {
		return Session{}, false, nil
	}
	return Session{Token: s.token, User: s.user}, true, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = models.User{}
	s.present = false
	return nil
}

func (s *MemoryStore) UpdateUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.present {
		return shared.ErrNotAuthenticated
	}
	s.user = user
	return nil
}
