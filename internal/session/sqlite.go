package session

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tmattson/flix/internal/models"
	"github.com/tmattson/flix/internal/shared"
)

// SQLiteStore persists the session in a single-row table, the durable
// equivalent of the browser client's localStorage pair.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a [SQLiteStore] with the given database connection.
// The session table must exist (see shared.RunMigrations).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save writes token and user in one transaction so a reader never observes
// one field without the other.
func (s *SQLiteStore) Save(token string, user models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO session (id, token, user_json, updated_at) VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, user_json = excluded.user_json, updated_at = excluded.updated_at
	`
	if _, err := tx.Exec(query, token, string(userJSON)); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	return tx.Commit()
}

// Load returns the stored session. A row whose user record no longer decodes
// is wiped and reported as no session, never as an error.
func (s *SQLiteStore) Load() (Session, bool, error) {
	var (
		token    string
		userJSON string
	)

	err := s.db.QueryRow("SELECT token, user_json FROM session WHERE id = 1").Scan(&token, &userJSON)
	if err == sql.ErrNoRows {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("failed to query session: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil || token == "" {
		// Unreadable session state; drop it rather than surface half a session.
		if clearErr := s.Clear(); clearErr != nil {
			return Session{}, false, fmt.Errorf("failed to clear corrupt session: %w", clearErr)
		}
		return Session{}, false, nil
	}

	return Session{Token: token, User: user}, true, nil
}

func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM session WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateUser(user models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	result, err := s.db.Exec("UPDATE session SET user_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1", string(userJSON))
	if err != nil {
		return fmt.Errorf("failed to update user record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return shared.ErrNotAuthenticated
	}

	return nil
}
