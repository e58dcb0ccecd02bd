package session

import (
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tmattson/flix/internal/models"
	"github.com/tmattson/flix/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testUser() models.User {
	return models.User{
		Username:       "moviefan",
		Email:          "fan@example.com",
		FavoriteMovies: []string{"m1", "m2"},
	}
}

func TestMemoryStore(t *testing.T) {
	t.Run("Load Empty", func(t *testing.T) {
		store := NewMemoryStore()

		_, ok, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Error("expected no session in a fresh store")
		}
	})

	t.Run("Save And Load", func(t *testing.T) {
		store := NewMemoryStore()

		if err := store.Save("token-1", testUser()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		sess, ok, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ok {
			t.Fatal("expected a session after save")
		}
		if sess.Token != "token-1" {
			t.Errorf("expected token 'token-1', got %s", sess.Token)
		}
		if sess.User.Username != "moviefan" {
			t.Errorf("expected username 'moviefan', got %s", sess.User.Username)
		}
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		store := NewMemoryStore()

		store.Save("token-1", testUser())
		store.Save("token-2", models.User{Username: "other"})

		sess, _, _ := store.Load()
		if sess.Token != "token-2" {
			t.Errorf("expected token 'token-2', got %s", sess.Token)
		}
		if sess.User.Username != "other" {
			t.Errorf("expected username 'other', got %s", sess.User.Username)
		}
	})

	t.Run("Clear Is Idempotent", func(t *testing.T) {
		store := NewMemoryStore()
		store.Save("token-1", testUser())

		if err := store.Clear(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("expected clearing an empty store to succeed, got %v", err)
		}

		_, ok, _ := store.Load()
		if ok {
			t.Error("expected no session after clear")
		}
	})

	t.Run("UpdateUser", func(t *testing.T) {
		t.Run("With Session", func(t *testing.T) {
			store := NewMemoryStore()
			store.Save("token-1", testUser())

			updated := testUser()
			updated.FavoriteMovies = []string{"m1", "m2", "m3"}

			if err := store.UpdateUser(updated); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			sess, _, _ := store.Load()
			if len(sess.User.FavoriteMovies) != 3 {
				t.Errorf("expected 3 favorites, got %d", len(sess.User.FavoriteMovies))
			}
			if sess.Token != "token-1" {
				t.Errorf("expected token unchanged, got %s", sess.Token)
			}
		})

		t.Run("Without Session", func(t *testing.T) {
			store := NewMemoryStore()

			err := store.UpdateUser(testUser())
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	})
}

func TestSQLiteStore(t *testing.T) {
	t.Run("Load Empty", func(t *testing.T) {
		store := NewSQLiteStore(setupTestDB(t))

		_, ok, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Error("expected no session in a fresh database")
		}
	})

	t.Run("Save And Load", func(t *testing.T) {
		store := NewSQLiteStore(setupTestDB(t))

		if err := store.Save("token-1", testUser()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		sess, ok, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ok {
			t.Fatal("expected a session after save")
		}
		if sess.Token != "token-1" {
			t.Errorf("expected token 'token-1', got %s", sess.Token)
		}
		if len(sess.User.FavoriteMovies) != 2 {
			t.Errorf("expected 2 favorites, got %d", len(sess.User.FavoriteMovies))
		}
	})

	t.Run("Save Overwrites Single Row", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewSQLiteStore(db)

		store.Save("token-1", testUser())
		store.Save("token-2", models.User{Username: "other"})

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM session").Scan(&count); err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if count != 1 {
			t.Errorf("expected a single session row, got %d", count)
		}

		sess, _, _ := store.Load()
		if sess.Token != "token-2" {
			t.Errorf("expected token 'token-2', got %s", sess.Token)
		}
	})

	t.Run("Clear Is Idempotent", func(t *testing.T) {
		store := NewSQLiteStore(setupTestDB(t))
		store.Save("token-1", testUser())

		if err := store.Clear(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("expected clearing an empty store to succeed, got %v", err)
		}

		_, ok, _ := store.Load()
		if ok {
			t.Error("expected no session after clear")
		}
	})

	t.Run("Corrupt User Record Clears Session", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewSQLiteStore(db)

		_, err := db.Exec("INSERT INTO session (id, token, user_json) VALUES (1, 'token-1', 'not json')")
		if err != nil {
			t.Fatalf("failed to seed corrupt row: %v", err)
		}

		_, ok, err := store.Load()
		if err != nil {
			t.Fatalf("expected corrupt session to soft-fail, got %v", err)
		}
		if ok {
			t.Error("expected corrupt session to be reported as absent")
		}

		var count int
		db.QueryRow("SELECT COUNT(*) FROM session").Scan(&count)
		if count != 0 {
			t.Error("expected corrupt row to be deleted")
		}
	})

	t.Run("Empty Token Clears Session", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewSQLiteStore(db)

		_, err := db.Exec("INSERT INTO session (id, token, user_json) VALUES (1, '', '{}')")
		if err != nil {
			t.Fatalf("failed to seed row: %v", err)
		}

		_, ok, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Error("expected a tokenless row to be reported as absent")
		}
	})

	t.Run("UpdateUser Without Session", func(t *testing.T) {
		store := NewSQLiteStore(setupTestDB(t))

		err := store.UpdateUser(testUser())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("UpdateUser Preserves Token", func(t *testing.T) {
		store := NewSQLiteStore(setupTestDB(t))
		store.Save("token-1", testUser())

		updated := testUser()
		updated.FavoriteMovies = nil

		if err := store.UpdateUser(updated); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		sess, _, _ := store.Load()
		if sess.Token != "token-1" {
			t.Errorf("expected token unchanged, got %s", sess.Token)
		}
		if len(sess.User.FavoriteMovies) != 0 {
			t.Errorf("expected favorites cleared, got %v", sess.User.FavoriteMovies)
		}
	})
}
