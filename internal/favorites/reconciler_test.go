package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tmattson/flix/internal/api"
	"github.com/tmattson/flix/internal/models"
	"github.com/tmattson/flix/internal/session"
	"github.com/tmattson/flix/internal/shared"
)

// newTestReconciler wires a Reconciler against the given handler with a
// logged-in memory store.
func newTestReconciler(t *testing.T, user models.User, handler http.HandlerFunc) (*Reconciler, *session.MemoryStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	store.Save("jwt-abc", user)

	gateway := api.NewGateway(server.URL, server.Client(), store, nil)
	client := api.NewClient(gateway, store)
	return NewReconciler(client, store), store
}

func TestReconcilerQueries(t *testing.T) {
	t.Run("IsFavorite", func(t *testing.T) {
		r, _ := newTestReconciler(t, models.User{
			Username:       "moviefan",
			FavoriteMovies: []string{"m1", "m2"},
		}, func(w http.ResponseWriter, req *http.Request) {})

		if !r.IsFavorite("m1") {
			t.Error("expected m1 to be a favorite")
		}
		if r.IsFavorite("m9") {
			t.Error("expected m9 not to be a favorite")
		}
	})

	t.Run("IsFavorite Without Session", func(t *testing.T) {
		r, store := newTestReconciler(t, models.User{
			Username:       "moviefan",
			FavoriteMovies: []string{"m1"},
		}, func(w http.ResponseWriter, req *http.Request) {})
		store.Clear()

		if r.IsFavorite("m1") {
			t.Error("expected no favorites without a session")
		}
	})

	t.Run("Favorites Snapshot Is Detached", func(t *testing.T) {
		r, store := newTestReconciler(t, models.User{
			Username:       "moviefan",
			FavoriteMovies: []string{"m1", "m2"},
		}, func(w http.ResponseWriter, req *http.Request) {})

		snapshot := r.Favorites()
		if len(snapshot) != 2 {
			t.Fatalf("expected 2 favorites, got %d", len(snapshot))
		}

		snapshot[0] = "mutated"
		sess, _, _ := store.Load()
		if sess.User.FavoriteMovies[0] != "m1" {
			t.Error("expected the cached list to be unaffected by snapshot mutation")
		}
	})
}

func TestReconcilerToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("Add Then Remove", func(t *testing.T) {
		serverFavorites := []string{}
		r, store := newTestReconciler(t, models.User{Username: "moviefan"}, func(w http.ResponseWriter, req *http.Request) {
			switch req.Method {
			case http.MethodPost:
				serverFavorites = []string{"m1"}
			case http.MethodDelete:
				serverFavorites = []string{}
			}
			resp := models.User{Username: "moviefan", FavoriteMovies: serverFavorites}
			w.Header().Set("Content-Type", "application/json")
			writeUser(t, w, resp)
		})

		nowFavorite, err := r.Toggle(ctx, "m1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !nowFavorite {
			t.Error("expected m1 to become a favorite")
		}
		if !r.IsFavorite("m1") {
			t.Error("expected the cache to reflect the addition")
		}

		nowFavorite, err = r.Toggle(ctx, "m1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if nowFavorite {
			t.Error("expected m1 to be removed")
		}
		if r.IsFavorite("m1") {
			t.Error("expected the cache to reflect the removal")
		}

		sess, _, _ := store.Load()
		if sess.Token != "jwt-abc" {
			t.Errorf("expected token unchanged, got %s", sess.Token)
		}
	})

	t.Run("Server Rejection Leaves Cache", func(t *testing.T) {
		r, _ := newTestReconciler(t, models.User{
			Username:       "moviefan",
			FavoriteMovies: []string{"m1"},
		}, func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := r.Toggle(ctx, "m2")
		if !errors.Is(err, shared.ErrServer) {
			t.Fatalf("expected ErrServer, got %v", err)
		}

		if r.IsFavorite("m2") {
			t.Error("expected a rejected addition to leave the cache untouched")
		}
		if !r.IsFavorite("m1") {
			t.Error("expected existing favorites to survive")
		}
	})

	t.Run("Expired Session Clears Cache", func(t *testing.T) {
		r, store := newTestReconciler(t, models.User{
			Username:       "moviefan",
			FavoriteMovies: []string{"m1"},
		}, func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "token expired", http.StatusUnauthorized)
		})

		_, err := r.Toggle(ctx, "m2")
		if !errors.Is(err, shared.ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}

		if _, ok, _ := store.Load(); ok {
			t.Error("expected the session to be cleared")
		}
		if r.IsFavorite("m1") {
			t.Error("expected membership queries to report false after expiry")
		}
	})

	t.Run("No Session", func(t *testing.T) {
		r, store := newTestReconciler(t, models.User{Username: "moviefan"}, func(w http.ResponseWriter, req *http.Request) {})
		store.Clear()

		if _, err := r.Toggle(ctx, "m1"); err == nil {
			t.Error("expected an error without a session")
		}
	})

	t.Run("Acknowledgement Only Response", func(t *testing.T) {
		r, store := newTestReconciler(t, models.User{Username: "moviefan"}, func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`"m1 was added"`))
		})

		nowFavorite, err := r.Toggle(ctx, "m1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !nowFavorite {
			t.Error("expected m1 to become a favorite")
		}

		sess, _, _ := store.Load()
		if !sess.User.HasFavorite("m1") {
			t.Error("expected the cached list to gain m1 even without a server record")
		}
	})
}

func TestReconcilerStaleSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Logout During Flight Discards Result", func(t *testing.T) {
		var store *session.MemoryStore
		var r *Reconciler

		r, store = newTestReconciler(t, models.User{Username: "moviefan"}, func(w http.ResponseWriter, req *http.Request) {
			// Session ends while the mutation is in flight.
			store.Clear()
			writeUser(t, w, models.User{Username: "moviefan", FavoriteMovies: []string{"m1"}})
		})

		if err := r.Add(ctx, "m1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, ok, _ := store.Load(); ok {
			t.Error("expected the store to stay empty")
		}
	})

	t.Run("Relogin During Flight Discards Result", func(t *testing.T) {
		var store *session.MemoryStore
		var r *Reconciler

		r, store = newTestReconciler(t, models.User{Username: "moviefan"}, func(w http.ResponseWriter, req *http.Request) {
			// A different session is established while the mutation is in
			// flight; the late result must not leak into it.
			store.Save("jwt-new", models.User{Username: "someoneelse"})
			writeUser(t, w, models.User{Username: "moviefan", FavoriteMovies: []string{"m1"}})
		})

		if err := r.Add(ctx, "m1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		sess, ok, _ := store.Load()
		if !ok {
			t.Fatal("expected the new session to remain")
		}
		if sess.User.Username != "someoneelse" {
			t.Errorf("expected the new session's user, got %s", sess.User.Username)
		}
		if sess.User.HasFavorite("m1") {
			t.Error("expected the stale result to be discarded")
		}
	})
}

func writeUser(t *testing.T, w http.ResponseWriter, user models.User) {
	t.Helper()
	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("failed to encode user: %v", err)
	}
	w.Write(data)
}
