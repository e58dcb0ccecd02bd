package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tmattson/flix/internal/models"
	"github.com/tmattson/flix/internal/session"
	"github.com/tmattson/flix/internal/shared"
)

// newTestClient wires a Client against the given handler, counting requests.
func newTestClient(t *testing.T, store session.Store, handler http.HandlerFunc) (*Client, *int) {
	t.Helper()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	gateway := NewGateway(server.URL, server.Client(), store, nil)
	return NewClient(gateway, store), &requests
}

func TestClientRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Registration", func(t *testing.T) {
		store := session.NewMemoryStore()
		var gotBody map[string]any
		client, _ := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/users" {
				t.Errorf("expected POST /users, got %s %s", r.Method, r.URL.Path)
			}
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"Username": "moviefan", "Email": "fan@example.com"}`))
		})

		user, err := client.Register(ctx, models.Registration{
			Username: "moviefan",
			Password: "hunter22",
			Email:    "fan@example.com",
			Birthday: "1990-05-01",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.Username != "moviefan" {
			t.Errorf("expected username 'moviefan', got %s", user.Username)
		}

		for _, field := range []string{"Username", "Password", "Email", "Birthday"} {
			if _, ok := gotBody[field]; !ok {
				t.Errorf("expected request body to carry %s", field)
			}
		}

		if _, ok, _ := store.Load(); ok {
			t.Error("expected registration to leave the session store empty")
		}
	})

	t.Run("Validation Failure Skips Network", func(t *testing.T) {
		client, requests := newTestClient(t, session.NewMemoryStore(), func(w http.ResponseWriter, r *http.Request) {})

		_, err := client.Register(ctx, models.Registration{Username: "moviefan"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if *requests != 0 {
			t.Errorf("expected no network call, got %d", *requests)
		}
	})

	t.Run("Invalid Email Skips Network", func(t *testing.T) {
		client, requests := newTestClient(t, session.NewMemoryStore(), func(w http.ResponseWriter, r *http.Request) {})

		_, err := client.Register(ctx, models.Registration{
			Username: "moviefan",
			Password: "hunter22",
			Email:    "not-an-email",
		})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if *requests != 0 {
			t.Errorf("expected no network call, got %d", *requests)
		}
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		client, _ := newTestClient(t, session.NewMemoryStore(), func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "moviefan already exists", http.StatusConflict)
		})

		_, err := client.Register(ctx, models.Registration{
			Username: "moviefan",
			Password: "hunter22",
			Email:    "fan@example.com",
		})
		if !errors.Is(err, shared.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})
}

func TestClientLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Persists Session", func(t *testing.T) {
		store := session.NewMemoryStore()
		client, _ := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/login" {
				t.Errorf("expected POST /login, got %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(`{"token": "jwt-abc", "user": {"Username": "moviefan", "FavoriteMovies": ["m1"]}}`))
		})

		login, err := client.Login(ctx, models.Credentials{Username: "moviefan", Password: "hunter22"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if login.Token != "jwt-abc" {
			t.Errorf("expected token 'jwt-abc', got %s", login.Token)
		}

		sess, ok, _ := store.Load()
		if !ok {
			t.Fatal("expected a persisted session")
		}
		if sess.Token != "jwt-abc" {
			t.Errorf("expected stored token 'jwt-abc', got %s", sess.Token)
		}
		if !sess.User.HasFavorite("m1") {
			t.Error("expected stored user to carry favorites")
		}
	})

	t.Run("Missing Token Rejected", func(t *testing.T) {
		store := session.NewMemoryStore()
		client, _ := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"user": {"Username": "moviefan"}}`))
		})

		_, err := client.Login(ctx, models.Credentials{Username: "moviefan", Password: "hunter22"})
		if err == nil {
			t.Fatal("expected error for tokenless login response")
		}
		if _, ok, _ := store.Load(); ok {
			t.Error("expected no session to be saved")
		}
	})

	t.Run("Bad Credentials", func(t *testing.T) {
		client, _ := newTestClient(t, session.NewMemoryStore(), func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
		})

		_, err := client.Login(ctx, models.Credentials{Username: "moviefan", Password: "wrong"})
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("Missing Fields Skip Network", func(t *testing.T) {
		client, requests := newTestClient(t, session.NewMemoryStore(), func(w http.ResponseWriter, r *http.Request) {})

		_, err := client.Login(ctx, models.Credentials{Username: "moviefan"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if *requests != 0 {
			t.Errorf("expected no network call, got %d", *requests)
		}
	})
}

func TestClientCatalog(t *testing.T) {
	ctx := context.Background()

	authedStore := func() session.Store {
		store := session.NewMemoryStore()
		store.Save("jwt-abc", models.User{Username: "moviefan"})
		return store
	}

	t.Run("Movies", func(t *testing.T) {
		client, _ := newTestClient(t, authedStore(), func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/movies" {
				t.Errorf("expected /movies, got %s", r.URL.Path)
			}
			w.Write([]byte(`[{"_id": "m1", "Title": "Alien", "Genre": {"Name": "Horror"}}]`))
		})

		movies, err := client.Movies(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(movies) != 1 {
			t.Fatalf("expected 1 movie, got %d", len(movies))
		}
		if movies[0].ID != "m1" {
			t.Errorf("expected ID 'm1', got %s", movies[0].ID)
		}
		if movies[0].Genre.Name != "Horror" {
			t.Errorf("expected genre 'Horror', got %s", movies[0].Genre.Name)
		}
	})

	t.Run("Movie By Title Escapes Path", func(t *testing.T) {
		var gotPath string
		client, _ := newTestClient(t, authedStore(), func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.EscapedPath()
			w.Write([]byte(`{"_id": "m2", "Title": "The Third Man"}`))
		})

		movie, err := client.Movie(ctx, "The Third Man")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if movie.Title != "The Third Man" {
			t.Errorf("expected title 'The Third Man', got %s", movie.Title)
		}
		if gotPath != "/movies/The%20Third%20Man" {
			t.Errorf("expected escaped title in path, got %s", gotPath)
		}
	})

	t.Run("Genre", func(t *testing.T) {
		var gotPath string
		client, _ := newTestClient(t, authedStore(), func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"Name": "Horror", "Description": "Scary."}`))
		})

		genre, err := client.Genre(ctx, "Horror")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotPath != "/movies/genre/Horror" {
			t.Errorf("expected /movies/genre/Horror, got %s", gotPath)
		}
		if genre.Description != "Scary." {
			t.Errorf("unexpected description %q", genre.Description)
		}
	})

	t.Run("Director", func(t *testing.T) {
		var gotPath string
		client, _ := newTestClient(t, authedStore(), func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"Name": "Carol Reed", "Birth": "1906"}`))
		})

		director, err := client.Director(ctx, "Carol Reed")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotPath != "/movies/director/Carol Reed" {
			t.Errorf("expected /movies/director/Carol Reed, got %s", gotPath)
		}
		if director.Birth != "1906" {
			t.Errorf("expected birth '1906', got %s", director.Birth)
		}
	})

	t.Run("Unknown Title", func(t *testing.T) {
		client, _ := newTestClient(t, authedStore(), func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no such movie", http.StatusNotFound)
		})

		_, err := client.Movie(ctx, "Nonexistent")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestClientUser(t *testing.T) {
	ctx := context.Background()

	t.Run("User Leaves Cache Alone", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.Save("jwt-abc", models.User{Username: "moviefan"})
		client, _ := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Username": "moviefan", "FavoriteMovies": ["m1", "m2", "m3"]}`))
		})

		user, err := client.User(ctx, "moviefan")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(user.FavoriteMovies) != 3 {
			t.Errorf("expected 3 favorites, got %d", len(user.FavoriteMovies))
		}

		sess, _, _ := store.Load()
		if len(sess.User.FavoriteMovies) != 0 {
			t.Error("expected the cached user to be untouched by a read")
		}
	})

	t.Run("UpdateUser Refreshes Cache", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.Save("jwt-abc", models.User{Username: "moviefan", Email: "old@example.com"})
		client, _ := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/users/moviefan" {
				t.Errorf("expected PUT /users/moviefan, got %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(`{"Username": "moviefan", "Email": "new@example.com"}`))
		})

		user, err := client.UpdateUser(ctx, "moviefan", models.UserPatch{Email: "new@example.com"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.Email != "new@example.com" {
			t.Errorf("expected updated email, got %s", user.Email)
		}

		sess, _, _ := store.Load()
		if sess.User.Email != "new@example.com" {
			t.Error("expected the cached user to follow the server record")
		}
	})

	t.Run("Empty Patch Skips Network", func(t *testing.T) {
		client, requests := newTestClient(t, session.NewMemoryStore(), func(w http.ResponseWriter, r *http.Request) {})

		_, err := client.UpdateUser(ctx, "moviefan", models.UserPatch{})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if *requests != 0 {
			t.Errorf("expected no network call, got %d", *requests)
		}
	})

	t.Run("DeleteUser Clears Session", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.Save("jwt-abc", models.User{Username: "moviefan"})
		client, _ := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}
			w.WriteHeader(http.StatusOK)
		})

		if err := client.DeleteUser(ctx, "moviefan"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok, _ := store.Load(); ok {
			t.Error("expected session to be cleared after account deletion")
		}
	})

	t.Run("Failed Delete Keeps Session", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.Save("jwt-abc", models.User{Username: "moviefan"})
		client, _ := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		err := client.DeleteUser(ctx, "moviefan")
		if !errors.Is(err, shared.ErrServer) {
			t.Fatalf("expected ErrServer, got %v", err)
		}
		if _, ok, _ := store.Load(); !ok {
			t.Error("expected session to survive a failed delete")
		}
	})
}

func TestClientFavorites(t *testing.T) {
	ctx := context.Background()

	t.Run("Add Returns Server Record", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.Save("jwt-abc", models.User{Username: "moviefan"})
		var gotMethod, gotPath string
		client, _ := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
			gotMethod, gotPath = r.Method, r.URL.Path
			w.Write([]byte(`{"Username": "moviefan", "FavoriteMovies": ["m1"]}`))
		})

		user, err := client.AddFavorite(ctx, "moviefan", "m1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotMethod != http.MethodPost || gotPath != "/users/moviefan/movies/m1" {
			t.Errorf("expected POST /users/moviefan/movies/m1, got %s %s", gotMethod, gotPath)
		}
		if user == nil || !user.HasFavorite("m1") {
			t.Error("expected server record with the new favorite")
		}

		sess, _, _ := store.Load()
		if len(sess.User.FavoriteMovies) != 0 {
			t.Error("expected the client to leave the session store untouched")
		}
	})

	t.Run("Remove Uses Delete", func(t *testing.T) {
		var gotMethod string
		store := session.NewMemoryStore()
		store.Save("jwt-abc", models.User{Username: "moviefan"})
		client, _ := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			w.Write([]byte(`{"Username": "moviefan", "FavoriteMovies": []}`))
		})

		if _, err := client.RemoveFavorite(ctx, "moviefan", "m1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotMethod != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", gotMethod)
		}
	})

	t.Run("Acknowledgement Only Response", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.Save("jwt-abc", models.User{Username: "moviefan"})
		client, _ := newTestClient(t, store, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`"m1 was added"`))
		})

		user, err := client.AddFavorite(ctx, "moviefan", "m1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user != nil {
			t.Errorf("expected nil user for acknowledgement-only response, got %+v", user)
		}
	})
}
