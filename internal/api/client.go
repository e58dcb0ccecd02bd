package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tmattson/flix/internal/models"
	"github.com/tmattson/flix/internal/session"
)

// Client exposes one method per backend operation. Input validation happens
// locally before dispatch; everything else is delegated to the [Gateway].
//
// Session writes are confined to the operations that change session
// validity: Login saves, UpdateUser refreshes the cached record, DeleteUser
// clears. The favorites mutations deliberately leave the store alone; that
// reconciliation belongs to the favorites package.
type Client struct {
	gateway *Gateway
	store   session.Store
}

// NewClient creates a Client sharing the gateway's session store.
func NewClient(gateway *Gateway, store session.Store) *Client {
	return &Client{gateway: gateway, store: store}
}

// Register creates a new account via POST /users. Registration does not log
// the user in; no session is saved.
func (c *Client) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	payload, err := c.gateway.Do(ctx, http.MethodPost, "/users", reg, false)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

// Login authenticates via POST /login and persists the returned
// {token, user} pair. This is the only operation that calls Store.Save.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	payload, err := c.gateway.Do(ctx, http.MethodPost, "/login", creds, false)
	if err != nil {
		return nil, err
	}

	var login models.LoginResponse
	if err := json.Unmarshal(payload, &login); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if login.Token == "" {
		return nil, fmt.Errorf("login response missing token")
	}

	if err := c.store.Save(login.Token, login.User); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &login, nil
}

// Movies retrieves the full catalog via GET /movies.
func (c *Client) Movies(ctx context.Context) ([]models.Movie, error) {
	payload, err := c.gateway.Do(ctx, http.MethodGet, "/movies", nil, true)
	if err != nil {
		return nil, err
	}

	var movies []models.Movie
	if err := json.Unmarshal(payload, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}

	return movies, nil
}

// Movie retrieves a single catalog entry via GET /movies/{title}.
func (c *Client) Movie(ctx context.Context, title string) (*models.Movie, error) {
	payload, err := c.gateway.Do(ctx, http.MethodGet, "/movies/"+url.PathEscape(title), nil, true)
	if err != nil {
		return nil, err
	}

	var movie models.Movie
	if err := json.Unmarshal(payload, &movie); err != nil {
		return nil, fmt.Errorf("failed to decode movie: %w", err)
	}

	return &movie, nil
}

// Genre retrieves genre detail via GET /movies/genre/{name}.
func (c *Client) Genre(ctx context.Context, name string) (*models.Genre, error) {
	payload, err := c.gateway.Do(ctx, http.MethodGet, "/movies/genre/"+url.PathEscape(name), nil, true)
	if err != nil {
		return nil, err
	}

	var genre models.Genre
	if err := json.Unmarshal(payload, &genre); err != nil {
		return nil, fmt.Errorf("failed to decode genre: %w", err)
	}

	return &genre, nil
}

// Director retrieves director detail via GET /movies/director/{name}.
func (c *Client) Director(ctx context.Context, name string) (*models.Director, error) {
	payload, err := c.gateway.Do(ctx, http.MethodGet, "/movies/director/"+url.PathEscape(name), nil, true)
	if err != nil {
		return nil, err
	}

	var director models.Director
	if err := json.Unmarshal(payload, &director); err != nil {
		return nil, fmt.Errorf("failed to decode director: %w", err)
	}

	return &director, nil
}

// User retrieves the path-identified user record via GET /users/{username}.
// The cached session user is not touched; reads keep the server
// authoritative without adding a cache writer.
func (c *Client) User(ctx context.Context, username string) (*models.User, error) {
	payload, err := c.gateway.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, true)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

// UpdateUser edits the profile via PUT /users/{username}. On success the
// cached session user is overwritten wholesale with the server's record.
func (c *Client) UpdateUser(ctx context.Context, username string, patch models.UserPatch) (*models.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	payload, err := c.gateway.Do(ctx, http.MethodPut, "/users/"+url.PathEscape(username), patch, true)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	if err := c.store.UpdateUser(user); err != nil {
		return nil, fmt.Errorf("failed to update cached user: %w", err)
	}

	return &user, nil
}

// DeleteUser removes the account via DELETE /users/{username} and clears the
// session.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	if _, err := c.gateway.Do(ctx, http.MethodDelete, "/users/"+url.PathEscape(username), nil, true); err != nil {
		return err
	}

	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

// AddFavorite adds movieID to the user's favorites via
// POST /users/{username}/movies/{movieID} and returns the server's updated
// user record. The session store is left untouched.
func (c *Client) AddFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	return c.favoriteMutation(ctx, http.MethodPost, username, movieID)
}

// RemoveFavorite removes movieID from the user's favorites via
// DELETE /users/{username}/movies/{movieID}. The session store is left
// untouched.
func (c *Client) RemoveFavorite(ctx context.Context, username, movieID string) (*models.User, error) {
	return c.favoriteMutation(ctx, http.MethodDelete, username, movieID)
}

func (c *Client) favoriteMutation(ctx context.Context, method, username, movieID string) (*models.User, error) {
	path := "/users/" + url.PathEscape(username) + "/movies/" + url.PathEscape(movieID)

	payload, err := c.gateway.Do(ctx, method, path, nil, true)
	if err != nil {
		return nil, err
	}

	// Some backend revisions answer with the updated user record, others
	// with a bare acknowledgement; tolerate both.
	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, nil
	}
	if user.Username == "" {
		return nil, nil
	}

	return &user, nil
}
