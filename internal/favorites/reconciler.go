// package favorites keeps the cached favorite-movie list consistent with
// server-confirmed mutations
package favorites

import (
	"context"
	"fmt"
	"slices"

	"github.com/tmattson/flix/internal/api"
	"github.com/tmattson/flix/internal/models"
	"github.com/tmattson/flix/internal/session"
	"github.com/tmattson/flix/internal/shared"
)

// Reconciler answers favorite-membership queries from the cached session
// user and applies add/remove mutations confirm-then-update: the cache
// changes only after the server has accepted the mutation, so a failure
// leaves the visible state untouched.
type Reconciler struct {
	client *api.Client
	store  session.Store
}

// NewReconciler creates a Reconciler sharing the client's session store.
func NewReconciler(client *api.Client, store session.Store) *Reconciler {
	return &Reconciler{client: client, store: store}
}

// IsFavorite reports cached membership without a network round trip.
// No session means false.
func (r *Reconciler) IsFavorite(movieID string) bool {
	sess, ok, err := r.store.Load()
	if err != nil || !ok {
		return false
	}
	return sess.User.HasFavorite(movieID)
}

// Favorites returns a snapshot of the cached favorite movie IDs.
func (r *Reconciler) Favorites() []string {
	sess, ok, err := r.store.Load()
	if err != nil || !ok {
		return nil
	}
	return slices.Clone(sess.User.FavoriteMovies)
}

// Toggle flips the favorite state of movieID: it issues the inverse of the
// current cached membership and, once the server confirms, rewrites the
// cached user record. Returns the resulting membership.
//
// Overlapping toggles for the same movie are not serialized; whichever
// response settles last wins, and a pair of racing toggles can bounce the
// state back. Callers that need strict ordering must await each call.
func (r *Reconciler) Toggle(ctx context.Context, movieID string) (bool, error) {
	sess, err := r.activeSession()
	if err != nil {
		return false, err
	}

	if sess.User.HasFavorite(movieID) {
		if err := r.remove(ctx, sess, movieID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := r.add(ctx, sess, movieID); err != nil {
		return false, err
	}
	return true, nil
}

// Add performs a confirmed favorite addition for the logged-in user.
func (r *Reconciler) Add(ctx context.Context, movieID string) error {
	sess, err := r.activeSession()
	if err != nil {
		return err
	}
	return r.add(ctx, sess, movieID)
}

// Remove performs a confirmed favorite removal for the logged-in user.
func (r *Reconciler) Remove(ctx context.Context, movieID string) error {
	sess, err := r.activeSession()
	if err != nil {
		return err
	}
	return r.remove(ctx, sess, movieID)
}

func (r *Reconciler) activeSession() (session.Session, error) {
	sess, ok, err := r.store.Load()
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return session.Session{}, fmt.Errorf("%w: no active session", shared.ErrNotAuthenticated)
	}
	return sess, nil
}

func (r *Reconciler) add(ctx context.Context, sess session.Session, movieID string) error {
	updated, err := r.client.AddFavorite(ctx, sess.User.Username, movieID)
	if err != nil {
		return err
	}

	user := merge(sess.User, updated)
	if !user.HasFavorite(movieID) {
		user.FavoriteMovies = append(user.FavoriteMovies, movieID)
	}

	return r.writeBack(sess, user)
}

func (r *Reconciler) remove(ctx context.Context, sess session.Session, movieID string) error {
	updated, err := r.client.RemoveFavorite(ctx, sess.User.Username, movieID)
	if err != nil {
		return err
	}

	user := merge(sess.User, updated)
	user.FavoriteMovies = slices.DeleteFunc(user.FavoriteMovies, func(id string) bool {
		return id == movieID
	})

	return r.writeBack(sess, user)
}

// merge prefers the server's user record when the mutation returned one,
// falling back to the cached record for acknowledgement-only responses.
func merge(cached models.User, updated *models.User) models.User {
	if updated != nil {
		return *updated
	}
	cached.FavoriteMovies = slices.Clone(cached.FavoriteMovies)
	return cached
}

// writeBack persists the reconciled user record, unless the session changed
// while the request was in flight. A response that lands after logout (or
// after a re-login under a different token) is discarded, never applied to
// a session it does not belong to.
func (r *Reconciler) writeBack(issued session.Session, user models.User) error {
	current, ok, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !ok || current.Token != issued.Token {
		return nil
	}

	if err := r.store.UpdateUser(user); err != nil {
		return fmt.Errorf("failed to update cached user: %w", err)
	}

	return nil
}
