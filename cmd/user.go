package main

import (
	"context"
	"fmt"

	"github.com/tmattson/flix/internal/models"
	"github.com/tmattson/flix/internal/session"
	"github.com/tmattson/flix/internal/shared"
	"github.com/urfave/cli/v3"
)

// UserShow fetches the full profile from the server.
func (r *Runner) UserShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	sess, err := r.requireSession()
	if err != nil {
		return err
	}

	user, err := r.client.User(ctx, sess.User.Username)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	r.writePlain("Username: %s\n", user.Username)
	r.writePlain("Email: %s\n", user.Email)
	if user.Birthday != "" {
		r.writePlain("Birthday: %s\n", user.Birthday)
	}
	r.writePlain("Favorites: %d\n", len(user.FavoriteMovies))
	return nil
}

// UserEdit updates profile fields on the server and refreshes the
// cached user on success.
func (r *Runner) UserEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	sess, err := r.requireSession()
	if err != nil {
		return err
	}

	patch := models.UserPatch{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Email:    cmd.String("email"),
		Birthday: cmd.String("birthday"),
	}

	user, err := r.client.UpdateUser(ctx, sess.User.Username, patch)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	r.logger.Info("profile updated", "username", user.Username)

	r.writePlain("✓ Profile updated for %s\n", user.Username)
	return nil
}

// UserDelete removes the account on the server and clears the session.
func (r *Runner) UserDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	sess, err := r.requireSession()
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: deleting an account is permanent, re-run with --yes to confirm", shared.ErrInvalidArgument)
	}

	if err := r.client.DeleteUser(ctx, sess.User.Username); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	r.logger.Info("account deleted", "username", sess.User.Username)

	r.writePlain("✓ Account %s deleted\n", sess.User.Username)
	return nil
}

// requireSession loads the persisted session and fails when absent.
func (r *Runner) requireSession() (session.Session, error) {
	sess, ok, err := r.store.Load()
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return session.Session{}, fmt.Errorf("%w: run 'flix auth login' first", shared.ErrNotAuthenticated)
	}
	return sess, nil
}
