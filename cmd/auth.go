package main

import (
	"context"
	"fmt"

	"github.com/tmattson/flix/internal/models"
	"github.com/urfave/cli/v3"
)

// Register creates a new account on the remote API.
//
// Registration does not log the user in; the server expects a separate
// login call to issue a token.
func (r *Runner) Register(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	reg := models.Registration{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Email:    cmd.String("email"),
		Birthday: cmd.String("birthday"),
	}

	user, err := r.client.Register(ctx, reg)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	r.logger.Info("account created", "username", user.Username)

	r.writePlain("✓ Account created for %s\n", user.Username)
	r.writePlain("Run 'flix auth login -u %s -p <password>' to log in\n", user.Username)
	return nil
}

// Login authenticates with the remote API and persists the session.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	creds := models.Credentials{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
	}

	login, err := r.client.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	r.logger.Info("logged in", "username", login.User.Username)

	r.writePlain("✓ Logged in as %s\n", login.User.Username)
	return nil
}

// Logout clears the persisted session. Clearing an absent session is not
// an error.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.writePlain("✓ Logged out\n")
	return nil
}

// WhoAmI prints the cached user from the persisted session without
// contacting the server.
func (r *Runner) WhoAmI(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	sess, ok, err := r.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		r.writePlain("Not logged in\n")
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(sess.User, true)
	}

	r.writePlain("Logged in as %s", sess.User.Username)
	if sess.User.Email != "" {
		r.writePlain(" (%s)", sess.User.Email)
	}
	r.writePlain("\n")
	r.writePlain("Favorites: %d\n", len(sess.User.FavoriteMovies))
	return nil
}
