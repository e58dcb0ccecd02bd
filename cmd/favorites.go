package main

import (
	"context"
	"fmt"

	"github.com/tmattson/flix/internal/shared"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the favorite movie IDs from the cached user.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	favorites := r.reconciler.Favorites()

	if cmd.Bool("json") {
		return r.writeJSON(favorites, true)
	}

	if len(favorites) == 0 {
		r.writePlain("No favorites yet\n")
		return nil
	}

	r.writePlain("%d favorite movies\n", len(favorites))
	for _, id := range favorites {
		r.writePlain("  %s\n", id)
	}
	return nil
}

// FavoritesAdd adds a movie to the user's favorites.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	movieID := cmd.StringArg("movie-id")
	if movieID == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	if err := r.reconciler.Add(ctx, movieID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	r.writePlain("✓ Added %s to favorites\n", movieID)
	return nil
}

// FavoritesRemove removes a movie from the user's favorites.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	movieID := cmd.StringArg("movie-id")
	if movieID == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	if err := r.reconciler.Remove(ctx, movieID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	r.writePlain("✓ Removed %s from favorites\n", movieID)
	return nil
}

// FavoritesToggle flips a movie's favorite status.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	movieID := cmd.StringArg("movie-id")
	if movieID == "" {
		return fmt.Errorf("%w: movie ID is required", shared.ErrMissingArgument)
	}

	nowFavorite, err := r.reconciler.Toggle(ctx, movieID)
	if err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}

	if nowFavorite {
		r.writePlain("✓ Added %s to favorites\n", movieID)
	} else {
		r.writePlain("✓ Removed %s from favorites\n", movieID)
	}
	return nil
}
