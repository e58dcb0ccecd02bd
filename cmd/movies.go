package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmattson/flix/internal/formatter"
	"github.com/tmattson/flix/internal/models"
	"github.com/tmattson/flix/internal/shared"
	"github.com/urfave/cli/v3"
)

// MovieList fetches the full catalog and prints or exports it.
func (r *Runner) MovieList(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	movies, err := r.client.Movies(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch movies: %w", err)
	}

	r.logger.Info("fetched catalog", "count", len(movies))

	if format := cmd.String("format"); format != "" {
		return r.exportMovies(movies, format, cmd.String("output"))
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d movies\n", len(movies))
	for i, movie := range movies {
		marker := " "
		if r.reconciler.IsFavorite(movie.ID) {
			marker = "★"
		}
		r.writePlain("%3d. %s %s (%s)\n", i+1, marker, movie.Title, movie.Genre.Name)
	}
	return nil
}

// MovieGet fetches a single movie by title.
func (r *Runner) MovieGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: movie title is required", shared.ErrMissingArgument)
	}

	movie, err := r.client.Movie(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to fetch movie: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", movie.Title)
	r.writePlain("Genre: %s | Director: %s\n", movie.Genre.Name, movie.Director.Name)
	if movie.Featured {
		r.writePlain("Featured\n")
	}
	if r.reconciler.IsFavorite(movie.ID) {
		r.writePlain("★ In your favorites\n")
	}
	r.writePlainln("%s", movie.Description)
	return nil
}

// GenreGet fetches genre details by name.
func (r *Runner) GenreGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: genre name is required", shared.ErrMissingArgument)
	}

	genre, err := r.client.Genre(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to fetch genre: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genre, cmd.Bool("pretty"))
	}

	r.writePlain("%s\n", genre.Name)
	r.writePlainln("%s", genre.Description)
	return nil
}

// DirectorGet fetches director details by name.
func (r *Runner) DirectorGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(); err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: director name is required", shared.ErrMissingArgument)
	}

	director, err := r.client.Director(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to fetch director: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(director, cmd.Bool("pretty"))
	}

	r.writePlain("%s", director.Name)
	if director.Birth != "" {
		r.writePlain(" (b. %s", director.Birth)
		if director.Death != "" {
			r.writePlain(", d. %s", director.Death)
		}
		r.writePlain(")")
	}
	r.writePlain("\n")
	r.writePlainln("%s", director.Bio)
	return nil
}

func (r *Runner) exportMovies(movies []models.Movie, format, outputPath string) error {
	var content []byte
	var err error

	switch strings.ToLower(format) {
	case "csv":
		content, err = formatter.ExportToCSV(movies, r.reconciler.IsFavorite)
	case "markdown", "md":
		content, err = formatter.ExportToMarkdown("Movie Catalog", movies, r.reconciler.IsFavorite)
	case "text", "txt":
		content, err = formatter.ExportToText(movies, r.reconciler.IsFavorite)
	default:
		return fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return fmt.Errorf("failed to format movies: %w", err)
	}

	if outputPath == "" {
		return r.writePlain("%s", content)
	}

	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	r.writePlain("✓ Exported %d movies to %s\n", len(movies), outputPath)
	return nil
}
