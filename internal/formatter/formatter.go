// package formatter exports movie listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/tmattson/flix/internal/models"
)

// ExportToCSV converts a movie listing to CSV with columns: ID, Title, Genre, Director, Featured, Favorite
func ExportToCSV(movies []models.Movie, isFavorite func(string) bool) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Genre", "Director", "Featured", "Favorite"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		record := []string{
			movie.ID,
			movie.Title,
			movie.Genre.Name,
			movie.Director.Name,
			strconv.FormatBool(movie.Featured),
			strconv.FormatBool(isFavorite != nil && isFavorite(movie.ID)),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a movie listing to a Markdown document.
func ExportToMarkdown(title string, movies []models.Movie, isFavorite func(string) bool) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(movies)))

	for i, movie := range movies {
		marker := ""
		if isFavorite != nil && isFavorite(movie.ID) {
			marker = " ★"
		}
		buf.WriteString(fmt.Sprintf("%d. **%s**%s - %s (%s)\n", i+1, movie.Title, marker, movie.Director.Name, movie.Genre.Name))
		if movie.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", movie.Description))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a movie listing to plain text.
func ExportToText(movies []models.Movie, isFavorite func(string) bool) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(movies)))

	for i, movie := range movies {
		marker := " "
		if isFavorite != nil && isFavorite(movie.ID) {
			marker = "★"
		}
		buf.WriteString(fmt.Sprintf("%d. %s %s - %s\n", i+1, marker, movie.Title, movie.Director.Name))
	}

	return buf.Bytes(), nil
}
