// package formatter provides functions to export movie lists to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/shared"
)

// Format names accepted by [Export] and [WriteExport].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
)

const overviewWidth = 72

// Formats lists the supported export formats
func Formats() []string {
	return []string{FormatJSON, FormatCSV, FormatMarkdown, FormatText}
}

// Extension returns the file extension for format, without the dot.
func Extension(format string) string {
	switch format {
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return "json"
	}
}

// ExportToCSV converts movies to CSV format with columns: ID, Title, Release Date, Rating, Poster
func ExportToCSV(movies []models.Movie, imageBase string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Release Date", "Rating", "Poster"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range movies {
		record := []string{
			strconv.Itoa(m.ID),
			m.Title,
			m.ReleaseDate,
			strconv.FormatFloat(m.VoteAverage, 'f', 1, 64),
			m.PosterURL(imageBase),
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

// ExportToMarkdown converts movies to a Markdown document, linking (not embedding) poster images
func ExportToMarkdown(movies []models.Movie, imageBase string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Favorites\n\n")
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(movies)))

	for i, m := range movies {
		buf.WriteString(fmt.Sprintf("## %d. %s%s\n\n", i+1, m.Title, yearSuffix(m)))
		if poster := m.PosterURL(imageBase); poster != "" {
			buf.WriteString(fmt.Sprintf("![%s](%s)\n\n", m.Title, poster))
		}
		buf.WriteString(fmt.Sprintf("**Rating**: %.1f\n\n", m.VoteAverage))
		if m.Overview != "" {
			buf.WriteString(m.Overview + "\n\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts movies to plain text, one title per line with a shortened overview
func ExportToText(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Favorites: %d\n\n", len(movies)))

	for i, m := range movies {
		buf.WriteString(fmt.Sprintf("%d. %s%s [%.1f]\n", i+1, m.Title, yearSuffix(m), m.VoteAverage))
		if m.Overview != "" {
			buf.WriteString("   " + ansi.Truncate(m.Overview, overviewWidth, "…") + "\n")
		}
	}

	return buf.Bytes(), nil
}

// Export renders movies in format; unknown formats are rejected with [shared.ErrInvalidArgument]
func Export(format string, movies []models.Movie, imageBase string) ([]byte, error) {
	switch normalize(format) {
	case FormatJSON:
		if movies == nil {
			movies = []models.Movie{}
		}
		return shared.MarshalJSON(movies, true)
	case FormatCSV:
		return ExportToCSV(movies, imageBase)
	case FormatMarkdown:
		return ExportToMarkdown(movies, imageBase)
	case FormatText:
		return ExportToText(movies)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q (use one of %s)", shared.ErrInvalidArgument, format, strings.Join(Formats(), ", "))
	}
}

// WriteExport renders movies in format and writes them to path, creating parent directories.
//
// Defaults to favorites.{ext} in the working directory.
func WriteExport(format string, movies []models.Movie, path, imageBase string) (string, error) {
	data, err := Export(format, movies, imageBase)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = "favorites." + Extension(normalize(format))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// normalize maps format aliases onto the canonical names
func normalize(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "":
		return FormatJSON
	case "md":
		return FormatMarkdown
	case "text":
		return FormatText
	default:
		return f
	}
}

func yearSuffix(m models.Movie) string {
	if y := m.Year(); y != "" {
		return " (" + y + ")"
	}
	return ""
}
