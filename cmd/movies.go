package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/store"
	"github.com/urfave/cli/v3"
)

// Popular prints the popular listing.
func (r *Runner) Popular(ctx context.Context, cmd *cli.Command) error {
	api, err := r.requireAPI()
	if err != nil {
		return err
	}

	catalog := store.NewCatalog(api, r.logger)
	if err := catalog.LoadPopular(ctx); err != nil {
		return fmt.Errorf("failed to load popular movies: %w", err)
	}

	return r.writeCatalog(cmd, "Popular movies", catalog.Movies())
}

// Search prints movies matching the query argument. An empty query prints the popular listing.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	api, err := r.requireAPI()
	if err != nil {
		return err
	}

	query := cmd.StringArg("query")
	catalog := store.NewCatalog(api, r.logger)
	if err := catalog.Search(ctx, query); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	title := "Popular movies"
	if catalog.IsSearching() {
		title = fmt.Sprintf("Results for %q", strings.TrimSpace(query))
	}
	return r.writeCatalog(cmd, title, catalog.Movies())
}

// Details prints a single movie looked up by id.
func (r *Runner) Details(ctx context.Context, cmd *cli.Command) error {
	api, err := r.requireAPI()
	if err != nil {
		return err
	}

	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	movie, err := api.Movie(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movie, cmd.Bool("pretty"))
	}
	return r.writeMovie(*movie)
}

func (r *Runner) writeCatalog(cmd *cli.Command, title string, movies []models.Movie) error {
	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}
	r.writePlainHeader(title)
	return r.writeMovies(movies)
}

func (r *Runner) writeMovie(m models.Movie) error {
	r.writePlainHeader(m.Title)
	r.writePlain("ID:       %d\n", m.ID)
	r.writePlain("Released: %s\n", orUnknown(m.ReleaseDate))
	r.writePlain("Rating:   %.1f\n", m.VoteAverage)
	if poster := m.PosterURL(r.config.TMDB.ImageBaseURL); poster != "" {
		r.writePlain("Poster:   %s\n", poster)
	}
	if m.Overview != "" {
		return r.writePlainln("%s", m.Overview)
	}
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
