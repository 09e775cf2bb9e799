package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/moviebox/internal/formatter"
	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/tasks"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the stored favorites, optionally fuzzy-filtered by title.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	favs, err := r.favorites(ctx)
	if err != nil {
		return err
	}

	movies := filterMovies(favs.List(), cmd.String("filter"))
	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(movies)))
	return r.writeMovies(movies)
}

// FavoritesAdd looks up a movie by id and appends it to favorites.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
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

	favs, err := r.favorites(ctx)
	if err != nil {
		return err
	}
	if err := favs.Add(ctx, *movie); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return r.writePlain("✓ Added %s (%d) to favorites\n", movie.Title, movie.ID)
}

// FavoritesRemove removes every favorite with the id.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	favs, err := r.favorites(ctx)
	if err != nil {
		return err
	}

	before := favs.Len()
	if err := favs.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	removed := before - favs.Len()
	if removed == 0 {
		return r.writePlain("No favorites with id %d\n", id)
	}
	return r.writePlain("✓ Removed %d favorite(s) with id %d\n", removed, id)
}

// FavoritesClear removes all favorites.
func (r *Runner) FavoritesClear(ctx context.Context, cmd *cli.Command) error {
	favs, err := r.favorites(ctx)
	if err != nil {
		return err
	}

	n := favs.Len()
	if err := favs.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	return r.writePlain("✓ Cleared %d favorite(s)\n", n)
}

// FavoritesExport writes favorites to a file in the requested format.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	favs, err := r.favorites(ctx)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(cmd.String("format"), favs.List(), cmd.String("output"), r.config.TMDB.ImageBaseURL)
	if err != nil {
		return err
	}

	r.logger.Info("exported favorites", "path", path, "count", favs.Len())
	return r.writePlain("✓ Exported %d favorite(s) to %s\n", favs.Len(), path)
}

type checkRow struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	Current string `json:"current_title,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FavoritesCheck looks up every favorite against the Movie API and reports stale or missing entries.
func (r *Runner) FavoritesCheck(ctx context.Context, cmd *cli.Command) error {
	api, err := r.requireAPI()
	if err != nil {
		return err
	}

	favs, err := r.favorites(ctx)
	if err != nil {
		return err
	}

	asJSON := cmd.Bool("json")
	progress := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.logger.Debug("check progress", "phase", update.Phase, "step", update.Step, "total", update.Total)
			if asJSON || update.Phase == tasks.CheckComplete {
				continue
			}
			r.writePlain("%s\n", update.Message)
		}
	}()

	engine := tasks.NewEngine(api)
	report, err := engine.CheckFavorites(ctx, progress, favs.List(), tasks.CheckOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(progress)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("favorites check failed: %w", err)
	}

	if !asJSON {
		return r.writePlainln("Done: %d unchanged, %d updated upstream, %d missing, %d failed",
			report.Unchanged, report.Updated, report.Missing, report.Failed)
	}

	rows := make([]checkRow, 0, len(report.Results))
	for _, res := range report.Results {
		row := checkRow{ID: res.Favorite.ID, Title: res.Favorite.Title, Status: res.Status.String()}
		if res.Current != nil && res.Current.Title != res.Favorite.Title {
			row.Current = res.Current.Title
		}
		if res.Error != nil {
			row.Error = res.Error.Error()
		}
		rows = append(rows, row)
	}
	return r.writeJSON(rows, true)
}

// filterMovies keeps the movies whose title fuzzy-matches query, preserving list order.
func filterMovies(movies []models.Movie, query string) []models.Movie {
	query = strings.TrimSpace(query)
	if query == "" {
		return movies
	}

	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}

	matched := make(map[int]bool)
	for _, rank := range fuzzy.RankFindNormalizedFold(query, titles) {
		matched[rank.OriginalIndex] = true
	}

	out := make([]models.Movie, 0, len(matched))
	for i, m := range movies {
		if matched[i] {
			out = append(out, m)
		}
	}
	return out
}
