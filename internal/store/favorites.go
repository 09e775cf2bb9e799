package store

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviebox/internal/models"
)

// FavoritesRepository is the get-all/replace-all persistence behind [Favorites].
type FavoritesRepository interface {
	Load(ctx context.Context) ([]models.Movie, error)
	Save(ctx context.Context, movies []models.Movie) error
}

// Favorites holds the user's saved movies in insertion order.
//
// Every mutation writes the full list through to the repository before it is applied in memory,
// so a failed write leaves the store exactly as it was.
type Favorites struct {
	mu     sync.RWMutex
	repo   FavoritesRepository
	logger *log.Logger
	movies []models.Movie
}

// NewFavorites rehydrates favorites from repo.
//
// Missing or unreadable data yields an empty list; the failure is logged, never returned.
func NewFavorites(ctx context.Context, repo FavoritesRepository, logger *log.Logger) *Favorites {
	f := &Favorites{repo: repo, logger: logger, movies: []models.Movie{}}

	movies, err := repo.Load(ctx)
	if err != nil {
		logger.Warn("starting with empty favorites", "err", err)
		return f
	}

	f.movies = models.CopyMovies(movies)
	logger.Debug("loaded favorites", "count", len(f.movies))
	return f
}

// Add appends movie and persists the list. The same id may be added more than once.
func (f *Favorites) Add(ctx context.Context, movie models.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make([]models.Movie, len(f.movies), len(f.movies)+1)
	copy(next, f.movies)
	next = append(next, movie)

	return f.commit(ctx, next)
}

// Remove drops every entry with id and persists the list, even when nothing matched.
func (f *Favorites) Remove(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make([]models.Movie, 0, len(f.movies))
	for _, m := range f.movies {
		if m.ID != id {
			next = append(next, m)
		}
	}

	return f.commit(ctx, next)
}

// Clear removes every favorite and persists the empty list.
func (f *Favorites) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commit(ctx, []models.Movie{})
}

// commit must be called with the write lock held.
func (f *Favorites) commit(ctx context.Context, next []models.Movie) error {
	if err := f.repo.Save(ctx, next); err != nil {
		f.logger.Error("failed to persist favorites", "count", len(next), "err", err)
		return err
	}
	f.movies = next
	return nil
}

// List returns a copy of the favorites in insertion order
func (f *Favorites) List() []models.Movie {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return models.CopyMovies(f.movies)
}

// Len returns the number of entries, duplicates included
func (f *Favorites) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.movies)
}

// Contains reports whether any entry has id
func (f *Favorites) Contains(id int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, m := range f.movies {
		if m.ID == id {
			return true
		}
	}
	return false
}
