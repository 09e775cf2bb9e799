package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/services"
)

// ErrStaleResponse is returned when a fetch completed after a newer fetch was started.
// Its result is discarded and the catalog keeps the newer data.
var ErrStaleResponse = errors.New("stale response discarded")

// Catalog holds the movies currently on display, either the popular listing or search results,
// together with the search query that produced them.
type Catalog struct {
	mu         sync.RWMutex
	api        services.MovieAPI
	logger     *log.Logger
	movies     []models.Movie
	query      string
	searching  bool
	generation uint64
}

// NewCatalog creates an empty catalog in browse mode
func NewCatalog(api services.MovieAPI, logger *log.Logger) *Catalog {
	return &Catalog{api: api, logger: logger, movies: []models.Movie{}}
}

// LoadPopular replaces the catalog with the popular listing.
//
// On failure the catalog is left untouched and the error is logged and returned.
func (c *Catalog) LoadPopular(ctx context.Context) error {
	return c.fetch(ctx, "popular", func(ctx context.Context) (*models.Page, error) {
		return c.api.Popular(ctx)
	})
}

// Search records query and replaces the catalog with matching movies.
//
// A query that is empty after trimming leaves search mode and loads the popular listing instead.
func (c *Catalog) Search(ctx context.Context, query string) error {
	trimmed := strings.TrimSpace(query)

	c.mu.Lock()
	c.query = query
	c.searching = trimmed != ""
	c.mu.Unlock()

	if trimmed == "" {
		return c.LoadPopular(ctx)
	}

	return c.fetch(ctx, "search", func(ctx context.Context) (*models.Page, error) {
		return c.api.Search(ctx, trimmed)
	})
}

// Reset clears the query, leaves search mode, and loads the popular listing.
func (c *Catalog) Reset(ctx context.Context) error {
	return c.Search(ctx, "")
}

// Refresh reloads the popular listing unless a search is active.
func (c *Catalog) Refresh(ctx context.Context) error {
	if c.IsSearching() {
		c.logger.Debug("skipping popular refresh while searching", "query", c.Query())
		return nil
	}
	return c.LoadPopular(ctx)
}

// fetch runs load outside the lock and applies its result only if no newer fetch has started since.
func (c *Catalog) fetch(ctx context.Context, kind string, load func(context.Context) (*models.Page, error)) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	page, err := load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Error("failed to fetch movies", "kind", kind, "generation", gen, "err", err)
		if gen != c.generation {
			return ErrStaleResponse
		}
		return err
	}

	if gen != c.generation {
		c.logger.Debug("discarding stale response", "kind", kind, "generation", gen, "latest", c.generation)
		return ErrStaleResponse
	}

	c.movies = models.CopyMovies(page.Movies())
	return nil
}

// Movies returns a copy of the catalog in API response order
func (c *Catalog) Movies() []models.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.CopyMovies(c.movies)
}

// Len returns the number of movies in the catalog
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.movies)
}

// Find returns the first catalog movie with id
func (c *Catalog) Find(id int) (models.Movie, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.movies {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

// Query returns the search box contents
func (c *Catalog) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// SetQuery updates the search box contents without fetching
func (c *Catalog) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
}

// IsSearching reports whether the catalog holds search results
func (c *Catalog) IsSearching() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searching
}
