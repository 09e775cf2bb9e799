// package services defines interface MovieAPI for interacting with the Movie API
//
// TMDB (api.themoviedb.org/3)
package services

import (
	"context"

	"github.com/desertthunder/moviebox/internal/models"
)

// MovieAPI defines the read-only operations the application consumes from the external Movie API.
type MovieAPI interface {
	// Popular retrieves the first page of the current popular-movies listing.
	Popular(ctx context.Context) (*models.Page, error)

	// Search retrieves the first page of movies whose title matches query.
	Search(ctx context.Context, query string) (*models.Page, error)

	// Movie retrieves a single movie by ID.
	// Returns [shared.ErrMovieNotFound] when the API has no such movie.
	Movie(ctx context.Context, id int) (*models.Movie, error)

	// Name returns the name of the service (e.g., "TMDB")
	Name() string
}
