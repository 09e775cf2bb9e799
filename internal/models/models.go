// package models defines the data model for the movie browser
package models

import (
	"strings"
)

// Movie is a single title as returned by the Movie API.
//
// JSON field names match the API payload, which is also the format persisted for favorites.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

// Year returns the year portion of the release date, or an empty string when unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// PosterURL joins the image base with the movie's poster path.
func (m Movie) PosterURL(base string) string {
	return PosterURL(base, m.PosterPath)
}

// PosterURL builds an image URL from a fixed base and a per-movie poster path.
//
// Returns an empty string when the movie has no poster.
func PosterURL(base, posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(posterPath, "/")
}

// Page is one page of movie results.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Movies returns the page's results, substituting an empty list when the payload omitted them.
func (p *Page) Movies() []Movie {
	if p == nil || p.Results == nil {
		return []Movie{}
	}
	return p.Results
}

// CopyMovies returns a copy of movies that never aliases the input.
func CopyMovies(movies []Movie) []Movie {
	out := make([]Movie, len(movies))
	copy(out, movies)
	return out
}
