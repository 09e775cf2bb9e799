// Package models defines the domain entities shared by the stores, services, and views.
//
//   - [Movie] : a title from the Movie API; never edited locally, only copied
//   - [Page] : one page of API results, with [Page.Movies] defaulting missing results to empty
//
// Poster images are addressed with [PosterURL], which joins a fixed image base with the movie's poster path.
// The images themselves are opaque to the application.
package models
