// Package services defines the [MovieAPI] interface for the external Movie API and implements it for TMDB.
//
// # MovieAPI Interface
//
// The stores depend only on [MovieAPI], so tests substitute a fake and the HTTP client stays replaceable.
// Two listing endpoints are consumed (popular, search by title) plus a single-movie lookup used by the CLI.
//
// # TMDB Implementation
//
// [TMDBService] accepts either credential TMDB issues:
//   - v3 API key : appended as the api_key query parameter
//   - v4 read access token : sent as a bearer token via an [oauth2.StaticTokenSource] transport
//
// Credentials always come from configuration or the environment.
// Outbound requests pass through a [rate.Limiter] so bursts of searches stay within TMDB's request budget.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : transport failure, non-2xx status ([APIError]), or malformed payload
//   - [shared.ErrMovieNotFound] : 404 from the single-movie endpoint
//   - [shared.ErrInvalidInput] : empty search query
//
// # Raw Access
//
// [TMDBService.Raw] returns an [APIResponse] for any path, used by the `api get` command for debugging.
package services
