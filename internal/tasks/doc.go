// Package tasks runs long-running operations over the favorites list with real-time progress reporting.
//
// # Favorites Check
//
// [Engine.CheckFavorites] compares each stored favorite with what the Movie API currently returns for its id:
//   - Collapses duplicate entries so each id is looked up once
//   - Fans lookups out over a bounded worker pool throttled by a shared rate limiter
//   - Classifies every id as unchanged, updated upstream, missing (404), or failed
//
// The check is read-only: favorites are stored copies and are never rewritten from the API.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
