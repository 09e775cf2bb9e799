// Package server provides HTTP routing, middleware, and the listener used by the web view.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] has the standard func(http.Handler) http.Handler shape, so chi's own middleware plugs in directly.
//
// The [ChiRouter] implementation uses [chi.Mux] internally. [NewRouter] installs, in order:
//   - [RequestID] : UUID request ids, shared with chi via [middleware.RequestIDKey]
//   - [middleware.RealIP] : client address from X-Forwarded-For / X-Real-IP
//   - [RequestLogger] : one structured log line per request
//   - [middleware.Recoverer] : turns handler panics into 500 responses
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface and register their own routes on a [chi.Router],
// keeping route definitions next to the handler implementation.
//
// # Listener
//
// [Serve] runs an [http.Server] until its context is canceled, then shuts it down gracefully.
package server
