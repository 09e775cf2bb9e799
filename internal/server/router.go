package server

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ChiRouter is an HTTP router implementing the [Router] interface.
//
// Uses [chi.Mux] internally for routing.
type ChiRouter struct {
	mux *chi.Mux
}

// NewRouter creates a [ChiRouter] with request ids, request logging and panic recovery installed.
func NewRouter(logger *log.Logger) *ChiRouter {
	r := &ChiRouter{mux: chi.NewRouter()}
	r.Use(RequestID, middleware.RealIP, RequestLogger(logger), middleware.Recoverer)
	r.mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
	r.mux.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	return r
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
//
// Must be called before any route is registered.
func (r *ChiRouter) Use(middleware ...Middleware) {
	for _, mw := range middleware {
		r.mux.Use(mw)
	}
}

// Handle registers a handler for the specified HTTP method and path.
func (r *ChiRouter) Handle(method, path string, handler http.Handler) {
	r.mux.Method(strings.ToUpper(method), path, handler)
}

// Handler registers a custom Handler implementation.
func (r *ChiRouter) Handler(handler Handler) {
	handler.Routes(r.mux)
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *ChiRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
