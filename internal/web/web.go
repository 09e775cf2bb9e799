// Package web serves the browser rendition of moviebox: a landing page at "/" and the
// movies screen at "/movies".
//
// Pages are rendered server side from embedded templates. Every form post under /movies
// changes one store and renders the movies page directly, so the browser never needs
// client-side state.
//
// Routes
//
//	GET  /                        → landing page
//	GET  /movies                  → movies page (fresh visit: detail closed, query cleared, popular loaded)
//	POST /movies/search           → run a search, an empty query returns to popular
//	POST /movies/favorites        → add a catalog movie to favorites
//	POST /movies/favorites/remove → remove every favorite with the id
//	POST /movies/details          → open the detail modal
//	POST /movies/details/close    → close the detail modal
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/shared"
	"github.com/desertthunder/moviebox/internal/store"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

// Opts configures an [App].
type Opts struct {
	Catalog   *store.Catalog
	Favorites *store.Favorites
	Detail    *store.Detail
	ImageBase string
	Logger    *log.Logger
}

// App renders the two screens on top of the shared stores.
type App struct {
	catalog   *store.Catalog
	favorites *store.Favorites
	detail    *store.Detail
	imageBase string
	logger    *log.Logger
	landing   *template.Template
	movies    *template.Template
}

// moviesPage is the data behind templates/movies.html
type moviesPage struct {
	Query     string
	Searching bool
	Catalog   []models.Movie
	Favorites []models.Movie
	Detail    *models.Movie
	Status    string
	Error     string
}

// New parses the embedded templates and returns an [App].
func New(opts Opts) (*App, error) {
	if opts.Catalog == nil || opts.Favorites == nil || opts.Detail == nil {
		return nil, fmt.Errorf("%w: web app requires catalog, favorites and detail stores", shared.ErrInvalidConfig)
	}

	a := &App{
		catalog:   opts.Catalog,
		favorites: opts.Favorites,
		detail:    opts.Detail,
		imageBase: opts.ImageBase,
		logger:    opts.Logger,
	}
	if a.logger == nil {
		a.logger = shared.NewLogger(io.Discard)
	}

	var err error
	if a.landing, err = a.parseTemplates("templates/base.html", "templates/landing.html"); err != nil {
		return nil, err
	}
	if a.movies, err = a.parseTemplates("templates/base.html", "templates/movies.html"); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) parseTemplates(files ...string) (*template.Template, error) {
	funcs := template.FuncMap{
		"poster": func(path string) string { return models.PosterURL(a.imageBase, path) },
	}
	tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates %v: %w", files, err)
	}
	return tmpl, nil
}

// Routes registers the landing and movies screens.
func (a *App) Routes(r chi.Router) {
	r.Get("/", a.HandleLanding)
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", a.HandleMovies)
		r.Post("/search", a.HandleSearch)
		r.Post("/favorites", a.HandleAddFavorite)
		r.Post("/favorites/remove", a.HandleRemoveFavorite)
		r.Post("/details", a.HandleShowDetail)
		r.Post("/details/close", a.HandleCloseDetail)
	})
}

// HandleLanding renders the landing page.
func (a *App) HandleLanding(w http.ResponseWriter, r *http.Request) {
	a.render(w, a.landing, http.StatusOK, nil)
}

// HandleMovies renders a fresh visit to the movies screen.
//
// Entering the screen closes any open detail, clears the query and loads the popular listing.
func (a *App) HandleMovies(w http.ResponseWriter, r *http.Request) {
	a.detail.Close()
	page := moviesPage{}
	if err := a.catalog.Reset(r.Context()); err != nil && !errors.Is(err, store.ErrStaleResponse) {
		page.Error = "Could not load popular movies. Showing the last listing."
	}
	a.renderMovies(w, http.StatusOK, page)
}

// HandleSearch runs the submitted query. An empty query returns to the popular listing.
func (a *App) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.FormValue("query")
	page := moviesPage{}
	if err := a.catalog.Search(r.Context(), query); err != nil && !errors.Is(err, store.ErrStaleResponse) {
		page.Error = "Search failed. Showing the last listing."
	}
	a.renderMovies(w, http.StatusOK, page)
}

// HandleAddFavorite appends the catalog movie with the submitted id to favorites.
func (a *App) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := a.formID(w, r)
	if !ok {
		return
	}

	movie, found := a.catalog.Find(id)
	if !found {
		a.renderMovies(w, http.StatusNotFound, moviesPage{Error: fmt.Sprintf("Movie %d is not in the current listing.", id)})
		return
	}

	if err := a.favorites.Add(r.Context(), movie); err != nil {
		a.renderMovies(w, http.StatusInternalServerError, moviesPage{Error: "Could not save favorites."})
		return
	}
	a.renderMovies(w, http.StatusOK, moviesPage{Status: fmt.Sprintf("Added %s to favorites.", movie.Title)})
}

// HandleRemoveFavorite removes every favorite with the submitted id.
func (a *App) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := a.formID(w, r)
	if !ok {
		return
	}

	if err := a.favorites.Remove(r.Context(), id); err != nil {
		a.renderMovies(w, http.StatusInternalServerError, moviesPage{Error: "Could not save favorites."})
		return
	}
	a.renderMovies(w, http.StatusOK, moviesPage{Status: "Removed from favorites."})
}

// HandleShowDetail opens the detail modal for a movie from the catalog or the favorites list.
func (a *App) HandleShowDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := a.formID(w, r)
	if !ok {
		return
	}

	movie, found := a.lookup(id)
	if !found {
		a.renderMovies(w, http.StatusNotFound, moviesPage{Error: fmt.Sprintf("Movie %d is not on this page.", id)})
		return
	}
	a.detail.Show(movie)
	a.renderMovies(w, http.StatusOK, moviesPage{})
}

// HandleCloseDetail closes the detail modal.
func (a *App) HandleCloseDetail(w http.ResponseWriter, r *http.Request) {
	a.detail.Close()
	a.renderMovies(w, http.StatusOK, moviesPage{})
}

func (a *App) lookup(id int) (models.Movie, bool) {
	if movie, ok := a.catalog.Find(id); ok {
		return movie, true
	}
	for _, movie := range a.favorites.List() {
		if movie.ID == id {
			return movie, true
		}
	}
	return models.Movie{}, false
}

// formID reads the "id" form value, rendering a 400 page when it is missing or malformed.
func (a *App) formID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.FormValue("id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		a.logger.Warn("rejected form id", "path", r.URL.Path, "id", raw)
		a.renderMovies(w, http.StatusBadRequest, moviesPage{Error: fmt.Sprintf("Invalid movie id %q.", raw)})
		return 0, false
	}
	return id, true
}

// renderMovies fills page from the stores and renders the movies screen.
func (a *App) renderMovies(w http.ResponseWriter, status int, page moviesPage) {
	page.Query = a.catalog.Query()
	page.Searching = a.catalog.IsSearching()
	page.Catalog = a.catalog.Movies()
	page.Favorites = a.favorites.List()
	if movie, ok := a.detail.Selected(); ok {
		page.Detail = &movie
	}
	a.render(w, a.movies, status, page)
}

func (a *App) render(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		a.logger.Error("Failed to execute template", "template", tmpl.Name(), "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

