// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/shared"
)

// MockMovieAPI is a test double for [services.MovieAPI]
//
// The hook functions, when set, take precedence over the canned pages.
type MockMovieAPI struct {
	mu sync.Mutex

	PopularPage *models.Page
	PopularErr  error
	SearchPages map[string]*models.Page
	SearchErr   error
	MovieByID   map[int]models.Movie

	OnPopular func(ctx context.Context) (*models.Page, error)
	OnSearch  func(ctx context.Context, query string) (*models.Page, error)
	OnMovie   func(ctx context.Context, id int) (*models.Movie, error)

	popularCalls int
	searchCalls  []string
}

func (m *MockMovieAPI) Popular(ctx context.Context) (*models.Page, error) {
	m.mu.Lock()
	m.popularCalls++
	hook := m.OnPopular
	page, err := m.PopularPage, m.PopularErr
	m.mu.Unlock()

	if hook != nil {
		return hook(ctx)
	}
	return page, err
}

func (m *MockMovieAPI) Search(ctx context.Context, query string) (*models.Page, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, query)
	hook := m.OnSearch
	page, err := m.SearchPages[query], m.SearchErr
	m.mu.Unlock()

	if hook != nil {
		return hook(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	if page == nil {
		return &models.Page{Page: 1}, nil
	}
	return page, nil
}

func (m *MockMovieAPI) Movie(ctx context.Context, id int) (*models.Movie, error) {
	m.mu.Lock()
	hook := m.OnMovie
	movie, ok := m.MovieByID[id]
	m.mu.Unlock()

	if hook != nil {
		return hook(ctx, id)
	}
	if !ok {
		return nil, shared.ErrMovieNotFound
	}
	return &movie, nil
}

func (m *MockMovieAPI) Name() string { return "mock" }

// PopularCalls returns how many times Popular was called.
func (m *MockMovieAPI) PopularCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.popularCalls
}

// SearchCalls returns the queries passed to Search, in call order.
func (m *MockMovieAPI) SearchCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.searchCalls...)
}

// MemoryFavorites is an in-memory favorites repository with injectable failures.
type MemoryFavorites struct {
	mu      sync.Mutex
	movies  []models.Movie
	saves   int
	LoadErr error
	SaveErr error
}

// NewMemoryFavorites seeds the repository with movies.
func NewMemoryFavorites(movies ...models.Movie) *MemoryFavorites {
	return &MemoryFavorites{movies: models.CopyMovies(movies)}
}

func (r *MemoryFavorites) Load(ctx context.Context) ([]models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return models.CopyMovies(r.movies), nil
}

func (r *MemoryFavorites) Save(ctx context.Context, movies []models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.saves++
	r.movies = models.CopyMovies(movies)
	return nil
}

// Saves returns the number of successful writes.
func (r *MemoryFavorites) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// Stored returns a copy of what was last persisted.
func (r *MemoryFavorites) Stored() []models.Movie {
	r.mu.Lock()
	defer r.mu.Unlock()
	return models.CopyMovies(r.movies)
}

// Fixture movies shared across package tests.
var (
	Batman       = models.Movie{ID: 268, Title: "Batman", PosterPath: "/batman.jpg", ReleaseDate: "1989-06-23", VoteAverage: 7.2, Overview: "The Dark Knight of Gotham City begins his war on crime."}
	BatmanBegins = models.Movie{ID: 272, Title: "Batman Begins", PosterPath: "/begins.jpg", ReleaseDate: "2005-06-10", VoteAverage: 7.7, Overview: "Driven by tragedy, billionaire Bruce Wayne dedicates his life to uncovering and defeating the corruption that plagues his home, Gotham City."}
	Dune         = models.Movie{ID: 438631, Title: "Dune", PosterPath: "/dune.jpg", ReleaseDate: "2021-09-15", VoteAverage: 7.8, Overview: "Paul Atreides, a brilliant and gifted young man born into a great destiny beyond his understanding."}
	Arrival      = models.Movie{ID: 329865, Title: "Arrival", PosterPath: "/arrival.jpg", ReleaseDate: "2016-11-10", VoteAverage: 7.6, Overview: "Taking place after alien crafts land around the world."}
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// StringBody wraps s as an [io.ReadCloser] response body.
func StringBody(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
