// TMDB API implementation of [MovieAPI]
//
// Response types based on https://developer.themoviedb.org/reference
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultTMDBBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout     = 10 * time.Second
)

// APIError is a non-2xx response from the Movie API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap lets callers match any API failure with [shared.ErrAPIRequest].
func (e *APIError) Unwrap() error {
	return shared.ErrAPIRequest
}

// TMDBOpts configures a [TMDBService].
type TMDBOpts struct {
	BaseURL           string
	APIKey            string // v3 key, sent as the api_key query parameter
	AccessToken       string // v4 read token, sent as a bearer token; takes precedence over APIKey
	Language          string
	Timeout           time.Duration
	RequestsPerSecond float64 // <= 0 disables throttling
	HTTPClient        *http.Client
}

// TMDBService implements [MovieAPI] for The Movie Database.
type TMDBService struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTMDBService creates a new TMDB service instance.
//
// When an access token is configured, requests are authorized through an [oauth2.StaticTokenSource]
// wrapping the base client; otherwise the API key is appended to every request.
func NewTMDBService(opts TMDBOpts) *TMDBService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultTMDBBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	apiKey := opts.APIKey
	if opts.AccessToken != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.AccessToken, TokenType: "Bearer"})
		authed := oauth2.NewClient(ctx, src)
		authed.Timeout = client.Timeout
		client = authed
		apiKey = ""
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = max(1, int(opts.RequestsPerSecond))
	}

	return &TMDBService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     apiKey,
		language:   opts.Language,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// NewTMDBServiceFromConfig builds a [TMDBService] from application config.
//
// Returns [shared.ErrMissingCredentials] when neither an API key nor an access token is set.
func NewTMDBServiceFromConfig(cfg *shared.Config) (*TMDBService, error) {
	if !cfg.HasCredentials() {
		return nil, fmt.Errorf("%w: set credentials.tmdb.api_key or %s", shared.ErrMissingCredentials, shared.EnvAPIKey)
	}

	return NewTMDBService(TMDBOpts{
		BaseURL:           cfg.TMDB.BaseURL,
		APIKey:            cfg.Credentials.TMDB.APIKey,
		AccessToken:       cfg.Credentials.TMDB.AccessToken,
		Language:          cfg.TMDB.Language,
		Timeout:           cfg.TMDB.Timeout(),
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
	}), nil
}

// Name returns the service name.
func (s *TMDBService) Name() string {
	return "TMDB"
}

// Popular retrieves the current popular-movies listing.
//
// Calls GET /movie/popular.
func (s *TMDBService) Popular(ctx context.Context) (*models.Page, error) {
	var page models.Page
	if err := s.get(ctx, "/movie/popular", url.Values{"page": {"1"}}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search retrieves movies matching a title query.
//
// Calls GET /search/movie?query={query}.
func (s *TMDBService) Search(ctx context.Context, query string) (*models.Page, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrInvalidInput)
	}

	var page models.Page
	params := url.Values{"query": {query}, "page": {"1"}}
	if err := s.get(ctx, "/search/movie", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Movie retrieves a single movie's details.
//
// Calls GET /movie/{id}.
func (s *TMDBService) Movie(ctx context.Context, id int) (*models.Movie, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: movie id must be positive, got %d", shared.ErrInvalidArgument, id)
	}

	var movie models.Movie
	if err := s.get(ctx, "/movie/"+strconv.Itoa(id), nil, &movie); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d", shared.ErrMovieNotFound, id)
		}
		return nil, err
	}
	return &movie, nil
}

// send waits for the rate limiter, then performs a GET against endpoint with credentials attached.
func (s *TMDBService) send(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", shared.ErrAPIRequest, err)
	}

	if params == nil {
		params = url.Values{}
	}
	if s.apiKey != "" {
		params.Set("api_key", s.apiKey)
	}
	if s.language != "" && params.Get("language") == "" {
		params.Set("language", s.language)
	}

	apiURL := s.baseURL + endpoint
	if encoded := params.Encode(); encoded != "" {
		apiURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, redact(err, s.apiKey))
	}
	return resp, nil
}

func (s *TMDBService) get(ctx context.Context, endpoint string, params url.Values, result any) error {
	resp, err := s.send(ctx, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			StatusCode    int    `json:"status_code"`
			StatusMessage string `json:"status_message"`
		}
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Message = errResp.StatusMessage
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
	}

	return nil
}

// redact strips the API key from transport errors, which embed the request URL.
func redact(err error, secret string) error {
	if secret == "" || !strings.Contains(err.Error(), secret) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), secret, "REDACTED"))
}
