// package tasks implements long-running operations over the favorites list.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/services"
	"github.com/desertthunder/moviebox/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 10
	defaultRateLimit = 4.0
)

// CheckStatus classifies one favorite after comparing it with the Movie API.
type CheckStatus int

const (
	StatusUnchanged CheckStatus = iota // Stored copy matches the API
	StatusUpdated                      // Title, poster, release date or overview differ upstream
	StatusMissing                      // The API no longer knows the id
	StatusFailed                       // The lookup itself failed
)

func (s CheckStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusUpdated:
		return "updated"
	case StatusMissing:
		return "missing"
	default:
		return "failed"
	}
}

// CheckResult is the outcome of looking up a single favorite.
type CheckResult struct {
	Favorite models.Movie  // Stored copy
	Current  *models.Movie // Copy returned by the API (nil unless found)
	Status   CheckStatus
	Error    error
}

// CheckReport summarizes a [Engine.CheckFavorites] run.
type CheckReport struct {
	Total     int           // Distinct ids checked
	Unchanged int           // Stored copy still current
	Updated   int           // Changed upstream
	Missing   int           // Not found upstream
	Failed    int           // Lookup errors
	Results   []CheckResult // One per distinct id, in favorites order
}

// CheckOpts contains configuration for a favorites check.
type CheckOpts struct {
	NumWorkers int     // Concurrent lookups (default: 4, max: 10)
	RateLimit  float64 // Requests per second (default: 4)
}

// Engine runs favorites operations against the Movie API.
type Engine struct {
	api services.MovieAPI
}

// NewEngine creates a new Engine backed by api.
func NewEngine(api services.MovieAPI) *Engine {
	return &Engine{api: api}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

type checkJob struct {
	index int
	movie models.Movie
}

// CheckFavorites looks up every distinct favorite id concurrently and reports which stored copies are stale or gone.
//
// Lookups are spread over a worker pool and throttled by a shared [rate.Limiter]. Individual failures are
// recorded in the report; only a canceled context aborts the run.
func (e *Engine) CheckFavorites(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	movies []models.Movie,
	opts CheckOpts,
) (*CheckReport, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: movie API not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	unique := distinct(movies)
	report := &CheckReport{Total: len(unique), Results: make([]CheckResult, len(unique))}
	e.sendProgress(prog, prepareCheckUpdate(len(unique), len(movies)-len(unique)))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan checkJob)
	results := make(chan checkJob)
	stopped := make(chan struct{})

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.checkWorker(ctx, &wg, limiter, jobs, results, report)
	}

	go func() {
		defer close(jobs)
		for i, m := range unique {
			select {
			case <-ctx.Done():
				return
			case <-stopped:
				return
			case jobs <- checkJob{index: i, movie: m}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(stopped)
		close(results)
	}()

	completed := 0
	for job := range results {
		completed++
		res := report.Results[job.index]
		switch res.Status {
		case StatusUnchanged:
			report.Unchanged++
		case StatusUpdated:
			report.Updated++
		case StatusMissing:
			report.Missing++
		default:
			report.Failed++
		}
		e.sendProgress(prog, checkedMovieUpdate(completed, len(unique), res))
	}

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("check canceled after %d of %d favorites: %w", completed, len(unique), err)
	}
	if completed < len(unique) {
		return report, fmt.Errorf("check stopped after %d of %d favorites", completed, len(unique))
	}

	e.sendProgress(prog, checkCompleteUpdate(report))
	return report, nil
}

// checkWorker writes each result into its own slot of report.Results, then signals the index on results.
// Every job it receives produces a result, including jobs it could not schedule under the limiter.
func (e *Engine) checkWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan checkJob,
	results chan<- checkJob,
	report *CheckReport,
) {
	defer wg.Done()

	for job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			report.Results[job.index] = CheckResult{
				Favorite: job.movie,
				Status:   StatusFailed,
				Error:    fmt.Errorf("rate limit wait: %w", err),
			}
		} else {
			report.Results[job.index] = e.checkMovie(ctx, job.movie)
		}
		results <- job
	}
}

func (e *Engine) checkMovie(ctx context.Context, fav models.Movie) CheckResult {
	res := CheckResult{Favorite: fav}

	current, err := e.api.Movie(ctx, fav.ID)
	switch {
	case errors.Is(err, shared.ErrMovieNotFound):
		res.Status = StatusMissing
		res.Error = err
	case err != nil:
		res.Status = StatusFailed
		res.Error = err
	case differs(fav, *current):
		res.Status = StatusUpdated
		res.Current = current
	default:
		res.Status = StatusUnchanged
		res.Current = current
	}
	return res
}

// differs ignores the rating, which drifts on every fetch.
func differs(stored, current models.Movie) bool {
	return stored.Title != current.Title ||
		stored.PosterPath != current.PosterPath ||
		stored.ReleaseDate != current.ReleaseDate ||
		stored.Overview != current.Overview
}

// distinct keeps the first entry per id, preserving order
func distinct(movies []models.Movie) []models.Movie {
	seen := make(map[int]bool, len(movies))
	out := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}
