package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/repositories"
	"github.com/desertthunder/moviebox/internal/services"
	"github.com/desertthunder/moviebox/internal/shared"
	"github.com/desertthunder/moviebox/internal/store"
	"github.com/urfave/cli/v3"
)

// rawAPI is implemented by clients that can issue unparsed requests (see [services.TMDBService.Raw]).
type rawAPI interface {
	Raw(ctx context.Context, path string) (*services.APIResponse, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	api    services.MovieAPI
	logger *log.Logger
	output io.Writer
	db     *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	API    services.MovieAPI // nil when no credentials are configured
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		api:    opts.API,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, popularCommand, searchCommand, detailsCommand,
		favoritesCommand, storageCommand, apiCommand, tuiCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger, e.g. to send output to a file while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Close releases the database connection, if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// requireAPI returns the Movie API or [shared.ErrMissingCredentials] when none is configured.
func (r *Runner) requireAPI() (services.MovieAPI, error) {
	if r.api == nil {
		return nil, fmt.Errorf("%w: set credentials.tmdb.api_key in config.toml or %s", shared.ErrMissingCredentials, shared.EnvAPIKey)
	}
	return r.api, nil
}

// database opens the configured database on first use and runs pending migrations.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	r.logger.Debug("opening database", "path", r.config.Database.Path)
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	r.db = db
	return db, nil
}

func (r *Runner) kv() (*repositories.KVRepository, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return repositories.NewKVRepository(db), nil
}

// favorites loads the persisted favorites into a [store.Favorites].
func (r *Runner) favorites(ctx context.Context) (*store.Favorites, error) {
	kv, err := r.kv()
	if err != nil {
		return nil, err
	}
	return store.NewFavorites(ctx, repositories.NewFavoritesRepository(kv), r.logger), nil
}

// parseID parses a positive movie id from a command argument.
func parseID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: movie id must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// writeMovies prints one numbered line per movie.
func (r *Runner) writeMovies(movies []models.Movie) error {
	if len(movies) == 0 {
		return r.writePlain("No movies.\n")
	}
	for i, m := range movies {
		year := m.Year()
		if year == "" {
			year = "----"
		}
		if err := r.writePlain("%3d. %-40s %s  ★ %.1f  [%d]\n", i+1, m.Title, year, m.VoteAverage, m.ID); err != nil {
			return err
		}
	}
	return nil
}
