package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/services"
	"github.com/desertthunder/moviebox/internal/shared"
	tu "github.com/desertthunder/moviebox/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestRunner(t *testing.T, api services.MovieAPI) (*Runner, *bytes.Buffer) {
	t.Helper()
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "moviebox.db")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		API:    api,
		Logger: shared.NewLogger(io.Discard),
		Output: output,
	})
	t.Cleanup(func() { runner.Close() })
	return runner, output
}

func newMockAPI() *tu.MockMovieAPI {
	return &tu.MockMovieAPI{
		PopularPage: &models.Page{Results: []models.Movie{tu.Dune, tu.Arrival}},
		SearchPages: map[string]*models.Page{
			"batman": {Results: []models.Movie{tu.Batman, tu.BatmanBegins}},
		},
		MovieByID: map[int]models.Movie{
			tu.Batman.ID:  tu.Batman,
			tu.Dune.ID:    tu.Dune,
			tu.Arrival.ID: tu.Arrival,
		},
	}
}

// run executes args against a fresh command tree so flag state never leaks between calls.
func run(r *Runner, args ...string) error {
	app := &cli.Command{
		Name:     "moviebox",
		Writer:   io.Discard,
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"moviebox"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(io.Discard)
			output := &bytes.Buffer{}
			api := newMockAPI()

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
				API:    api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("close without database", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if err := runner.Close(); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("formats output", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			runner.writePlain("%s %d", "movies", 2)
			if output.String() != "movies 2" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
			if err := runner.writePlainln("x"); err == nil {
				t.Error("expected error from failing writer")
			}
		})
	})

	t.Run("writeMovies", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		runner.writeMovies([]models.Movie{tu.Dune, {ID: 9, Title: "Undated"}})

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %q", output.String())
		}
		if !strings.Contains(lines[0], "Dune") || !strings.Contains(lines[0], "2021") || !strings.Contains(lines[0], "[438631]") {
			t.Errorf("unexpected first line %q", lines[0])
		}
		if !strings.Contains(lines[1], "----") {
			t.Errorf("expected placeholder year, got %q", lines[1])
		}
	})
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr error
	}{
		{"valid", "268", 268, nil},
		{"surrounding space", " 272 ", 272, nil},
		{"empty", "", 0, shared.ErrMissingArgument},
		{"not a number", "batman", 0, shared.ErrInvalidArgument},
		{"zero", "0", 0, shared.ErrInvalidArgument},
		{"negative", "-1", 0, shared.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseID(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("expected %d, got %d (%v)", tt.want, got, err)
			}
		})
	}
}

func TestFilterMovies(t *testing.T) {
	movies := []models.Movie{tu.Batman, tu.Dune, tu.BatmanBegins, tu.Arrival}

	t.Run("empty query keeps everything", func(t *testing.T) {
		if got := filterMovies(movies, "  "); len(got) != 4 {
			t.Errorf("expected 4 movies, got %d", len(got))
		}
	})

	t.Run("fuzzy match keeps list order", func(t *testing.T) {
		got := filterMovies(movies, "btmn")
		if len(got) != 2 || got[0] != tu.Batman || got[1] != tu.BatmanBegins {
			t.Errorf("expected both Batman titles in order, got %+v", got)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := filterMovies(movies, "DUNE")
		if len(got) != 1 || got[0] != tu.Dune {
			t.Errorf("expected Dune, got %+v", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := filterMovies(movies, "zzz"); len(got) != 0 {
			t.Errorf("expected no movies, got %+v", got)
		}
	})
}

func TestMovieCommands(t *testing.T) {
	t.Run("popular prints titles in order", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())

		if err := run(runner, "popular"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "Popular movies") {
			t.Errorf("expected header, got %q", out)
		}
		if strings.Index(out, "Dune") > strings.Index(out, "Arrival") {
			t.Errorf("expected Dune before Arrival, got %q", out)
		}
	})

	t.Run("popular as JSON", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())

		if err := run(runner, "popular", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var movies []models.Movie
		if err := json.Unmarshal(output.Bytes(), &movies); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", output.String(), err)
		}
		if len(movies) != 2 || movies[0] != tu.Dune {
			t.Errorf("unexpected movies %+v", movies)
		}
	})

	t.Run("popular failure", func(t *testing.T) {
		api := newMockAPI()
		api.PopularErr = shared.ErrAPIRequest
		runner, _ := newTestRunner(t, api)

		if err := run(runner, "popular"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		runner, _ := newTestRunner(t, nil)

		for _, args := range [][]string{{"popular"}, {"search", "batman"}, {"details", "268"}, {"favorites", "add", "268"}, {"serve"}} {
			if err := run(runner, args...); !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("%v: expected ErrMissingCredentials, got %v", args, err)
			}
		}
	})

	t.Run("search", func(t *testing.T) {
		api := newMockAPI()
		runner, output := newTestRunner(t, api)

		if err := run(runner, "search", " batman "); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		if !strings.Contains(out, `Results for "batman"`) || !strings.Contains(out, "Batman Begins") {
			t.Errorf("unexpected output %q", out)
		}
		if calls := api.SearchCalls(); len(calls) != 1 || calls[0] != "batman" {
			t.Errorf("expected trimmed query, got %v", calls)
		}
	})

	t.Run("empty search lists popular", func(t *testing.T) {
		api := newMockAPI()
		runner, output := newTestRunner(t, api)

		if err := run(runner, "search"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Popular movies") || api.PopularCalls() != 1 {
			t.Errorf("expected popular listing, got %q", output.String())
		}
	})

	t.Run("details", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())

		if err := run(runner, "details", "268"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		for _, want := range []string{"Batman", "1989-06-23", "7.2", "https://image.tmdb.org/t/p/w500/batman.jpg", tu.Batman.Overview} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got %q", want, out)
			}
		}
	})

	t.Run("details as JSON", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())

		if err := run(runner, "details", "--json", "438631"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var movie models.Movie
		if err := json.Unmarshal(output.Bytes(), &movie); err != nil || movie != tu.Dune {
			t.Errorf("expected Dune JSON, got %q (%v)", output.String(), err)
		}
	})

	t.Run("details errors", func(t *testing.T) {
		runner, _ := newTestRunner(t, newMockAPI())

		if err := run(runner, "details", "abc"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if err := run(runner, "details", "1"); !errors.Is(err, shared.ErrMovieNotFound) {
			t.Errorf("expected ErrMovieNotFound, got %v", err)
		}
	})
}

func TestFavoritesCommands(t *testing.T) {
	t.Run("add, list, remove", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())

		for _, id := range []string{"268", "438631", "268"} {
			if err := run(runner, "favorites", "add", id); err != nil {
				t.Fatalf("add %s: %v", id, err)
			}
		}

		output.Reset()
		if err := run(runner, "favorites", "list", "--json"); err != nil {
			t.Fatalf("list: %v", err)
		}
		var movies []models.Movie
		if err := json.Unmarshal(output.Bytes(), &movies); err != nil {
			t.Fatalf("expected JSON, got %q", output.String())
		}
		if len(movies) != 3 || movies[0] != tu.Batman || movies[1] != tu.Dune || movies[2] != tu.Batman {
			t.Errorf("expected duplicates kept in insertion order, got %+v", movies)
		}

		output.Reset()
		if err := run(runner, "favorites", "remove", "268"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if !strings.Contains(output.String(), "Removed 2 favorite(s)") {
			t.Errorf("unexpected output %q", output.String())
		}

		output.Reset()
		run(runner, "favorites", "list")
		if out := output.String(); !strings.Contains(out, "Favorites (1)") || !strings.Contains(out, "Dune") {
			t.Errorf("unexpected list %q", out)
		}
	})

	t.Run("favorites survive a new runner", func(t *testing.T) {
		runner, _ := newTestRunner(t, newMockAPI())
		if err := run(runner, "favorites", "add", "329865"); err != nil {
			t.Fatalf("add: %v", err)
		}
		runner.Close()

		output := &bytes.Buffer{}
		again := NewRunner(RunnerOpts{Config: runner.config, Logger: shared.NewLogger(io.Discard), Output: output})
		defer again.Close()

		if err := run(again, "favorites", "list"); err != nil {
			t.Fatalf("list: %v", err)
		}
		if !strings.Contains(output.String(), "Arrival") {
			t.Errorf("expected Arrival after restart, got %q", output.String())
		}
	})

	t.Run("add unknown id stores nothing", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())

		if err := run(runner, "favorites", "add", "1"); !errors.Is(err, shared.ErrMovieNotFound) {
			t.Errorf("expected ErrMovieNotFound, got %v", err)
		}
		run(runner, "favorites", "list")
		if !strings.Contains(output.String(), "Favorites (0)") {
			t.Errorf("expected empty favorites, got %q", output.String())
		}
	})

	t.Run("remove without match", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())

		if err := run(runner, "favorites", "remove", "268"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if !strings.Contains(output.String(), "No favorites with id 268") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("list with filter", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())
		run(runner, "favorites", "add", "268")
		run(runner, "favorites", "add", "329865")

		output.Reset()
		if err := run(runner, "favorites", "list", "--filter", "arv"); err != nil {
			t.Fatalf("list: %v", err)
		}
		out := output.String()
		if !strings.Contains(out, "Arrival") || strings.Contains(out, "Batman") {
			t.Errorf("expected only Arrival, got %q", out)
		}
	})

	t.Run("clear", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())
		run(runner, "favorites", "add", "268")

		output.Reset()
		if err := run(runner, "favorites", "clear"); err != nil {
			t.Fatalf("clear: %v", err)
		}
		if !strings.Contains(output.String(), "Cleared 1 favorite(s)") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("export", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())
		run(runner, "favorites", "add", "438631")
		path := filepath.Join(t.TempDir(), "out", "favs.csv")

		if err := run(runner, "favorites", "export", "--format", "csv", "--output", path); err != nil {
			t.Fatalf("export: %v", err)
		}

		tu.AssertFileExists(t, path)
		if content := tu.MustReadFile(t, path); !strings.Contains(content, "438631,Dune") {
			t.Errorf("unexpected csv %q", content)
		}
		if !strings.Contains(output.String(), "Exported 1 favorite(s)") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("export rejects unknown format", func(t *testing.T) {
		runner, _ := newTestRunner(t, newMockAPI())

		err := run(runner, "favorites", "export", "--format", "xml", "--output", filepath.Join(t.TempDir(), "f.xml"))
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("check", func(t *testing.T) {
		api := newMockAPI()
		runner, output := newTestRunner(t, api)
		run(runner, "favorites", "add", "268")
		run(runner, "favorites", "add", "438631")

		renamed := tu.Dune
		renamed.Title = "Dune: Part One"
		api.MovieByID = map[int]models.Movie{tu.Dune.ID: renamed}

		output.Reset()
		if err := run(runner, "favorites", "check", "--json", "--rate", "1000"); err != nil {
			t.Fatalf("check: %v", err)
		}

		var rows []checkRow
		if err := json.Unmarshal(output.Bytes(), &rows); err != nil {
			t.Fatalf("expected JSON, got %q", output.String())
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %+v", rows)
		}
		if rows[0].ID != tu.Batman.ID || rows[0].Status != "missing" {
			t.Errorf("expected Batman missing, got %+v", rows[0])
		}
		if rows[1].Status != "updated" || rows[1].Current != "Dune: Part One" {
			t.Errorf("expected Dune updated, got %+v", rows[1])
		}
	})

	t.Run("check plain summary", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())
		run(runner, "favorites", "add", "268")

		output.Reset()
		if err := run(runner, "favorites", "check", "--rate", "1000"); err != nil {
			t.Fatalf("check: %v", err)
		}
		if !strings.Contains(output.String(), "Done: 1 unchanged, 0 updated upstream, 0 missing, 0 failed") {
			t.Errorf("unexpected output %q", output.String())
		}
	})
}

func TestStorageCommands(t *testing.T) {
	t.Run("keys, get and delete", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())

		run(runner, "storage", "keys")
		if !strings.Contains(output.String(), "No stored keys") {
			t.Errorf("expected no keys, got %q", output.String())
		}

		run(runner, "favorites", "add", "268")
		output.Reset()
		if err := run(runner, "storage", "keys"); err != nil {
			t.Fatalf("keys: %v", err)
		}
		if strings.TrimSpace(output.String()) != "favorites" {
			t.Errorf("expected favorites key, got %q", output.String())
		}

		output.Reset()
		if err := run(runner, "storage", "get", "favorites"); err != nil {
			t.Fatalf("get: %v", err)
		}
		if !strings.Contains(output.String(), `"title":"Batman"`) {
			t.Errorf("expected raw favorites JSON, got %q", output.String())
		}

		if err := run(runner, "storage", "delete", "favorites"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := run(runner, "storage", "get", "favorites"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected missing key error, got %v", err)
		}
	})

	t.Run("key is required", func(t *testing.T) {
		runner, _ := newTestRunner(t, nil)
		if err := run(runner, "storage", "delete"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("reset discards favorites", func(t *testing.T) {
		runner, output := newTestRunner(t, newMockAPI())

		if err := run(runner, "favorites", "add", "268"); err != nil {
			t.Fatalf("add: %v", err)
		}

		if err := run(runner, "storage", "reset"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Fatalf("expected confirmation error, got %v", err)
		}

		output.Reset()
		if err := run(runner, "storage", "reset", "--yes"); err != nil {
			t.Fatalf("reset: %v", err)
		}
		if !strings.Contains(output.String(), "1 key(s) discarded") {
			t.Errorf("unexpected output %q", output.String())
		}

		output.Reset()
		if err := run(runner, "favorites", "list"); err != nil {
			t.Fatalf("list: %v", err)
		}
		if !strings.Contains(output.String(), "Favorites (0)") {
			t.Errorf("expected no favorites after reset, got %q", output.String())
		}
	})
}

func TestAPIGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/configuration":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"images":{"base_url":"http://image.tmdb.org/t/p/"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status_message":"not found"}`))
		}
	}))
	defer srv.Close()

	tmdb := services.NewTMDBService(services.TMDBOpts{BaseURL: srv.URL, APIKey: "k"})

	t.Run("prints JSON", func(t *testing.T) {
		runner, output := newTestRunner(t, tmdb)

		if err := run(runner, "api", "get", "--json", "/configuration"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"base_url":"http://image.tmdb.org/t/p/"`) {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		runner, _ := newTestRunner(t, tmdb)

		if err := run(runner, "api", "get", "/nope"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("client without raw support", func(t *testing.T) {
		runner, _ := newTestRunner(t, newMockAPI())

		if err := run(runner, "api", "get", "/configuration"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("path is required", func(t *testing.T) {
		runner, _ := newTestRunner(t, tmdb)

		if err := run(runner, "api", "get"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestSetup(t *testing.T) {
	t.Chdir(t.TempDir())
	runner, output := newTestRunner(t, nil)

	if err := run(runner, "setup", "--config", "config.toml"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tu.AssertFileExists(t, "config.toml")
	tu.AssertFileExists(t, "moviebox.db")
	if !strings.Contains(output.String(), "✓ Database: ./moviebox.db") {
		t.Errorf("unexpected output %q", output.String())
	}

	t.Run("existing config is reused", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "setup", "--config", "config.toml"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "✓ Config: config.toml") {
			t.Errorf("unexpected output %q", output.String())
		}
	})
}

func TestWebHandler(t *testing.T) {
	runner, _ := newTestRunner(t, newMockAPI())

	handler, err := runner.webHandler(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Dune") {
		t.Errorf("expected popular movies in page")
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Errorf("expected request id header")
	}
}

func TestTUIRequiresTerminal(t *testing.T) {
	runner, _ := newTestRunner(t, newMockAPI())

	if err := run(runner, "tui"); !errors.Is(err, shared.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable without a terminal, got %v", err)
	}
}
