package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./moviebox.db" {
			t.Errorf("expected database path ./moviebox.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.TMDB.BaseURL != "https://api.themoviedb.org/3" {
			t.Errorf("expected TMDB base URL https://api.themoviedb.org/3, got %s", config.TMDB.BaseURL)
		}

		if config.TMDB.ImageBaseURL != "https://image.tmdb.org/t/p/w500" {
			t.Errorf("expected image base URL https://image.tmdb.org/t/p/w500, got %s", config.TMDB.ImageBaseURL)
		}

		if config.HasCredentials() {
			t.Error("default config must not ship credentials")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8080

[credentials.tmdb]
api_key = "test_api_key"

[tmdb]
timeout_seconds = 3
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}

		if config.Credentials.TMDB.APIKey != "test_api_key" {
			t.Errorf("expected api_key test_api_key, got %s", config.Credentials.TMDB.APIKey)
		}

		if config.TMDB.Timeout() != 3*time.Second {
			t.Errorf("expected timeout 3s, got %v", config.TMDB.Timeout())
		}

		if config.TMDB.BaseURL != "https://api.themoviedb.org/3" {
			t.Errorf("keys missing from the file should keep defaults, got base URL %q", config.TMDB.BaseURL)
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nport ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		t.Setenv(EnvAccessToken, "env-token")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Credentials.TMDB.APIKey != "env-key" {
			t.Errorf("expected env api key, got %q", config.Credentials.TMDB.APIKey)
		}
		if config.Credentials.TMDB.AccessToken != "env-token" {
			t.Errorf("expected env access token, got %q", config.Credentials.TMDB.AccessToken)
		}
		if !config.HasCredentials() {
			t.Error("expected credentials after ApplyEnv")
		}
	})

	t.Run("Timeout Default", func(t *testing.T) {
		if got := (TMDBConfig{}).Timeout(); got != 10*time.Second {
			t.Errorf("expected 10s default timeout, got %v", got)
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		in   string
		want log.Level
	}{
		{in: "debug", want: log.DebugLevel},
		{in: " WARN ", want: log.WarnLevel},
		{in: "error", want: log.ErrorLevel},
		{in: "", want: log.InfoLevel},
		{in: "loud", want: log.InfoLevel},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "moviebox.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}

	logger.Info("hello", "k", "v")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log output in file")
	}
}
