package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that take precedence over credentials in the config file.
const (
	EnvAPIKey      = "MOVIEBOX_TMDB_API_KEY"
	EnvAccessToken = "MOVIEBOX_TMDB_ACCESS_TOKEN"
	EnvAPIKeyAlt   = "TMDB_API_KEY"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	TMDB        TMDBConfig        `toml:"tmdb"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	TMDB TMDBCredentials `toml:"tmdb"`
}

// TMDBCredentials holds either a v3 API key or a v4 read access token.
//
// The access token wins when both are set.
type TMDBCredentials struct {
	APIKey      string `toml:"api_key"`
	AccessToken string `toml:"access_token"`
}

// TMDBConfig contains Movie API endpoint settings.
type TMDBConfig struct {
	BaseURL           string  `toml:"base_url"`
	ImageBaseURL      string  `toml:"image_base_url"`
	Language          string  `toml:"language"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// Timeout returns the HTTP client timeout as a [time.Duration].
func (c TMDBConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr joins host and port for [http.Server].
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// HasCredentials reports whether any TMDB credential is configured.
func (c *Config) HasCredentials() bool {
	return c.Credentials.TMDB.APIKey != "" || c.Credentials.TMDB.AccessToken != ""
}

// ApplyEnv overrides credentials with values from the environment, if present.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIKeyAlt); v != "" {
		c.Credentials.TMDB.APIKey = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.Credentials.TMDB.APIKey = v
	}
	if v := os.Getenv(EnvAccessToken); v != "" {
		c.Credentials.TMDB.AccessToken = v
	}
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
