// Package config handles the configuration directory, environment and token file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "tasktrack"

	// BackendURLEnv is the environment variable holding the backend base URL.
	BackendURLEnv = "TASKTRACK_BACKEND_URL"

	// EnvFile is the optional dotenv file inside the config directory.
	EnvFile = ".env"

	// TokenFile is the stored bearer token filename.
	TokenFile = "token.json"
)

// ErrNoBackendURL is returned when no backend base URL is configured.
var ErrNoBackendURL = errors.New(BackendURLEnv + " is not set")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BackendURL is the base URL of the REST backend, without the /api suffix.
	BackendURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory
// and resolves the backend URL.
// If configDir is empty, uses XDG_CONFIG_HOME/tasktrack or $HOME/.config/tasktrack.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnv reads the backend URL from the process environment, falling back
// to the .env file in the config directory.
func (c *Config) loadEnv() error {
	if v := os.Getenv(BackendURLEnv); v != "" {
		c.BackendURL = normalizeURL(v)
		return nil
	}

	env, err := godotenv.Read(c.EnvPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	c.BackendURL = normalizeURL(env[BackendURLEnv])
	return nil
}

func normalizeURL(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// RequireBackendURL returns ErrNoBackendURL if no base URL is configured.
func (c *Config) RequireBackendURL() error {
	if c.BackendURL == "" {
		return ErrNoBackendURL
	}
	return nil
}

// EnvPath returns the path to the dotenv file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
