// Package config resolves the client's runtime settings from the environment,
// an optional .env file and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	DefaultAPIURL      = "http://localhost:5000/api"
	DefaultSessionPath = "session.db"
	DefaultPageSize    = 12
	DefaultLogLevel    = "warn"
)

// Config holds runtime configuration.
type Config struct {
	APIURL      string
	SessionPath string
	PageSize    int
	LogLevel    string
}

// Load reads .env files (a missing file is not an error) and then the
// environment. Explicit files that fail to parse are reported.
func Load(envFiles ...string) (Config, error) {
	if err := loadDotenv(envFiles); err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:      fallback(os.Getenv("LIBRARY_API_URL"), DefaultAPIURL),
		SessionPath: fallback(os.Getenv("LIBRARY_SESSION_DB"), DefaultSessionPath),
		LogLevel:    strings.ToLower(fallback(os.Getenv("LIBRARY_LOG_LEVEL"), DefaultLogLevel)),
		PageSize:    DefaultPageSize,
	}

	if raw := strings.TrimSpace(os.Getenv("LIBRARY_PAGE_SIZE")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("LIBRARY_PAGE_SIZE must be a positive integer, got %q", raw)
		}
		cfg.PageSize = n
	}

	return cfg, cfg.Validate()
}

// Validate checks the values a flag override may have replaced.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API URL %q", c.APIURL)
	}
	if c.SessionPath == "" {
		return errors.New("session path is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// Level returns the zerolog level, defaulting to warn.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.WarnLevel
	}
	return lvl
}

func loadDotenv(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
