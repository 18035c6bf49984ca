package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LIBRARY_API_URL", "LIBRARY_SESSION_DB", "LIBRARY_PAGE_SIZE", "LIBRARY_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultSessionPath, cfg.SessionPath)
	assert.Equal(t, 12, cfg.PageSize)
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIBRARY_API_URL", "  https://library.example.edu/api ")
	t.Setenv("LIBRARY_PAGE_SIZE", "20")
	t.Setenv("LIBRARY_LOG_LEVEL", "DEBUG")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "https://library.example.edu/api", cfg.APIURL)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoadDotenvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LIBRARY_SESSION_DB=/tmp/lib/session.db\n"), 0o600))
	// godotenv does not override variables that are already set, even empty.
	require.NoError(t, os.Unsetenv("LIBRARY_SESSION_DB"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lib/session.db", cfg.SessionPath)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"page size", "LIBRARY_PAGE_SIZE", "zero"},
		{"negative page size", "LIBRARY_PAGE_SIZE", "-1"},
		{"url", "LIBRARY_API_URL", "localhost"},
		{"log level", "LIBRARY_LOG_LEVEL", "loud"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
