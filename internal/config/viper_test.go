package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.Weather.BaseURL)
	assert.Equal(t, "metric", cfg.Weather.Units)
	assert.Empty(t, cfg.Weather.APIKey, "no key ships with the binary")
	assert.Equal(t, 1000, cfg.Dashboard.TransitionWindowMS)
	assert.Equal(t, 300, cfg.Dashboard.SearchDebounceMS)
	assert.Equal(t, 5, cfg.Geocoding.SearchLimit)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SKYCAST_WEATHER_API_KEY", "test-key-from-env")
	t.Setenv("SKYCAST_SERVER_PORT", "9090")
	t.Setenv("SKYCAST_DASHBOARD_SEARCH_DEBOUNCE_MS", "150")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "test-key-from-env", cfg.Weather.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 150, cfg.Dashboard.SearchDebounceMS)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 3000
weather:
  api_key: file-key
  units: imperial
dashboard:
  default_latitude: 40.7128
  default_longitude: -74.006
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "file-key", cfg.Weather.APIKey)
	assert.Equal(t, "imperial", cfg.Weather.Units)
	assert.Equal(t, 40.7128, cfg.Dashboard.DefaultLatitude)
	// Values the file omits keep their defaults.
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.Weather.BaseURL)
	assert.Equal(t, 1000, cfg.Dashboard.TransitionWindowMS)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
