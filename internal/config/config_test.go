package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	// Reset viper state
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Test server defaults
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 30, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, 30, cfg.Server.WriteTimeoutSeconds)
	assert.Equal(t, 120, cfg.Server.IdleTimeoutSeconds)

	// Test database defaults
	assert.Equal(t, "./data/hearthloaf.db", cfg.Database.Path)

	// Test Redis defaults
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "", cfg.Redis.Password)
	assert.Equal(t, 0, cfg.Redis.DB)

	// Test log defaults
	assert.Equal(t, "info", cfg.Log.Level)

	// Test auth defaults
	assert.Equal(t, "change-me-in-production", cfg.Auth.JWTSecret)
	assert.Equal(t, 24, cfg.Auth.TokenDuration)

	// Test content API defaults
	assert.Equal(t, "http://localhost:9200", cfg.ContentAPI.BaseURL)
	assert.Equal(t, "", cfg.ContentAPI.APIKey)
	assert.Equal(t, 10, cfg.ContentAPI.TimeoutSeconds)
	assert.Equal(t, 60, cfg.ContentAPI.RateLimitRequests)
	assert.Equal(t, 60, cfg.ContentAPI.RateLimitWindow)

	// Test suggest defaults
	assert.Equal(t, 200, cfg.Suggest.DebounceMS)
	assert.Equal(t, 8, cfg.Suggest.PageSize)
	assert.Equal(t, 5, cfg.Suggest.PerTypeLimit)
	assert.Equal(t, 250, cfg.Suggest.SnapshotSize)
	assert.Equal(t, 5, cfg.Suggest.RecentLimit)
	assert.Equal(t, 5, cfg.Suggest.PopularLimit)
	assert.Equal(t, 7, cfg.Suggest.PopularWindowDays)
}

func TestConfigFromEnvironment(t *testing.T) {
	viper.Reset()

	t.Setenv("HEARTHLOAF_SERVER_PORT", "9090")
	t.Setenv("HEARTHLOAF_LOG_LEVEL", "debug")
	t.Setenv("HEARTHLOAF_SUGGEST_PAGE_SIZE", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 12, cfg.Suggest.PageSize)
}

func TestConfigFromFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := []byte(`
environment: production
server:
  port: 8443
suggest:
  debounce_ms: 150
  snapshot_size: 100
content_api:
  base_url: https://search.hearthloaf.com
`)
	require.NoError(t, os.WriteFile(configFile, content, 0644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 8443, cfg.Server.Port)
	assert.Equal(t, 150, cfg.Suggest.DebounceMS)
	assert.Equal(t, 100, cfg.Suggest.SnapshotSize)
	assert.Equal(t, "https://search.hearthloaf.com", cfg.ContentAPI.BaseURL)

	// Values absent from the file keep their defaults
	assert.Equal(t, 8, cfg.Suggest.PageSize)
}
