package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 8081
database:
  dsn: "postgres://u:p@localhost:5432/events?sslmode=disable"
sync:
  interval: 30m
  default_filter:
    city: chicago
    price: free
sources:
  eventbrite:
    base_url: "https://example.test/v3"
    auth_token: "from-yaml"
    date_strategy: range
  demo:
    default_page_size: 20
`

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(content), 0o644))
	t.Chdir(dir)
}

func TestLoadConfig(t *testing.T) {
	writeConfig(t, testYAML)
	t.Setenv("EVENTBRITE_API_KEY", "")
	t.Setenv("EVENTBRITE_OAUTH_TOKEN", "")
	t.Setenv("EVENTBRITE_PROXY", "")
	t.Setenv("DATABASE_DSN", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, "eventbrite", cfg.Sync.Source)
	assert.Equal(t, "chicago", cfg.Sync.DefaultFilter.City)

	eb := cfg.Sources["eventbrite"]
	assert.Equal(t, "from-yaml", eb.AuthToken)
	assert.Equal(t, DateStrategyRange, eb.DateStrategy)
	assert.Equal(t, 15, eb.Timeout)
	assert.Equal(t, 50, eb.DefaultPageSize)
	assert.Equal(t, 100.0, eb.DefaultRadiusKm)

	demo, ok := cfg.Sources["demo"]
	require.True(t, ok)
	assert.Equal(t, DateStrategyKeyword, demo.DateStrategy)
	assert.Equal(t, 20, demo.DefaultPageSize)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	writeConfig(t, testYAML)
	t.Setenv("EVENTBRITE_API_KEY", "env-key")
	t.Setenv("EVENTBRITE_OAUTH_TOKEN", "env-oauth")
	t.Setenv("EVENTBRITE_PROXY", "http://127.0.0.1:7890")
	t.Setenv("DATABASE_DSN", "postgres://env/db")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	eb := cfg.Sources["eventbrite"]
	assert.Equal(t, "env-key", eb.AuthToken)
	assert.Equal(t, "env-oauth", eb.OAuthToken)
	assert.Equal(t, "http://127.0.0.1:7890", eb.Proxy)
	assert.Equal(t, "postgres://env/db", cfg.Database.DSN)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	s := SourceConfig{DateStrategy: "bogus"}
	s.ApplyDefaults()
	assert.Equal(t, SourceConfig{
		Timeout:         15,
		DateStrategy:    DateStrategyKeyword,
		DefaultRadiusKm: 100,
		DefaultPageSize: 50,
	}, s)

	s = SourceConfig{Timeout: 3, DefaultPageSize: 10, DefaultRadiusKm: 5, DateStrategy: DateStrategyRange}
	s.ApplyDefaults()
	assert.Equal(t, 3, s.Timeout)
	assert.Equal(t, 10, s.DefaultPageSize)
	assert.Equal(t, 5.0, s.DefaultRadiusKm)
	assert.Equal(t, DateStrategyRange, s.DateStrategy)
}
