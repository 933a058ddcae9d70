package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "embedded", cfg.DataSource)
	assert.Empty(t, cfg.DataPath)
	assert.Equal(t, 15.0, cfg.InflectionThreshold)
	assert.Equal(t, 32, cfg.ChartCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATA_SOURCE", "csv")
	t.Setenv("DATA_PATH", "/data/pollution.csv")
	t.Setenv("INFLECTION_THRESHOLD", "20")
	t.Setenv("CHART_CACHE_SIZE", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "csv", cfg.DataSource)
	assert.Equal(t, "/data/pollution.csv", cfg.DataPath)
	assert.Equal(t, 20.0, cfg.InflectionThreshold)
	assert.Equal(t, 8, cfg.ChartCacheSize)
}

func TestLoad_InvalidSource(t *testing.T) {
	t.Setenv("DATA_SOURCE", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid DATA_SOURCE")
}

func TestLoad_FileSourceRequiresPath(t *testing.T) {
	t.Setenv("DATA_SOURCE", "xlsx")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATA_PATH is required")
}

func TestLoad_InvalidThreshold(t *testing.T) {
	t.Setenv("INFLECTION_THRESHOLD", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INFLECTION_THRESHOLD")
}
