package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fox-tracks-go/internal/trajectory"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, trajectory.DefaultThresholds, cfg.Thresholds())
}

func TestLoadLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foxes.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: ":9090"
db_path: /var/lib/foxes.db
min_interval: 30m
min_distance: 50
chart_assets_host: https://cdn.example.org/echarts/
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MIN_DISTANCE", "120")
	t.Setenv("RATE_LIMIT", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "/var/lib/foxes.db", cfg.DBPath)
	assert.Equal(t, 30*time.Minute, cfg.MinInterval)
	assert.Equal(t, 120.0, cfg.MinDistance, "environment wins over the file")
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow, "unset keys keep their defaults")
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unparsable interval", map[string]string{"MIN_INTERVAL": "soon"}},
		{"negative distance", map[string]string{"MIN_DISTANCE": "-1"}},
		{"zero rate limit", map[string]string{"RATE_LIMIT": "0"}},
		{"short secret", map[string]string{"JWT_SECRET": "abc"}},
		{"bad assets host", map[string]string{"CHART_ASSETS_HOST": "not a url"}},
		{"missing config file", map[string]string{"CONFIG_FILE": "/nonexistent/foxes.yml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
