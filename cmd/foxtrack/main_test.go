package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/fox-tracks-go/internal/auth"
)

const foxCSV = `timestamp,location-long,location-lat,tag-local-identifier
2018-03-01 00:00:00.000,29.0000,69.0000,FOX-A
2018-03-01 00:03:00.000,29.0005,69.0000,FOX-A
2018-03-01 06:00:00.000,29.0100,69.0000,FOX-A
2018-03-01 00:00:00.000,29.5000,69.5000,FOX-B
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foxes.csv")
	require.NoError(t, os.WriteFile(path, []byte(foxCSV), 0o644))
	return path
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(nil, &out))
	assert.Contains(t, out.String(), "Usage: foxtrack")

	out.Reset()
	assert.Error(t, run([]string{"frobnicate"}, &out))
	assert.NoError(t, run([]string{"help"}, &out))
}

func TestDownsampleCommand(t *testing.T) {
	in := writeCSV(t)
	dir := t.TempDir()
	geojsonPath := filepath.Join(dir, "kept.geojson")
	pngPath := filepath.Join(dir, "kept.png")
	htmlPath := filepath.Join(dir, "kept.html")

	var out bytes.Buffer
	err := run([]string{"downsample", "-in", in, "-geojson", geojsonPath, "-png", pngPath, "-html", htmlPath}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "FOX-A: kept 2 fixes")
	assert.Contains(t, text, "FOX-B: kept 1 fixes")
	assert.Contains(t, text, "Kept 3 of 4 fixes (min interval 5h0m0s, min distance 75m)")

	for _, p := range []string{geojsonPath, pngPath, htmlPath} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}

	assert.Error(t, run([]string{"downsample"}, &out), "-in is required")
	assert.Error(t, run([]string{"downsample", "-in", in, "-min-distance", "-1"}, &out))
}

func TestImportCommand(t *testing.T) {
	in := writeCSV(t)
	db := filepath.Join(t.TempDir(), "foxes.db")

	var out bytes.Buffer
	require.NoError(t, run([]string{"import", "-in", in, "-db", db}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "Imported 4 observations from foxes.csv as "))
}

func TestTokenCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"token", "-secret", "s3cret", "-subject", "field-team"}, &out))

	claims, err := auth.ParseToken("s3cret", strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "field-team", claims.Subject)

	assert.Error(t, run([]string{"token", "-secret", ""}, &out))
}
