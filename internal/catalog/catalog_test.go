package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
  "episodes": [
    {
      "id": 1,
      "title": "Night Orbit",
      "description": "Slow synths for late hours",
      "soundcloudUrl": "https://soundcloud.com/sednafm/night-orbit",
      "songs": ["Track A", "Track B"],
      "music-genres": ["ambient", "electronic"]
    },
    {
      "id": 2,
      "title": "Morning Drops",
      "description": "Bright starts",
      "soundcloudUrl": "https://soundcloud.com/sednafm/morning-drops",
      "songs": ["Track C"],
      "music-genres": ["pop"]
    }
  ]
}`

func writeCatalog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads from primary path", func(t *testing.T) {
		dir := t.TempDir()
		path := writeCatalog(t, dir, "episodes.json", sampleCatalog)

		cat, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 2, cat.Len())
		assert.Equal(t, "Night Orbit", cat.Episodes()[0].Title)
		assert.Equal(t, []string{"ambient", "electronic"}, cat.Episodes()[0].Genres)
	})

	t.Run("falls back to second path", func(t *testing.T) {
		dir := t.TempDir()
		fallback := writeCatalog(t, dir, "fallback.json", sampleCatalog)

		cat, err := Load(filepath.Join(dir, "missing.json"), fallback)
		require.NoError(t, err)
		assert.Equal(t, 2, cat.Len())
	})

	t.Run("errors when no path is readable", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Load(filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"))
		assert.Error(t, err)
	})

	t.Run("errors on malformed JSON", func(t *testing.T) {
		dir := t.TempDir()
		path := writeCatalog(t, dir, "bad.json", "{not json")

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("errors on empty catalog", func(t *testing.T) {
		dir := t.TempDir()
		path := writeCatalog(t, dir, "empty.json", `{"episodes": []}`)

		_, err := Load(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no episodes")
	})
}

func TestCatalog_ByID(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, "episodes.json", sampleCatalog)

	cat, err := Load(path)
	require.NoError(t, err)

	ep, ok := cat.ByID(2)
	require.True(t, ok)
	assert.Equal(t, "Morning Drops", ep.Title)

	_, ok = cat.ByID(99)
	assert.False(t, ok)
}
