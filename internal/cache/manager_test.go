package cache

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"mapgame/internal/worldmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptyCollection = `{"type": "FeatureCollection", "features": []}`

func writeBundle(t *testing.T, path string, files map[string]string) {
	t.Helper()

	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	zw := zip.NewWriter(out)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestEnsureMapExtractsBundle(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	writeBundle(t, filepath.Join(dir, "earth.zip"), map[string]string{
		"earth/nations.geojson":       emptyCollection,
		"earth/provinces.json":        `{}`,
		"earth/provinces/aaa.geojson": emptyCollection,
	})

	got, err := m.EnsureMap("earth")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "earth"), got)

	_, ok := worldmap.NationsPath(got)
	assert.True(t, ok)
	assert.FileExists(t, filepath.Join(got, worldmap.ProvincesDir, "aaa.geojson"))

	again, err := m.EnsureMap("earth")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestEnsureMapFlatBundle(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	writeBundle(t, filepath.Join(dir, "moon.zip"), map[string]string{
		"nations.geojson":     emptyCollection,
		"provinces/a.geojson": emptyCollection,
	})

	got, err := m.EnsureMap("moon")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(got, worldmap.NationsGeoJSON))
	assert.FileExists(t, filepath.Join(got, worldmap.ProvincesDir, "a.geojson"))
}

func TestEnsureMapErrors(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	_, err = m.EnsureMap("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = m.EnsureMap("../escape")
	assert.ErrorContains(t, err, "invalid map name")

	writeBundle(t, filepath.Join(dir, "evil.zip"), map[string]string{
		"../../outside.geojson": emptyCollection,
		"nations.geojson":       emptyCollection,
	})
	_, err = m.EnsureMap("evil")
	assert.ErrorContains(t, err, "illegal path")

	writeBundle(t, filepath.Join(dir, "hollow.zip"), map[string]string{
		"readme.txt": "no nations here",
	})
	_, err = m.EnsureMap("hollow")
	assert.ErrorContains(t, err, "has no")
}

func TestMaps(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "earth"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "earth", worldmap.NationsGeoJSON), []byte(emptyCollection), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scratch"), 0755))
	writeBundle(t, filepath.Join(dir, "earth.zip"), map[string]string{"nations.geojson": emptyCollection})
	writeBundle(t, filepath.Join(dir, "asia.zip"), map[string]string{"nations.geojson": emptyCollection})

	names, err := m.Maps()
	require.NoError(t, err)
	assert.Equal(t, []string{"asia", "earth"}, names)
	assert.Equal(t, dir, m.GetMapsDir())
}
