package cache

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mapgame/internal/debug"
	"mapgame/internal/worldmap"
)

// Manager handles the local maps directory. Each map lives in its own
// subdirectory and may be shipped as a zip bundle next to it.
type Manager struct {
	mapsDir string
}

// NewManager creates a new maps manager
// If mapsDir is empty, uses ~/.mapgame/maps
func NewManager(mapsDir string) (*Manager, error) {
	if mapsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		mapsDir = filepath.Join(home, ".mapgame", "maps")
	}

	if err := os.MkdirAll(mapsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create maps directory: %w", err)
	}

	return &Manager{
		mapsDir: mapsDir,
	}, nil
}

// Maps lists the names of installed maps and of bundles not yet extracted
func (m *Manager) Maps() ([]string, error) {
	entries, err := os.ReadDir(m.mapsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasPrefix(name, "."):
			continue
		case e.IsDir():
			if _, ok := worldmap.NationsPath(filepath.Join(m.mapsDir, name)); ok {
				seen[name] = true
			}
		case strings.EqualFold(filepath.Ext(name), ".zip"):
			seen[strings.TrimSuffix(name, filepath.Ext(name))] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// EnsureMap makes sure map name is installed and returns its directory.
// A missing directory is extracted from <name>.zip when that bundle exists.
func (m *Manager) EnsureMap(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid map name %q", name)
	}

	dir := m.MapDir(name)
	if _, ok := worldmap.NationsPath(dir); ok {
		return dir, nil
	}

	bundle := filepath.Join(m.mapsDir, name+".zip")
	if _, err := os.Stat(bundle); err != nil {
		return "", fmt.Errorf("map %s not found in %s: %w", name, m.mapsDir, err)
	}

	debug.Log("extracting map bundle %s", bundle)
	if err := m.extractZip(bundle, dir); err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", bundle, err)
	}

	if _, ok := worldmap.NationsPath(dir); !ok {
		return "", fmt.Errorf("map bundle %s has no %s or %s", bundle, worldmap.NationsGeoJSON, worldmap.NationsShapefile)
	}
	return dir, nil
}

// extractZip unpacks zipPath into destDir keeping relative paths. A single
// top-level folder named after the map is flattened away.
func (m *Manager) extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	prefix := commonRoot(r.File)

	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		rel := filepath.FromSlash(strings.TrimPrefix(f.Name, prefix))
		destPath := filepath.Join(destDir, rel)
		if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal path in archive: %s", f.Name)
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}

		rc, err := f.Open()
		if err != nil {
			return err
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// commonRoot returns "dir/" when every entry sits under the same top-level directory
func commonRoot(files []*zip.File) string {
	root := ""
	for _, f := range files {
		i := strings.Index(f.Name, "/")
		if i < 0 {
			return ""
		}
		if root == "" {
			root = f.Name[:i+1]
		} else if f.Name[:i+1] != root {
			return ""
		}
	}
	return root
}

// MapDir returns the directory a map is installed to
func (m *Manager) MapDir(name string) string {
	return filepath.Join(m.mapsDir, name)
}

func (m *Manager) GetMapsDir() string {
	return m.mapsDir
}
