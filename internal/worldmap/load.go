package worldmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mapgame/internal/debug"
	"mapgame/internal/geo"

	geojson "github.com/paulmach/go.geojson"
)

// Files making up one map directory
const (
	NationsGeoJSON   = "nations.geojson"
	NationsShapefile = "nations.shp"
	ProvinceMappings = "provinces.json"
	ProvincesDir     = "provinces"
)

// MinNationArea is the smallest projected area, within LogicalBounds,
// a nation needs to be kept. Smaller ones are mostly noise polygons.
const MinNationArea = 0.25

// LogicalBounds is the projection target used at load time. Real screen
// sizes are applied afterwards through Collection.OnResize.
var LogicalBounds = geo.NewRect(0, 0, 100, 100)

// LoadOptions names a map directory and the feature properties to read
type LoadOptions struct {
	Name                 string
	Dir                  string
	NationIDProperty     string
	NationNameProperty   string
	ProvinceIDProperty   string
	ProvinceNameProperty string
}

// Load reads the nations of one map, and their provinces where a mapping
// exists, into a new Collection. Any failure aborts the whole load.
func Load(opts LoadOptions) (*Collection, error) {
	features, err := readNations(opts)
	if err != nil {
		return nil, err
	}

	mappings, err := readProvinceMappings(opts)
	if err != nil {
		return nil, err
	}

	return buildNations(opts, features, mappings)
}

// NationsPath returns the nations file inside dir, preferring GeoJSON over
// a shapefile. ok is false when neither exists.
func NationsPath(dir string) (path string, ok bool) {
	for _, name := range []string{NationsGeoJSON, NationsShapefile} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func readNations(opts LoadOptions) ([]*geojson.Feature, error) {
	path, ok := NationsPath(opts.Dir)
	if !ok {
		return nil, &MapLoadError{
			Map:    opts.Name,
			Kind:   MapReadFailure,
			Reason: fmt.Sprintf("no %s or %s found in %s", NationsGeoJSON, NationsShapefile, opts.Dir),
			Err:    os.ErrNotExist,
		}
	}

	if filepath.Ext(path) == ".shp" {
		features, err := geo.NewShapefileLoader(path).Load()
		if err != nil {
			return nil, &MapLoadError{Map: opts.Name, Kind: MapReadFailure, Reason: fmt.Sprintf("reading %s: %v", path, err), Err: err}
		}
		return features, nil
	}

	return readFeatureFile(opts.Name, path)
}

func readFeatureFile(mapName, path string) ([]*geojson.Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MapLoadError{Map: mapName, Kind: MapReadFailure, Reason: fmt.Sprintf("reading %s: %v", path, err), Err: err}
	}

	features, err := geo.ParseFeatureCollection(data)
	if err != nil {
		return nil, &MapLoadError{Map: mapName, Kind: MapParseFailure, Reason: fmt.Sprintf("parsing %s: %v", path, err), Err: err}
	}
	return features, nil
}

// readProvinceMappings reads provinces.json, an object from nation id to a
// file name under the provinces directory. A missing file means no provinces.
func readProvinceMappings(opts LoadOptions) (map[string]string, error) {
	path := filepath.Join(opts.Dir, ProvinceMappings)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, &MapLoadError{Map: opts.Name, Kind: MapReadFailure, Reason: fmt.Sprintf("reading %s: %v", path, err), Err: err}
	}

	mappings := make(map[string]string)
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, &MapLoadError{Map: opts.Name, Kind: MapParseFailure, Reason: fmt.Sprintf("parsing %s: %v", path, err), Err: err}
	}
	return mappings, nil
}

func buildNations(opts LoadOptions, features []*geojson.Feature, mappings map[string]string) (*Collection, error) {
	nations := make([]*Region, 0, len(features))
	seen := make(map[string]bool, len(features))

	for i, src := range features {
		feature, err := geo.NewFeature(src, LogicalBounds, opts.NationNameProperty, opts.NationIDProperty)
		if err != nil {
			return nil, featureError(opts.Name, fmt.Sprintf("nation feature #%d", i), err)
		}

		if feature.Area() <= MinNationArea {
			debug.Logger().Debug("nation skipped: area below minimum",
				"map", opts.Name,
				"id", feature.ID,
				"area", feature.Area(),
				"min_area", MinNationArea,
			)
			continue
		}

		if seen[feature.ID] {
			return nil, &MapLoadError{
				Map:    opts.Name,
				Kind:   MapParseFailure,
				Reason: fmt.Sprintf("nation feature #%d: %v: %s", i, ErrDuplicateID, feature.ID),
				Err:    ErrDuplicateID,
			}
		}
		seen[feature.ID] = true

		var provinces *Collection
		if file, ok := mappings[feature.ID]; ok {
			provinces, err = loadProvinces(opts, feature.ID, file)
			if err != nil {
				return nil, err
			}
		}

		nations = append(nations, NewNation(feature, provinces))
	}

	c, err := NewCollection(nations)
	if err != nil {
		return nil, &MapLoadError{Map: opts.Name, Kind: MapParseFailure, Reason: err.Error(), Err: err}
	}

	debug.Log("map %s: loaded %d nations (%d features, %d with provinces)",
		opts.Name, c.Len(), len(features), countWithProvinces(c))
	return c, nil
}

func loadProvinces(opts LoadOptions, nationID, file string) (*Collection, error) {
	path := filepath.Join(opts.Dir, ProvincesDir, file)
	features, err := readFeatureFile(opts.Name, path)
	if err != nil {
		return nil, err
	}

	provinces := make([]*Region, 0, len(features))
	for i, src := range features {
		feature, err := geo.NewFeature(src, LogicalBounds, opts.ProvinceNameProperty, opts.ProvinceIDProperty)
		if err != nil {
			return nil, featureError(opts.Name, fmt.Sprintf("province feature #%d of %s", i, nationID), err)
		}
		provinces = append(provinces, NewProvince(feature))
	}

	c, err := NewCollection(provinces)
	if err != nil {
		return nil, &MapLoadError{
			Map:    opts.Name,
			Kind:   MapParseFailure,
			Reason: fmt.Sprintf("provinces of %s: %v", nationID, err),
			Err:    err,
		}
	}
	return c, nil
}

func countWithProvinces(c *Collection) int {
	n := 0
	for _, r := range c.Regions() {
		if _, ok := r.Provinces(); ok {
			n++
		}
	}
	return n
}
