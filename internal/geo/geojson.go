package geo

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// ParseFeatureCollection decodes a GeoJSON FeatureCollection document
func ParseFeatureCollection(data []byte) ([]*geojson.Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}
	if fc.Type != "" && fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("failed to parse feature collection: unexpected type %q", fc.Type)
	}
	return fc.Features, nil
}
