package geo

import (
	"strings"

	"github.com/jonas-p/go-shp"
	geojson "github.com/paulmach/go.geojson"
)

// ShapefileLoader reads polygon shapefiles into GeoJSON features, so that
// Natural Earth .shp downloads can stand in for a nations.geojson file
type ShapefileLoader struct {
	path string
}

// NewShapefileLoader creates a loader for the .shp file at path.
// The matching .dbf next to it supplies feature properties.
func NewShapefileLoader(path string) *ShapefileLoader {
	return &ShapefileLoader{
		path: path,
	}
}

// Load converts every polygon record into a feature.
// Shapefiles do not group rings: a clockwise ring starts a new polygon and
// each following counter-clockwise ring is added to it as a hole.
// Non-polygon records are skipped.
func (s *ShapefileLoader) Load() ([]*geojson.Feature, error) {
	shape, err := shp.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer shape.Close()

	fields := shape.Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		// Field names are fixed-size byte arrays padded with nulls
		names[i] = strings.TrimRight(string(field.Name[:]), "\x00 ")
	}

	features := make([]*geojson.Feature, 0)

	for shape.Next() {
		n, p := shape.Shape()

		var polyline *shp.PolyLine
		switch geom := p.(type) {
		case *shp.Polygon:
			pl := shp.PolyLine(*geom)
			polyline = &pl
		default:
			continue
		}

		polygons := groupRings(polyline)
		if len(polygons) == 0 {
			continue
		}

		feature := geojson.NewMultiPolygonFeature(polygons...)
		for i, name := range names {
			if attr := strings.TrimSpace(shape.ReadAttribute(n, i)); attr != "" {
				feature.SetProperty(name, attr)
			}
		}
		features = append(features, feature)
	}

	return features, nil
}

// groupRings splits a polygon record into GeoJSON polygons using ring winding
func groupRings(pl *shp.PolyLine) [][][][]float64 {
	var polygons [][][][]float64

	for part := 0; part < len(pl.Parts); part++ {
		start := int(pl.Parts[part])
		end := len(pl.Points)
		if part+1 < len(pl.Parts) {
			end = int(pl.Parts[part+1])
		}
		if start >= end || end > len(pl.Points) {
			continue
		}

		ring := make([][]float64, 0, end-start)
		projected := make([]Point, 0, end-start)
		for _, point := range pl.Points[start:end] {
			ring = append(ring, []float64{point.X, point.Y})
			projected = append(projected, Point{X: point.X, Y: point.Y})
		}

		// Clockwise in lon/lat space means an outer ring
		outer := signedArea(projected) <= 0
		if outer || len(polygons) == 0 {
			polygons = append(polygons, [][][]float64{ring})
			continue
		}
		last := len(polygons) - 1
		polygons[last] = append(polygons[last], ring)
	}

	return polygons
}
