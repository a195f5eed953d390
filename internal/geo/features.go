package geo

import (
	"fmt"
	"strconv"

	geojson "github.com/paulmach/go.geojson"
)

// DefaultIDProperty is looked up when a feature carries no embedded id
const DefaultIDProperty = "id"

// Ring is a closed boundary stored without its duplicated closing point
type Ring []LatLon

// Polygon is an outer ring followed by optional holes
type Polygon []Ring

// Feature is an identified, named region with geographic and projected forms.
// Projected rings, their bounds and the total area always match the last
// rectangle passed to NewFeature or OnResize.
type Feature struct {
	ID   string
	Name string

	polygons  []Polygon
	projected [][]Point
	bounds    []Rect
	totalArea float64
}

// NewFeature builds a Feature from a GeoJSON feature and projects it into target.
// nameProperty is required. idProperty may be empty, in which case the
// embedded feature id is used, falling back to the "id" property.
func NewFeature(src *geojson.Feature, target Rect, nameProperty, idProperty string) (*Feature, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil feature", ErrInvalidGeometry)
	}

	id, ok := resolveID(src, idProperty)
	if !ok {
		key := idProperty
		if key == "" {
			key = DefaultIDProperty
		}
		return nil, fmt.Errorf("%w: no embedded id and no value at property %q", ErrMissingID, key)
	}

	name, ok := PropertyString(src, nameProperty)
	if !ok {
		return nil, fmt.Errorf("%w: no value at property %q for feature %s", ErrMissingName, nameProperty, id)
	}

	polygons, err := polygonsOf(src.Geometry)
	if err != nil {
		return nil, fmt.Errorf("feature %s (%s): %w", id, name, err)
	}

	f := &Feature{
		ID:       id,
		Name:     name,
		polygons: polygons,
	}
	f.OnResize(target)
	return f, nil
}

// OnResize re-projects every ring against target and refreshes bounds and area
func (f *Feature) OnResize(target Rect) {
	projected := make([][]Point, 0, len(f.projected))
	for _, polygon := range f.polygons {
		for _, ring := range polygon {
			points := make([]Point, len(ring))
			for i, p := range ring {
				points[i] = Project(p, target)
			}
			projected = append(projected, points)
		}
	}

	bounds := make([]Rect, len(projected))
	total := 0.0
	for i, ring := range projected {
		bounds[i] = BoundsOf(ring)
		total += PolygonArea(ring)
	}

	f.projected = projected
	f.bounds = bounds
	f.totalArea = total
}

// Includes reports whether any projected ring contains pt.
// Ring bounds are checked first as a necessary condition only.
func (f *Feature) Includes(pt Point) bool {
	for i, b := range f.bounds {
		if b.Contains(pt) && PolygonContains(pt, f.projected[i]) {
			return true
		}
	}
	return false
}

// Area returns the summed shoelace area of all projected rings
func (f *Feature) Area() float64 {
	return f.totalArea
}

// Polygons returns the geographic polygons. Callers must not modify them.
func (f *Feature) Polygons() []Polygon {
	return f.polygons
}

// Projected returns one projected point sequence per ring
func (f *Feature) Projected() [][]Point {
	return f.projected
}

// Bounds returns one bounding box per projected ring
func (f *Feature) Bounds() []Rect {
	return f.bounds
}

// PropertyString looks up key in the feature properties.
// Strings are returned as-is and numbers in their shortest decimal form;
// any other value counts as absent.
func PropertyString(src *geojson.Feature, key string) (string, bool) {
	if key == "" || src.Properties == nil {
		return "", false
	}
	return scalarString(src.Properties[key])
}

func resolveID(src *geojson.Feature, idProperty string) (string, bool) {
	if idProperty != "" || src.ID == nil {
		key := idProperty
		if key == "" {
			key = DefaultIDProperty
		}
		return PropertyString(src, key)
	}
	return scalarString(src.ID)
}

func scalarString(v interface{}) (string, bool) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	default:
		return "", false
	}
	return s, s != ""
}

// polygonsOf normalizes Polygon and MultiPolygon geometry into a polygon list
func polygonsOf(g *geojson.Geometry) ([]Polygon, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: no geometry", ErrInvalidGeometry)
	}

	var raw [][][][]float64
	switch {
	case g.IsPolygon():
		raw = [][][][]float64{g.Polygon}
	case g.IsMultiPolygon():
		raw = g.MultiPolygon
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidGeometry, g.Type)
	}

	polygons := make([]Polygon, 0, len(raw))
	for _, rawPolygon := range raw {
		polygon := make(Polygon, 0, len(rawPolygon))
		for _, rawRing := range rawPolygon {
			ring, err := ringOf(rawRing)
			if err != nil {
				return nil, err
			}
			polygon = append(polygon, ring)
		}
		polygons = append(polygons, polygon)
	}
	return polygons, nil
}

// ringOf converts GeoJSON positions into a Ring.
// GeoJSON repeats the first position at the end; that closing point is dropped.
// See RFC 7946, section 3.1.6.
func ringOf(positions [][]float64) (Ring, error) {
	if len(positions) == 0 {
		return Ring{}, nil
	}

	open := positions[:len(positions)-1]
	ring := make(Ring, len(open))
	for i, pos := range open {
		if len(pos) < 2 {
			return nil, fmt.Errorf("%w: position %d has %d coordinates", ErrInvalidGeometry, i, len(pos))
		}
		ring[i] = LatLon{Lon: pos[0], Lat: pos[1]}
	}
	return ring, nil
}
