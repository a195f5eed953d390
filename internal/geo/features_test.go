package geo

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logical = NewRect(0, 0, 100, 100)

// square returns a closed GeoJSON ring covering [lon, lon+size] x [lat, lat+size]
func square(lon, lat, size float64) [][]float64 {
	return [][]float64{
		{lon, lat},
		{lon + size, lat},
		{lon + size, lat + size},
		{lon, lat + size},
		{lon, lat},
	}
}

func namedFeature(g *geojson.Geometry, props map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(g)
	for k, v := range props {
		f.SetProperty(k, v)
	}
	return f
}

func TestNewFeatureDropsClosingPoint(t *testing.T) {
	src := namedFeature(
		geojson.NewPolygonGeometry([][][]float64{square(0, 0, 10)}),
		map[string]interface{}{"ISO_A3": "AAA", "ADMIN": "Alpha"},
	)

	f, err := NewFeature(src, logical, "ADMIN", "ISO_A3")
	require.NoError(t, err)

	assert.Equal(t, "AAA", f.ID)
	assert.Equal(t, "Alpha", f.Name)
	require.Len(t, f.Polygons(), 1)
	require.Len(t, f.Polygons()[0], 1)
	assert.Len(t, f.Polygons()[0][0], 4)
	require.Len(t, f.Projected(), 1)
	assert.Len(t, f.Projected()[0], 4)
	assert.Len(t, f.Bounds(), 1)
}

func TestNewFeatureMultiPolygonFlattensRings(t *testing.T) {
	src := namedFeature(
		geojson.NewMultiPolygonGeometry(
			[][][]float64{square(0, 0, 36), square(9, 9, 9)},
			[][][]float64{square(-90, -45, 18)},
		),
		map[string]interface{}{"name": "Islands"},
	)
	src.ID = "isl"

	f, err := NewFeature(src, NewRect(0, 0, 360, 180), "name", "")
	require.NoError(t, err)

	assert.Equal(t, "isl", f.ID)
	assert.Len(t, f.Polygons(), 2)
	assert.Len(t, f.Projected(), 3)
	assert.Len(t, f.Bounds(), 3)
	// one projected unit per degree: 36*36 + 9*9 + 18*18
	assert.InDelta(t, 1296.0+81+324, f.Area(), 1e-9)
}

func TestNewFeatureIDResolution(t *testing.T) {
	polygon := geojson.NewPolygonGeometry([][][]float64{square(0, 0, 10)})

	tests := []struct {
		name       string
		embedded   interface{}
		props      map[string]interface{}
		idProperty string
		want       string
		wantErr    error
	}{
		{"embedded string", "FRA", map[string]interface{}{"n": "France"}, "", "FRA", nil},
		{"embedded number", float64(42), map[string]interface{}{"n": "Answer"}, "", "42", nil},
		{"property wins when named", "ignored", map[string]interface{}{"n": "X", "code": "XYZ"}, "code", "XYZ", nil},
		{"numeric property", nil, map[string]interface{}{"n": "X", "code": 7.5}, "code", "7.5", nil},
		{"fallback id property", nil, map[string]interface{}{"n": "X", "id": "fallback"}, "", "fallback", nil},
		{"missing", nil, map[string]interface{}{"n": "X"}, "", "", ErrMissingID},
		{"missing named property", "embedded", map[string]interface{}{"n": "X"}, "code", "", ErrMissingID},
		{"non-scalar property", nil, map[string]interface{}{"n": "X", "code": []interface{}{"a"}}, "code", "", ErrMissingID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := namedFeature(polygon, tt.props)
			src.ID = tt.embedded

			f, err := NewFeature(src, logical, "n", tt.idProperty)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.ID)
		})
	}
}

func TestNewFeatureRejectsMissingName(t *testing.T) {
	src := namedFeature(
		geojson.NewPolygonGeometry([][][]float64{square(0, 0, 10)}),
		map[string]interface{}{"ISO_A3": "AAA", "ADMIN": true},
	)

	_, err := NewFeature(src, logical, "ADMIN", "ISO_A3")
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestNewFeatureRejectsGeometry(t *testing.T) {
	props := map[string]interface{}{"id": "p", "name": "P"}

	tests := []struct {
		name     string
		geometry *geojson.Geometry
	}{
		{"absent", nil},
		{"point", geojson.NewPointGeometry([]float64{1, 2})},
		{"line", geojson.NewLineStringGeometry([][]float64{{0, 0}, {1, 1}})},
		{"short position", geojson.NewPolygonGeometry([][][]float64{{{0, 0}, {1}, {1, 1}, {0, 0}}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFeature(namedFeature(tt.geometry, props), logical, "name", "")
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestFeatureResizeHasNoDrift(t *testing.T) {
	src := namedFeature(
		geojson.NewMultiPolygonGeometry(
			[][][]float64{square(-20, 10, 30)},
			[][][]float64{square(100, -60, 12.5)},
		),
		map[string]interface{}{"id": "drift", "name": "Drift"},
	)
	r1 := NewRect(0, 0, 640, 480)
	r2 := NewRect(-15, 30, 1920, 1080)

	resized, err := NewFeature(src, logical, "name", "")
	require.NoError(t, err)
	resized.OnResize(r1)
	resized.OnResize(r2)

	fresh, err := NewFeature(src, r2, "name", "")
	require.NoError(t, err)

	assert.Equal(t, fresh.Projected(), resized.Projected())
	assert.Equal(t, fresh.Bounds(), resized.Bounds())
	assert.Equal(t, fresh.Area(), resized.Area())
}

func TestFeatureIncludesMatchesExhaustiveRingTest(t *testing.T) {
	src := namedFeature(
		geojson.NewMultiPolygonGeometry(
			[][][]float64{square(-100, -40, 50)},
			[][][]float64{square(20, 10, 30)},
		),
		map[string]interface{}{"id": "two", "name": "Two"},
	)
	f, err := NewFeature(src, NewRect(0, 0, 360, 180), "name", "")
	require.NoError(t, err)

	for x := 0.5; x < 360; x += 7 {
		for y := 0.5; y < 180; y += 7 {
			pt := Point{X: x, Y: y}
			want := false
			for _, ring := range f.Projected() {
				if PolygonContains(pt, ring) {
					want = true
				}
			}
			assert.Equal(t, want, f.Includes(pt), "point %v", pt)
		}
	}

	assert.True(t, f.Includes(Project(LatLon{Lon: -75, Lat: -15}, NewRect(0, 0, 360, 180))))
	assert.True(t, f.Includes(Project(LatLon{Lon: 35, Lat: 25}, NewRect(0, 0, 360, 180))))
	assert.False(t, f.Includes(Point{X: -5, Y: -5}))
}

func TestParseFeatureCollection(t *testing.T) {
	doc := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "id": 7, "properties": {"name": "Seven"},
			 "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]}}
		]
	}`)

	features, err := ParseFeatureCollection(doc)
	require.NoError(t, err)
	require.Len(t, features, 1)

	f, err := NewFeature(features[0], logical, "name", "")
	require.NoError(t, err)
	assert.Equal(t, "7", f.ID)
	assert.Equal(t, "Seven", f.Name)

	_, err = ParseFeatureCollection([]byte(`{"type": "FeatureCollection", "features": [`))
	assert.Error(t, err)
}
