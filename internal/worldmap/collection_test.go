package worldmap

import (
	"math/rand"
	"testing"

	"mapgame/internal/geo"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// box returns a closed GeoJSON ring spanning the given lon/lat ranges
func box(minLon, minLat, maxLon, maxLat float64) [][]float64 {
	return [][]float64{
		{minLon, minLat},
		{maxLon, minLat},
		{maxLon, maxLat},
		{minLon, maxLat},
		{minLon, minLat},
	}
}

func newTestFeature(t *testing.T, id string, ring [][]float64, target geo.Rect) *geo.Feature {
	t.Helper()
	src := geojson.NewPolygonFeature([][][]float64{ring})
	src.ID = id
	src.SetProperty("name", "Region "+id)

	f, err := geo.NewFeature(src, target, "name", "")
	require.NoError(t, err)
	return f
}

// twoNations lays out nations A and B as adjacent unit squares in a 2x1 rectangle
func twoNations(t *testing.T) *Collection {
	t.Helper()
	target := geo.NewRect(0, 0, 2, 1)

	c, err := NewCollection([]*Region{
		NewNation(newTestFeature(t, "A", box(-180, -90, 0, 90), target), nil),
		NewNation(newTestFeature(t, "B", box(0, -90, 180, 90), target), nil),
	})
	require.NoError(t, err)
	return c
}

func assertFlags(t *testing.T, c *Collection) {
	t.Helper()

	highlighted, selected := 0, 0
	for _, r := range c.Regions() {
		if r.IsHighlighted() {
			highlighted++
			h, ok := c.Highlighted()
			require.True(t, ok)
			assert.Equal(t, h.ID(), r.ID())
		}
		if r.IsSelected() {
			selected++
			s, ok := c.Selected()
			require.True(t, ok)
			assert.Equal(t, s.ID(), r.ID())
		}
	}
	assert.LessOrEqual(t, highlighted, 1)
	assert.LessOrEqual(t, selected, 1)
	if _, ok := c.Highlighted(); ok {
		assert.Equal(t, 1, highlighted)
	}
	if _, ok := c.Selected(); ok {
		assert.Equal(t, 1, selected)
	}
}

func TestHitTestAdjacentSquares(t *testing.T) {
	c := twoNations(t)

	id, ok := c.HitTest(geo.Point{X: 0.5, Y: 0.5})
	assert.True(t, ok)
	assert.Equal(t, "A", id)

	id, ok = c.HitTest(geo.Point{X: 1.5, Y: 0.5})
	assert.True(t, ok)
	assert.Equal(t, "B", id)

	_, ok = c.HitTest(geo.Point{X: 5, Y: 5})
	assert.False(t, ok)

	for _, r := range c.Regions() {
		assert.False(t, r.IsHighlighted(), "hit test must not change state")
	}
}

func TestHighlightAt(t *testing.T) {
	c := twoNations(t)

	id, ok := c.HighlightAt(geo.Point{X: 0.5, Y: 0.5})
	require.True(t, ok)
	assert.Equal(t, "A", id)
	assertFlags(t, c)

	id, ok = c.HighlightAt(geo.Point{X: 1.5, Y: 0.25})
	require.True(t, ok)
	assert.Equal(t, "B", id)
	a, _ := c.Get("A")
	assert.False(t, a.IsHighlighted())
	assertFlags(t, c)

	_, ok = c.HighlightAt(geo.Point{X: -3, Y: 0.5})
	assert.False(t, ok)
	_, ok = c.Highlighted()
	assert.False(t, ok)
	assertFlags(t, c)
}

func TestSelectAt(t *testing.T) {
	c := twoNations(t)

	id, ok := c.SelectAt(geo.Point{X: 0.5, Y: 0.5})
	require.True(t, ok)
	assert.Equal(t, "A", id)
	assertFlags(t, c)

	// empty space keeps the current selection
	_, ok = c.SelectAt(geo.Point{X: 9, Y: 9})
	assert.False(t, ok)
	s, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "A", s.ID())

	// reselecting is allowed and unmarks exactly the previous region
	id, ok = c.SelectAt(geo.Point{X: 1.5, Y: 0.5})
	require.True(t, ok)
	assert.Equal(t, "B", id)
	a, _ := c.Get("A")
	b, _ := c.Get("B")
	assert.False(t, a.IsSelected())
	assert.True(t, b.IsSelected())
	assertFlags(t, c)

	// selecting the same region again keeps it selected
	_, ok = c.SelectAt(geo.Point{X: 1.2, Y: 0.8})
	require.True(t, ok)
	assert.True(t, b.IsSelected())
	assertFlags(t, c)

	assert.False(t, c.Select("missing"))
	assert.True(t, b.IsSelected())

	c.ClearSelection()
	_, ok = c.Selected()
	assert.False(t, ok)
	assert.False(t, b.IsSelected())
}

func TestFlagInvariantsUnderRandomPointer(t *testing.T) {
	target := geo.NewRect(0, 0, 360, 180)
	var regions []*Region
	for i, lon := range []float64{-180, -120, -60, 0, 60, 120} {
		ring := box(lon, -60, lon+60, 60)
		regions = append(regions, NewNation(newTestFeature(t, string(rune('A'+i)), ring, target), nil))
	}
	c, err := NewCollection(regions)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		pt := geo.Point{X: rng.Float64()*400 - 20, Y: rng.Float64()*220 - 20}
		if rng.Intn(3) == 0 {
			c.SelectAt(pt)
		} else {
			id, ok := c.HighlightAt(pt)
			if ok {
				h, _ := c.Highlighted()
				assert.Equal(t, id, h.ID())
			}
		}
		assertFlags(t, c)
	}
}

func TestOverlapSmallestAreaWins(t *testing.T) {
	target := geo.NewRect(0, 0, 360, 180)
	c, err := NewCollection([]*Region{
		NewNation(newTestFeature(t, "big", box(-90, -45, 90, 45), target), nil),
		NewNation(newTestFeature(t, "small", box(-10, -10, 10, 10), target), nil),
		NewNation(newTestFeature(t, "twin-b", box(100, 50, 110, 60), target), nil),
		NewNation(newTestFeature(t, "twin-a", box(100, 50, 110, 60), target), nil),
	})
	require.NoError(t, err)

	// repeat to show the result does not depend on map iteration order
	for i := 0; i < 20; i++ {
		id, ok := c.HitTest(geo.Project(geo.LatLon{Lon: 0, Lat: 0}, target))
		require.True(t, ok)
		assert.Equal(t, "small", id)

		id, ok = c.HitTest(geo.Project(geo.LatLon{Lon: 50, Lat: 30}, target))
		require.True(t, ok)
		assert.Equal(t, "big", id)

		id, ok = c.HitTest(geo.Project(geo.LatLon{Lon: 105, Lat: 55}, target))
		require.True(t, ok)
		assert.Equal(t, "twin-a", id, "equal areas fall back to the lowest id")
	}
}

func TestOnResizeKeepsFlags(t *testing.T) {
	c := twoNations(t)
	c.HighlightAt(geo.Point{X: 0.5, Y: 0.5})
	c.SelectAt(geo.Point{X: 1.5, Y: 0.5})

	c.OnResize(geo.NewRect(0, 0, 200, 100))

	h, ok := c.Highlighted()
	require.True(t, ok)
	assert.Equal(t, "A", h.ID())
	s, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "B", s.ID())

	id, ok := c.HitTest(geo.Point{X: 150, Y: 50})
	require.True(t, ok)
	assert.Equal(t, "B", id)
	_, ok = c.HitTest(geo.Point{X: 1.5, Y: 0.5})
	assert.True(t, ok, "A now covers the old B coordinates")
}

func TestNewCollectionRejectsDuplicates(t *testing.T) {
	target := geo.NewRect(0, 0, 2, 1)
	_, err := NewCollection([]*Region{
		NewNation(newTestFeature(t, "A", box(-180, -90, 0, 90), target), nil),
		NewNation(newTestFeature(t, "A", box(0, -90, 180, 90), target), nil),
	})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestViews(t *testing.T) {
	c := twoNations(t)
	c.HighlightAt(geo.Point{X: 1.5, Y: 0.5})
	c.SelectAt(geo.Point{X: 0.5, Y: 0.5})

	views := c.Views()
	require.Len(t, views, 2)

	assert.Equal(t, "A", views[0].ID)
	assert.Equal(t, "Region A", views[0].Name)
	assert.True(t, views[0].Selected)
	assert.False(t, views[0].Highlighted)
	assert.Len(t, views[0].Polygons, 1)
	assert.Len(t, views[0].Polygons[0], 4)

	assert.Equal(t, "B", views[1].ID)
	assert.True(t, views[1].Highlighted)
	assert.False(t, views[1].Provinces)
}
