package ui

import (
	"math"

	"mapgame/internal/debug"
	"mapgame/internal/geo"
	"mapgame/internal/render"
	"mapgame/internal/session"
	"mapgame/internal/worldmap"

	"github.com/gdamore/tcell/v2"
)

const (
	zoomStep = 1.25
	panStep  = 0.1
)

// MapView displays the world map and routes pointer input to it.
// Pointer coordinates are screen cells; a cell is hit-tested at its center.
type MapView struct {
	world    *worldmap.Collection
	player   *session.Player
	renderer *render.MapRenderer
	canvas   *render.Canvas
	width    int
	height   int
	zoom     float64
	minZoom  float64
	maxZoom  float64
	panX     float64
	panY     float64
	target   geo.Rect
}

// NewMapView creates a new map view and projects world onto it
func NewMapView(world *worldmap.Collection, player *session.Player, width, height int, minZoom, maxZoom float64) *MapView {
	canvas := render.NewCanvas(width, height)
	renderer := render.NewMapRenderer(canvas)

	ids := make([]string, 0, world.Len())
	for _, r := range world.Regions() {
		ids = append(ids, r.ID())
	}
	renderer.SetPalette(ids)

	m := &MapView{
		world:    world,
		player:   player,
		renderer: renderer,
		canvas:   canvas,
		width:    width,
		height:   height,
		zoom:     minZoom,
		minZoom:  minZoom,
		maxZoom:  maxZoom,
	}
	m.applyTarget()
	return m
}

// Draw renders the map view to the screen
func (m *MapView) Draw(screen tcell.Screen) {
	m.canvas.Clear()

	m.renderer.RenderRegions(m.world.Views())

	provinces, hasProvinces := m.player.Provinces(m.world)
	if hasProvinces {
		m.renderer.RenderRegions(provinces.Views())
	}

	if r, ok := m.highlighted(); ok {
		views := m.world.Views()
		if hasProvinces && r.Kind() == worldmap.KindProvince {
			views = provinces.Views()
		}
		for _, v := range views {
			if v.ID == r.ID() {
				m.renderer.RenderLabel(v)
				break
			}
		}
	}

	m.canvas.Blit(screen, 0, 0)
}

// HoverAt highlights the region under cell (x, y). Inside the player's
// nation its provinces react instead of the nation itself.
func (m *MapView) HoverAt(x, y int) (*worldmap.Region, bool) {
	pt := m.PointAt(x, y)

	if provinces, ok := m.provincesAt(pt); ok {
		m.world.ClearHighlight()
		return hover(provinces, pt)
	}

	if provinces, ok := m.player.Provinces(m.world); ok {
		provinces.ClearHighlight()
	}
	return hover(m.world, pt)
}

// hover skips the hit test while the highlighted region still contains pt
func hover(c *worldmap.Collection, pt geo.Point) (*worldmap.Region, bool) {
	if r, ok := c.Highlighted(); ok && r.Includes(pt) {
		return r, true
	}
	if _, ok := c.HighlightAt(pt); !ok {
		return nil, false
	}
	return c.Highlighted()
}

// ClickAt lets the player choose a nation, or a province once a nation
// with provinces is chosen
func (m *MapView) ClickAt(x, y int) (*worldmap.Region, bool) {
	pt := m.PointAt(x, y)

	if !m.player.HasNation() {
		if _, ok := m.player.ChooseAt(m.world, pt); !ok {
			return nil, false
		}
		return m.player.Nation(m.world)
	}

	provinces, ok := m.provincesAt(pt)
	if !ok {
		return nil, false
	}
	if _, ok := provinces.SelectAt(pt); !ok {
		return nil, false
	}
	return provinces.Selected()
}

// provincesAt returns the player's provinces when pt lies in the player's nation
func (m *MapView) provincesAt(pt geo.Point) (*worldmap.Collection, bool) {
	nation, ok := m.player.Nation(m.world)
	if !ok || !nation.Includes(pt) {
		return nil, false
	}
	return nation.Provinces()
}

func (m *MapView) highlighted() (*worldmap.Region, bool) {
	if provinces, ok := m.player.Provinces(m.world); ok {
		if r, ok := provinces.Highlighted(); ok {
			return r, true
		}
	}
	return m.world.Highlighted()
}

// PointAt returns the center of screen cell (x, y) in projected coordinates
func (m *MapView) PointAt(x, y int) geo.Point {
	return geo.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

// LatLonAt returns the geographic position under screen cell (x, y)
func (m *MapView) LatLonAt(x, y int) geo.LatLon {
	return geo.Unproject(m.PointAt(x, y), m.target)
}

// UpdateDimensions updates the view dimensions when the screen is resized
func (m *MapView) UpdateDimensions(width, height int) {
	m.width = width
	m.height = height

	m.canvas = render.NewCanvas(width, height)
	m.renderer.UpdateCanvas(m.canvas)
	m.applyTarget()
}

// ZoomIn scales the map up around the screen center
func (m *MapView) ZoomIn() {
	m.SetZoom(m.zoom * zoomStep)
}

// ZoomOut scales the map down around the screen center
func (m *MapView) ZoomOut() {
	m.SetZoom(m.zoom / zoomStep)
}

// SetZoom clamps zoom to the configured range and re-projects the map
func (m *MapView) SetZoom(zoom float64) {
	zoom = math.Max(m.minZoom, math.Min(m.maxZoom, zoom))
	if zoom == m.zoom {
		return
	}
	m.zoom = zoom
	m.applyTarget()
	debug.Log("Map zoom changed to %.2f", zoom)
}

// Zoom returns the current zoom factor
func (m *MapView) Zoom() float64 {
	return m.zoom
}

// Pan moves the view by a fraction of the screen size per step
func (m *MapView) Pan(dx, dy int) {
	m.panX += float64(dx) * panStep * float64(m.width)
	m.panY += float64(dy) * panStep * float64(m.height)
	m.applyTarget()
}

// Target returns the rectangle the world is currently projected into
func (m *MapView) Target() geo.Rect {
	return m.target
}

func (m *MapView) applyTarget() {
	screen := geo.NewRect(0, 0, float64(m.width), float64(m.height)).Scale(m.zoom)
	screen.X -= m.panX
	screen.Y -= m.panY

	m.target = screen
	m.world.OnResize(screen)
}
