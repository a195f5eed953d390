package render

import (
	"math"

	"mapgame/internal/debug"
	"mapgame/internal/geo"
	"mapgame/internal/worldmap"

	"github.com/gdamore/tcell/v2"
)

// MapRenderer draws region outlines to a canvas. Projected coordinates are
// canvas cells: the point (x, y) lies in cell (floor(x), floor(y)).
type MapRenderer struct {
	canvas  *Canvas
	palette map[string]tcell.Color
}

// NewMapRenderer creates a new map renderer
func NewMapRenderer(canvas *Canvas) *MapRenderer {
	return &MapRenderer{
		canvas:  canvas,
		palette: make(map[string]tcell.Color),
	}
}

// SetPalette assigns one outline color per region id, in the given order
func (m *MapRenderer) SetPalette(ids []string) {
	colors := RegionPalette(len(ids))
	m.palette = make(map[string]tcell.Color, len(ids))
	for i, id := range ids {
		m.palette[id] = colors[i]
	}
}

// RenderRegions draws every view in DrawOrder. The selected region is
// shaded before outlines are drawn.
func (m *MapRenderer) RenderRegions(views []worldmap.RegionView) {
	for _, v := range views {
		if v.Selected && v.Kind == worldmap.KindNation {
			m.FillPolygons(v.Polygons, selectedFillChar, StyleSelectedFill)
		}
	}

	for _, v := range DrawOrder(views) {
		m.DrawPolygons(v.Polygons, CharForView(v), StyleForView(v, m.palette[v.ID]))
	}
}

// RenderLabel writes the region name at the center of its largest ring
func (m *MapRenderer) RenderLabel(v worldmap.RegionView) {
	ring := largestRing(v.Polygons)
	if ring == nil {
		return
	}

	center := geo.BoundsOf(ring).Center()
	y := int(math.Floor(center.Y))
	if y < 0 || y >= m.canvas.Height() {
		return
	}
	m.canvas.DrawTextCentered(int(math.Floor(center.X)), y, " "+v.Name+" ", StyleRegionLabel)
}

// DrawOrder returns views with plain regions first, then the selected
// one, then the highlighted one, so interaction outlines stay on top.
func DrawOrder(views []worldmap.RegionView) []worldmap.RegionView {
	ordered := make([]worldmap.RegionView, 0, len(views))
	var selected, highlighted []worldmap.RegionView

	for _, v := range views {
		switch {
		case v.Highlighted:
			highlighted = append(highlighted, v)
		case v.Selected:
			selected = append(selected, v)
		default:
			ordered = append(ordered, v)
		}
	}

	ordered = append(ordered, selected...)
	return append(ordered, highlighted...)
}

// DrawPolygons draws each ring as a closed outline
func (m *MapRenderer) DrawPolygons(polygons [][]geo.Point, char rune, style tcell.Style) {
	for _, ring := range polygons {
		if len(ring) == 0 {
			continue
		}
		prev := ring[len(ring)-1]
		for _, p := range ring {
			x0, y0 := cellOf(prev)
			x1, y1 := cellOf(p)
			if m.lineVisible(x0, y0, x1, y1) {
				m.DrawLine(x0, y0, x1, y1, char, style)
			}
			prev = p
		}
	}
}

// FillPolygons sets every cell whose center lies inside one of the rings
func (m *MapRenderer) FillPolygons(polygons [][]geo.Point, char rune, style tcell.Style) {
	filled := 0
	for _, ring := range polygons {
		if len(ring) < 3 {
			continue
		}

		b := geo.BoundsOf(ring)
		minX, minY := cellOf(geo.Point{X: b.X, Y: b.Y})
		maxX, maxY := cellOf(geo.Point{X: b.X + b.Width, Y: b.Y + b.Height})
		minX, minY = max(minX, 0), max(minY, 0)
		maxX, maxY = min(maxX, m.canvas.Width()-1), min(maxY, m.canvas.Height()-1)

		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if geo.PolygonContains(geo.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}, ring) {
					m.canvas.Set(x, y, char, style)
					filled++
				}
			}
		}
	}

	if debug.Enabled() {
		debug.Log("filled %d cells over %d rings", filled, len(polygons))
	}
}

// DrawLine implements Bresenham's line algorithm for drawing lines on the canvas
func (m *MapRenderer) DrawLine(x0, y0, x1, y1 int, char rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		m.canvas.Set(x0, y0, char, style)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// lineVisible rejects segments lying entirely on one side of the canvas
func (m *MapRenderer) lineVisible(x0, y0, x1, y1 int) bool {
	w, h := m.canvas.Width(), m.canvas.Height()
	switch {
	case x0 < 0 && x1 < 0, y0 < 0 && y1 < 0:
		return false
	case x0 >= w && x1 >= w, y0 >= h && y1 >= h:
		return false
	}
	return true
}

// UpdateCanvas updates the renderer's canvas
func (m *MapRenderer) UpdateCanvas(canvas *Canvas) {
	m.canvas = canvas
}

func cellOf(p geo.Point) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

func largestRing(polygons [][]geo.Point) []geo.Point {
	var best []geo.Point
	bestArea := -1.0
	for _, ring := range polygons {
		if a := geo.PolygonArea(ring); a > bestArea {
			best, bestArea = ring, a
		}
	}
	return best
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
