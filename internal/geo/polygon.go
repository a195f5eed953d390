package geo

import "math"

// PolygonContains reports whether pt lies inside polygon using ray casting.
// Points exactly on an edge have no defined result.
// See https://wrf.ecse.rpi.edu/Research/Short_Notes/pnpoly.html
func PolygonContains(pt Point, polygon []Point) bool {
	n := len(polygon)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			crossX := (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if pt.X < crossX {
				inside = !inside
			}
		}
	}
	return inside
}

// PolygonArea returns the unsigned shoelace area of polygon
func PolygonArea(polygon []Point) float64 {
	return math.Abs(signedArea(polygon))
}

// signedArea is positive for counter-clockwise rings in a y-up frame
func signedArea(polygon []Point) float64 {
	n := len(polygon)
	if n < 3 {
		return 0
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		start := polygon[i]
		end := polygon[(i+1)%n]
		sum += start.X*end.Y - start.Y*end.X
	}
	return sum / 2
}

// BoundsOf returns the bounding box of polygon.
// An empty polygon yields a zero rectangle, which contains no point.
func BoundsOf(polygon []Point) Rect {
	if len(polygon) == 0 {
		return Rect{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range polygon {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
