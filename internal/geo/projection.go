package geo

import "math"

// Geographic domain of the equirectangular projection
const (
	MaxLongitude = 180.0
	MaxLatitude  = 90.0
)

// Point represents a position on the projection target
type Point struct {
	X float64
	Y float64
}

// LatLon represents a geographic coordinate
type LatLon struct {
	Lat float64
	Lon float64
}

// Rect is an axis-aligned rectangle: origin plus size
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle anchored at (x, y)
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains reports whether p lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the midpoint of the rectangle
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Scale grows or shrinks the rectangle by factor about its center
func (r Rect) Scale(factor float64) Rect {
	c := r.Center()
	w := r.Width * factor
	h := r.Height * factor
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// Project converts a geographic coordinate into the target rectangle.
// Latitude grows toward the top of the rectangle. Coordinates outside
// [-180, 180] x [-90, 90] are not clamped and land outside target.
func Project(p LatLon, target Rect) Point {
	x := (p.Lon + MaxLongitude) * target.Width / (2 * MaxLongitude)
	y := target.Height - (p.Lat+MaxLatitude)*target.Height/(2*MaxLatitude)
	return Point{X: target.X + x, Y: target.Y + y}
}

// Unproject converts a point on the target rectangle back to lat/lon
func Unproject(p Point, target Rect) LatLon {
	if target.Width == 0 || target.Height == 0 {
		return LatLon{Lat: math.NaN(), Lon: math.NaN()}
	}

	lon := (p.X-target.X)*(2*MaxLongitude)/target.Width - MaxLongitude
	lat := (target.Height-(p.Y-target.Y))*(2*MaxLatitude)/target.Height - MaxLatitude
	return LatLon{Lat: lat, Lon: lon}
}
