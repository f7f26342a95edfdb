package geom

import (
	"image"
	"math"
)

// Point is a position in canvas space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Bounds returns the axis-aligned bounding box of points as its minimum and
// maximum corners. The box is seeded from the first point, so point sets that
// never touch zero still get exact bounds. An empty set yields two zero
// points.
func Bounds(points []Point) (lo, hi Point) {
	if len(points) == 0 {
		return Point{}, Point{}
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Rotate turns every point by degrees around pivot. Positive angles rotate
// clockwise on screen because Y points down.
func Rotate(points []Point, pivot Point, degrees float64) {
	sin, cos := math.Sincos(Radians(degrees))
	for i, p := range points {
		d := p.Sub(pivot)
		points[i] = Point{
			X: pivot.X + d.X*cos - d.Y*sin,
			Y: pivot.Y + d.X*sin + d.Y*cos,
		}
	}
}

// Clamp pulls every point into [0, width) x [0, height). Coordinates at or
// past the far edge become edge-1, negative and NaN coordinates become 0.
func Clamp(points []Point, width, height float64) {
	for i := range points {
		points[i].X = clampCoord(points[i].X, width)
		points[i].Y = clampCoord(points[i].Y, height)
	}
}

func clampCoord(v, limit float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v >= limit:
		return max(limit-1, 0)
	}
	return v
}

// Window returns the pixels touched by the box [lo, hi], restricted to a
// width x height canvas. A box inside the canvas always covers at least one
// pixel, even when it is degenerate along one or both axes.
func Window(lo, hi Point, width, height int) image.Rectangle {
	r := image.Rect(
		int(math.Floor(lo.X)), int(math.Floor(lo.Y)),
		int(math.Floor(hi.X))+1, int(math.Floor(hi.Y))+1,
	)
	return r.Intersect(image.Rect(0, 0, width, height))
}
