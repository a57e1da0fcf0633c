package obstacle

import "math"

// Point is a 2D coordinate. X increases to the right and Y increases
// down the page, the screen convention of the editor this engine
// serves. "North" therefore means decreasing Y.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Centroid returns the mean of the given points. It returns the zero
// point for an empty slice.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	return Point{X: c.X / n, Y: c.Y / n}
}

// SignedArea computes the shoelace sum over the ordered vertices,
// wrapping the index. Positive means counter-clockwise under this
// package's y-down convention, negative means clockwise, zero means a
// degenerate (collinear) outline. The value is twice the enclosed
// area.
func SignedArea(pts []Point) float64 {
	n := len(pts)
	var sum float64
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}
