package offset

import (
	"math"
	"slices"

	"github.com/perimetric/clearbox/pkg/obstacle"
)

// DefaultArcSamples is the number of interpolated points inserted per
// arc span when an arc-form boundary is flattened to a polygon.
const DefaultArcSamples = 5

// Segment is one straight offset edge of an arc-form boundary.
type Segment struct {
	A, B obstacle.Point
}

// Boundary is the expanded safety margin around an obstacle. It is a
// tagged union over two representations: the mitered and beveled
// methods fill Polygon; the arc-generalized method fills Edges,
// ArcCenters and ArcRadius (one arc per original vertex).
//
// A nil *Boundary means "no boundary": the expansion distance resolved
// to zero or less. That is a normal outcome, not a failure.
type Boundary struct {
	Method     obstacle.Method
	Polygon    []obstacle.Point
	Edges      []Segment
	ArcCenters []obstacle.Point
	ArcRadius  float64
}

// Outline flattens the boundary to a plain polygon. Polygon-form
// boundaries are returned as-is; arc-form boundaries get arcSamples
// interpolated points inserted per arc span, following the shorter
// angular path between the adjacent edge endpoints. Degenerate arc
// spans whose edge endpoint coincides with the arc center contribute
// no samples.
//
// arcSamples < 1 selects DefaultArcSamples.
func (b *Boundary) Outline(arcSamples int) []obstacle.Point {
	if b == nil {
		return nil
	}
	if b.Method != obstacle.ArcGeneralized {
		return slices.Clone(b.Polygon)
	}
	if arcSamples < 1 {
		arcSamples = DefaultArcSamples
	}

	n := len(b.Edges)
	out := make([]obstacle.Point, 0, n*(arcSamples+1))
	for i, e := range b.Edges {
		out = append(out, e.A)

		center := b.ArcCenters[(i+1)%n]
		next := b.Edges[(i+1)%n]
		if obstacle.Distance(e.B, center) < epsilon || obstacle.Distance(next.A, center) < epsilon {
			continue
		}
		a1 := math.Atan2(e.B.Y-center.Y, e.B.X-center.X)
		a2 := math.Atan2(next.A.Y-center.Y, next.A.X-center.X)
		delta := wrapAngle(a2 - a1)
		for j := 1; j <= arcSamples; j++ {
			t := float64(j) / float64(arcSamples+1)
			ang := a1 + t*delta
			out = append(out, obstacle.Point{
				X: center.X + b.ArcRadius*math.Cos(ang),
				Y: center.Y + b.ArcRadius*math.Sin(ang),
			})
		}
	}
	return out
}

// BoundingBox returns the axis-aligned bounds of the flattened
// boundary.
func (b *Boundary) BoundingBox() (min, max obstacle.Point) {
	return boundsOf(b.Outline(0))
}

// wrapAngle maps an angle difference into (-pi, pi].
func wrapAngle(d float64) float64 {
	d = math.Mod(d, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// boundsOf returns the axis-aligned bounding box of pts.
func boundsOf(pts []obstacle.Point) (min, max obstacle.Point) {
	if len(pts) == 0 {
		return
	}
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return
}
