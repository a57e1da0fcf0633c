package offset

import (
	"sort"

	"github.com/perimetric/clearbox/pkg/obstacle"
)

// ConvexHull computes the convex hull of the given points via the
// monotone chain algorithm, discarding interior points, and returns
// the hull re-normalized to counter-clockwise order.
//
// Hull preprocessing is best-effort: with fewer than 3 input points,
// or when the input is collinear and no proper hull exists, the
// original sequence is returned unchanged rather than failing.
func ConvexHull(pts []obstacle.Point) []obstacle.Point {
	if len(pts) < 3 {
		return pts
	}

	sorted := make([]obstacle.Point, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	// Lower then upper chain; cross <= 0 drops clockwise and
	// collinear turns so the hull keeps only extreme points.
	var lower []obstacle.Point
	for _, p := range sorted {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	var upper []obstacle.Point
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) < 3 {
		return pts
	}
	return Normalize(hull)
}

// cross returns the z component of (a->b) x (a->c).
func cross(a, b, c obstacle.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
