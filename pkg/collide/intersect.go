package collide

import (
	"math"

	"github.com/perimetric/clearbox/pkg/obstacle"
)

// orientation classifies the turn taken by the ordered triple (p, q, r).
type orientation int

const (
	collinear orientation = iota
	clockwise
	counterClockwise
)

func orient(p, q, r obstacle.Point) orientation {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case val == 0:
		return collinear
	case val > 0:
		return clockwise
	default:
		return counterClockwise
	}
}

// onSegment reports whether q, known collinear with segment (p, r),
// lies within that segment's bounding box.
func onSegment(p, q, r obstacle.Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether segment p1-p2 intersects segment
// p3-p4, including collinear overlap and shared endpoints.
func SegmentsIntersect(p1, p2, p3, p4 obstacle.Point) bool {
	o1 := orient(p1, p2, p3)
	o2 := orient(p1, p2, p4)
	o3 := orient(p3, p4, p1)
	o4 := orient(p3, p4, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if o1 == collinear && onSegment(p1, p3, p2) {
		return true
	}
	if o2 == collinear && onSegment(p1, p4, p2) {
		return true
	}
	if o3 == collinear && onSegment(p3, p1, p4) {
		return true
	}
	if o4 == collinear && onSegment(p3, p2, p4) {
		return true
	}
	return false
}

// pointInPolygon tests containment by the even-odd rule: a ray cast
// rightward from p crosses the polygon boundary an odd number of times
// exactly when p is inside.
func pointInPolygon(p obstacle.Point, poly []obstacle.Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// polygonsIntersect reports whether two polygons share any area or
// touch: an edge of one crosses an edge of the other, or one polygon
// contains the other entirely.
func polygonsIntersect(a, b []obstacle.Point) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		a1, a2 := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			if SegmentsIntersect(a1, a2, b[j], b[(j+1)%nb]) {
				return true
			}
		}
	}
	return pointInPolygon(a[0], b) || pointInPolygon(b[0], a)
}

// bufferedOverlap tests whether polygon b comes within spacing of
// polygon a. The buffer is applied by inflating a's axis-aligned
// bounding rectangle on all four sides, a deliberate approximation of
// the true per-edge offset.
func bufferedOverlap(a, b []obstacle.Point, spacing float64) bool {
	if spacing <= 0 {
		return polygonsIntersect(a, b)
	}
	min, max := bbox(a)
	rect := []obstacle.Point{
		{X: min.X - spacing, Y: min.Y - spacing},
		{X: max.X + spacing, Y: min.Y - spacing},
		{X: max.X + spacing, Y: max.Y + spacing},
		{X: min.X - spacing, Y: max.Y + spacing},
	}
	return polygonsIntersect(rect, b)
}

// bbox returns the axis-aligned bounding box of pts.
func bbox(pts []obstacle.Point) (min, max obstacle.Point) {
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
