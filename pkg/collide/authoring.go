package collide

import "github.com/perimetric/clearbox/pkg/obstacle"

// SelfIntersects tests every pair of non-adjacent edges of a closed
// polygon, excluding the pair that trivially shares the wrap-around
// edge, and returns whether any cross along with the crossing edge
// index pairs.
func SelfIntersects(points []obstacle.Point) (bool, [][2]int) {
	n := len(points)
	if n < 3 {
		return false, nil
	}

	var crossings [][2]int
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue // these edges share the wrap-around vertex
			}
			p1 := points[i]
			p2 := points[(i+1)%n]
			p3 := points[j]
			p4 := points[(j+1)%n]
			if SegmentsIntersect(p1, p2, p3, p4) {
				crossings = append(crossings, [2]int{i, j})
			}
		}
	}
	return len(crossings) > 0, crossings
}

// WouldCreateCrossing reports whether appending newPoint to a partial
// polygon outline would make an edge cross an already-placed
// non-adjacent edge. Both the candidate edge (last point to newPoint)
// and, once at least two points exist, the hypothetical closing edge
// (newPoint back to the first point) are tested; edges sharing an
// endpoint with the tested edge are skipped, since they always touch.
func WouldCreateCrossing(existing []obstacle.Point, newPoint obstacle.Point) bool {
	n := len(existing)
	if n < 2 {
		return false
	}

	last := existing[n-1]
	for i := 0; i+1 < n; i++ {
		if i == n-2 {
			continue // shares the last point with the candidate edge
		}
		if SegmentsIntersect(last, newPoint, existing[i], existing[i+1]) {
			return true
		}
	}

	first := existing[0]
	for i := 1; i+1 < n; i++ {
		if SegmentsIntersect(newPoint, first, existing[i], existing[i+1]) {
			return true
		}
	}
	return false
}
