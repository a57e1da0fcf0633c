package offset

import (
	"slices"

	"github.com/perimetric/clearbox/pkg/obstacle"
)

// epsilon bounds below which determinants and edge lengths are treated
// as zero.
const epsilon = 1e-10

// IsCCW reports whether the vertex sequence is counter-clockwise,
// judged by the sign of the shoelace sum. A zero sum (degenerate
// outline) reports false.
func IsCCW(pts []obstacle.Point) bool {
	return obstacle.SignedArea(pts) > 0
}

// Normalize returns a copy of pts canonicalized to counter-clockwise
// order. Clockwise input is reversed; degenerate (zero signed area)
// input passes through unchanged, since no winding is defined for it.
// Applying Normalize twice is the same as applying it once.
func Normalize(pts []obstacle.Point) []obstacle.Point {
	out := slices.Clone(pts)
	if obstacle.SignedArea(pts) < 0 {
		slices.Reverse(out)
	}
	return out
}
