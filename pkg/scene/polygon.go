package scene

import (
	"fmt"
	"math"

	"github.com/perimetric/clearbox/pkg/collide"
	"github.com/perimetric/clearbox/pkg/obstacle"
)

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// SnapToGrid snaps v to the nearest multiple of grid. A grid of zero
// or less leaves v unchanged.
func SnapToGrid(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// FinishPolygon turns an authored world-space point sequence into a
// custom-polygon snapshot, applying the editor's finishing rules:
// consecutive points closer than tolerance collapse into one, a
// trailing point that duplicates the first is dropped, the outline is
// rejected if it self-intersects or its bounding box is under the
// minimum size, and the stored points are re-anchored to the
// bounding-box origin so they are shape-local.
func FinishPolygon(points []obstacle.Point, tolerance float64) (obstacle.Obstacle, error) {
	cleaned := dedupePoints(points, tolerance)
	if len(cleaned) < 3 {
		return obstacle.Obstacle{}, fmt.Errorf("%w: polygon needs at least 3 distinct points, have %d", ErrInvalid, len(cleaned))
	}
	if crossed, _ := collide.SelfIntersects(cleaned); crossed {
		return obstacle.Obstacle{}, fmt.Errorf("%w: polygon outline crosses itself", ErrInvalid)
	}

	minX, minY := cleaned[0].X, cleaned[0].Y
	maxX, maxY := minX, minY
	for _, p := range cleaned[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	width := maxX - minX
	height := maxY - minY
	if width < obstacle.MinDimension || height < obstacle.MinDimension {
		return obstacle.Obstacle{}, fmt.Errorf("%w: polygon bounding box %.0fx%.0f is below the %dx%d minimum",
			ErrInvalid, width, height, obstacle.MinDimension, obstacle.MinDimension)
	}

	local := make([]obstacle.Point, len(cleaned))
	for i, p := range cleaned {
		local[i] = obstacle.Point{X: p.X - minX, Y: p.Y - minY}
	}

	return obstacle.Obstacle{
		Kind:      obstacle.CustomPolygon,
		X:         minX,
		Y:         minY,
		Width:     width,
		Height:    height,
		Rotation:  0,
		CanRotate: false,
		Points:    local,
	}, nil
}

// dedupePoints drops consecutive points within tolerance of the
// previous kept point, and a trailing point within tolerance of the
// first.
func dedupePoints(points []obstacle.Point, tolerance float64) []obstacle.Point {
	if len(points) < 2 {
		return points
	}
	cleaned := []obstacle.Point{points[0]}
	for _, p := range points[1:] {
		if obstacle.Distance(p, cleaned[len(cleaned)-1]) > tolerance {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) > 1 && obstacle.Distance(cleaned[len(cleaned)-1], cleaned[0]) < tolerance {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return cleaned
}
