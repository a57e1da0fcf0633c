package collide

import (
	"fmt"

	"github.com/perimetric/clearbox/pkg/obstacle"
	"github.com/perimetric/clearbox/pkg/offset"
)

// Default clearance buffers, in world units.
const (
	// DefaultMinSpacing is the baseline buffer enforced between raw
	// shapes, and between a collision box and a raw shape.
	DefaultMinSpacing = 5
	// DefaultBoxGap is the mandatory minimum gap between two collision
	// boxes. It is total space between the boxes, invisible to the
	// user.
	DefaultBoxGap = 20
)

// Detector runs pairwise clearance checks between obstacles. The zero
// value is not useful; construct with NewDetector or fill the buffers
// explicitly. Detector holds no mutable state and is safe for
// concurrent use.
type Detector struct {
	MinSpacing float64
	BoxGap     float64
	// ArcSamples controls how arc-form boundaries are flattened before
	// testing; values below 1 select offset.DefaultArcSamples.
	ArcSamples int
}

// NewDetector returns a Detector with the default clearance buffers.
func NewDetector() *Detector {
	return &Detector{MinSpacing: DefaultMinSpacing, BoxGap: DefaultBoxGap}
}

// CheckOverlap reports whether the candidate obstacle violates
// clearance against any obstacle in existing, skipping exclude by
// identity. Per pair it runs up to three tiers:
//
//  1. raw shape vs raw shape, buffered by MinSpacing (always);
//  2. collision box vs collision box, buffered by BoxGap, when both
//     sides have a box;
//  3. collision box vs raw shape, buffered by MinSpacing, when
//     exactly one side has a box.
//
// The scan returns true on the first violation found.
func (d *Detector) CheckOverlap(candidate *obstacle.Obstacle, existing []*obstacle.Obstacle, exclude *obstacle.Obstacle) (bool, error) {
	rawC, err := obstacle.Vertices(*candidate)
	if err != nil {
		return false, fmt.Errorf("collide: candidate: %w", err)
	}
	boxC, err := d.boxOutline(candidate)
	if err != nil {
		return false, fmt.Errorf("collide: candidate: %w", err)
	}

	for _, ex := range existing {
		if ex == exclude {
			continue
		}

		rawE, err := obstacle.Vertices(*ex)
		if err != nil {
			return false, fmt.Errorf("collide: existing: %w", err)
		}
		if bufferedOverlap(rawC, rawE, d.MinSpacing) {
			return true, nil
		}

		boxE, err := d.boxOutline(ex)
		if err != nil {
			return false, fmt.Errorf("collide: existing: %w", err)
		}

		switch {
		case boxC != nil && boxE != nil:
			if bufferedOverlap(boxC, boxE, d.BoxGap) {
				return true, nil
			}
		case boxC != nil:
			if bufferedOverlap(boxC, rawE, d.MinSpacing) {
				return true, nil
			}
		case boxE != nil:
			if bufferedOverlap(rawC, boxE, d.MinSpacing) {
				return true, nil
			}
		}
	}
	return false, nil
}

// boxOutline returns the flattened collision box of o, or nil when o
// has no expansion.
func (d *Detector) boxOutline(o *obstacle.Obstacle) ([]obstacle.Point, error) {
	b, err := offset.Expand(*o, nil)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	return b.Outline(d.ArcSamples), nil
}

// PointInShape reports whether p lies inside the obstacle's raw shape,
// by the even-odd rule.
func (d *Detector) PointInShape(p obstacle.Point, o *obstacle.Obstacle) (bool, error) {
	verts, err := obstacle.Vertices(*o)
	if err != nil {
		return false, err
	}
	return pointInPolygon(p, verts), nil
}

// TopmostAt scans the list in reverse (last inserted first) and
// returns the first obstacle containing p, or nil when none does.
func (d *Detector) TopmostAt(p obstacle.Point, list []*obstacle.Obstacle) (*obstacle.Obstacle, error) {
	for i := len(list) - 1; i >= 0; i-- {
		in, err := d.PointInShape(p, list[i])
		if err != nil {
			return nil, err
		}
		if in {
			return list[i], nil
		}
	}
	return nil, nil
}
