package offset

import (
	"slices"

	"github.com/perimetric/clearbox/pkg/obstacle"
)

// expandDirectional applies quadrant-based per-edge offsetting with
// four independent compass distances. Callers have already checked
// that the kind is regular and at least one distance is positive.
//
// Each edge is classified by its midpoint against the centroid (an
// edge can be e.g. both north- and west-contributing), the accumulated
// directional vector is projected onto the edge's outward normal, and
// the edge is shifted by that scalar. The projection may come out
// negative when classifications disagree with the offsets, pulling the
// edge inward; that is accepted behavior, not clamped.
func expandDirectional(o obstacle.Obstacle, method obstacle.Method) (*Boundary, error) {
	local, err := obstacle.LocalVertices(o)
	if err != nil {
		return nil, err
	}
	local = Normalize(local)
	center := obstacle.Centroid(local)
	dir := o.Expansion.Directional
	n := len(local)

	mags := make([]float64, n)
	segs := make([]Segment, n)
	for i := range local {
		v1 := local[i]
		v2 := local[(i+1)%n]
		mid := v1.Add(v2).Scale(0.5)

		var vec obstacle.Point
		if mid.Y < center.Y {
			vec.Y -= dir.North
		}
		if mid.Y > center.Y {
			vec.Y += dir.South
		}
		if mid.X < center.X {
			vec.X -= dir.West
		}
		if mid.X > center.X {
			vec.X += dir.East
		}

		normal := edgeNormal(v1, v2)
		m := vec.Dot(normal)
		mags[i] = m
		off := normal.Scale(m)
		segs[i] = Segment{A: v1.Add(off), B: v2.Add(off)}
	}

	// New vertices by pairwise intersection, exactly as in mitered
	// offsetting. Vertex i sits between edge i and edge i+1.
	verts := make([]obstacle.Point, n)
	for i := range segs {
		next := segs[(i+1)%n]
		verts[i] = lineIntersection(segs[i].A, segs[i].B, next.A, next.B)
	}

	if o.Rotation != 0 && o.CanRotate {
		verts = obstacle.RotateAbout(verts, center, o.Rotation)
	}
	origin := obstacle.Point{X: o.X, Y: o.Y}
	for i := range verts {
		verts[i] = verts[i].Add(origin)
	}

	switch method {
	case obstacle.ArcGeneralized:
		edges := make([]Segment, n)
		for i := range verts {
			edges[i] = Segment{A: verts[i], B: verts[(i+1)%n]}
		}
		return &Boundary{
			Method:     method,
			Edges:      edges,
			ArcCenters: slices.Clone(verts),
			ArcRadius:  dir.Max(),
		}, nil

	case obstacle.Beveled:
		// Re-expand each corner along its two adjacent edge normals,
		// using the same projection-derived magnitude that positioned
		// the edge in the first place.
		out := make([]obstacle.Point, 0, 2*n)
		for i, cur := range verts {
			prev := verts[(i-1+n)%n]
			next := verts[(i+1)%n]
			nPrev := edgeNormal(prev, cur)
			nNext := edgeNormal(cur, next)
			mPrev := mags[i]
			mNext := mags[(i+1)%n]
			out = append(out, cur.Add(nPrev.Scale(mPrev)), cur.Add(nNext.Scale(mNext)))
		}
		return &Boundary{Method: method, Polygon: out}, nil

	default: // obstacle.Mitered: the directionally offset polygon as-is
		return &Boundary{Method: method, Polygon: verts}, nil
	}
}
