package offset

import (
	"math"
	"slices"

	"github.com/perimetric/clearbox/pkg/obstacle"
)

// Override carries optional per-call overrides for an obstacle's own
// expansion settings. Nil fields keep the obstacle's values.
type Override struct {
	Method          *obstacle.Method
	ForceConvexHull *bool
}

// Expand computes the expanded boundary of an obstacle snapshot.
//
// It returns (nil, nil) when the resolved expansion distance is zero
// or less, or when directional mode is selected with all four
// distances zero: no boundary, a valid non-error outcome. It returns
// an InvalidArgument error for an unknown kind or method, or for
// directional mode on a custom polygon. Degenerate geometry (parallel
// offset lines, zero-length edges, collinear hulls) never fails; each
// case has a deterministic fallback.
func Expand(o obstacle.Obstacle, ov *Override) (*Boundary, error) {
	method := o.Expansion.Method
	if ov != nil && ov.Method != nil {
		method = *ov.Method
	}
	if !method.Valid() {
		return nil, obstacle.ErrUnknownMethod
	}

	if o.Expansion.UseDirectional {
		if o.Kind == obstacle.CustomPolygon {
			return nil, obstacle.ErrDirectionalCustomPolygon
		}
		if !o.Expansion.Directional.Any() {
			return nil, nil
		}
		return expandDirectional(o, method)
	}

	d := o.Expansion.Distance
	if d <= 0 {
		return nil, nil
	}

	verts, err := obstacle.Vertices(o)
	if err != nil {
		return nil, err
	}

	useHull := o.Expansion.ForceConvexHull
	if ov != nil && ov.ForceConvexHull != nil {
		useHull = *ov.ForceConvexHull
	}
	if useHull {
		verts = ConvexHull(verts)
	}

	switch method {
	case obstacle.Mitered:
		return &Boundary{Method: method, Polygon: Mitered(verts, d)}, nil
	case obstacle.Beveled:
		return &Boundary{Method: method, Polygon: Beveled(verts, d)}, nil
	default: // obstacle.ArcGeneralized
		edges, centers, radius := ArcGeneralized(verts, d)
		return &Boundary{Method: method, Edges: edges, ArcCenters: centers, ArcRadius: radius}, nil
	}
}

// Expanded pairs one obstacle of a batch with its boundary, or with
// the error that prevented expansion.
type Expanded struct {
	Obstacle obstacle.Obstacle
	Boundary *Boundary
	Err      error
}

// ExpandAll expands every obstacle in the list. Obstacles with no
// boundary are skipped; per-obstacle failures are reported in the
// result rather than aborting the batch.
func ExpandAll(list []obstacle.Obstacle, ov *Override) []Expanded {
	var out []Expanded
	for _, o := range list {
		b, err := Expand(o, ov)
		if err != nil {
			out = append(out, Expanded{Obstacle: o, Err: err})
			continue
		}
		if b == nil {
			continue
		}
		out = append(out, Expanded{Obstacle: o, Boundary: b})
	}
	return out
}

// Mitered offsets each edge outward by d and intersects adjacent
// offset edges to form the new vertices, preserving the vertex count.
// Input winding is normalized internally.
func Mitered(verts []obstacle.Point, d float64) []obstacle.Point {
	verts = Normalize(verts)
	segs := offsetEdges(verts, d)
	n := len(segs)
	out := make([]obstacle.Point, n)
	for i := range segs {
		next := segs[(i+1)%n]
		out[i] = lineIntersection(segs[i].A, segs[i].B, next.A, next.B)
	}
	return out
}

// Beveled emits two offset points per original vertex, one along each
// adjacent edge normal, producing 2n vertices for an n-gon. It is a
// fast convex approximation and can under-expand sharp concave
// corners; that limitation is accepted, not something to compensate
// for.
func Beveled(verts []obstacle.Point, d float64) []obstacle.Point {
	verts = Normalize(verts)
	n := len(verts)
	out := make([]obstacle.Point, 0, 2*n)
	for i, cur := range verts {
		prev := verts[(i-1+n)%n]
		next := verts[(i+1)%n]
		nPrev := edgeNormal(prev, cur)
		nNext := edgeNormal(cur, next)
		out = append(out, cur.Add(nPrev.Scale(d)), cur.Add(nNext.Scale(d)))
	}
	return out
}

// ArcGeneralized offsets each edge outward by d without mitering and
// describes one arc per original vertex (center at the vertex, radius
// d). This exactly represents the Minkowski sum of the polygon with a
// disc of radius d.
func ArcGeneralized(verts []obstacle.Point, d float64) (edges []Segment, centers []obstacle.Point, radius float64) {
	verts = Normalize(verts)
	return offsetEdges(verts, d), slices.Clone(verts), d
}

// edgeNormal returns the outward unit normal of the edge a->b of a
// counter-clockwise polygon. Edges shorter than epsilon get a zero
// normal, removing their offset contribution.
func edgeNormal(a, b obstacle.Point) obstacle.Point {
	d := b.Sub(a)
	n := obstacle.Point{X: d.Y, Y: -d.X}
	l := n.Norm()
	if l < epsilon {
		return obstacle.Point{}
	}
	return n.Scale(1 / l)
}

// offsetEdges shifts every edge of a counter-clockwise polygon outward
// by d along its normal.
func offsetEdges(verts []obstacle.Point, d float64) []Segment {
	n := len(verts)
	segs := make([]Segment, n)
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%n]
		off := edgeNormal(a, b).Scale(d)
		segs[i] = Segment{A: a.Add(off), B: b.Add(off)}
	}
	return segs
}

// lineIntersection intersects the infinite lines through (p1,p2) and
// (p3,p4) with the 2x2 determinant formula. Near-parallel lines take
// the midpoint of the two edges' shared endpoints instead, a
// deterministic tie-break.
func lineIntersection(p1, p2, p3, p4 obstacle.Point) obstacle.Point {
	denom := (p1.X-p2.X)*(p3.Y-p4.Y) - (p1.Y-p2.Y)*(p3.X-p4.X)
	if math.Abs(denom) < epsilon {
		return p2.Add(p3).Scale(0.5)
	}
	t := ((p1.X-p3.X)*(p3.Y-p4.Y) - (p1.Y-p3.Y)*(p3.X-p4.X)) / denom
	return obstacle.Point{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}
}
