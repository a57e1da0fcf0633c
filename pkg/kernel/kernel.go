// Package kernel defines the abstract 2D distance-field interface.
// Implementations (native, sdfx) answer signed-distance queries behind
// this interface, so planners can swap backends without changing the
// rest of the system.
//
// The arc-generalized collision box of an obstacle is exactly the zero
// level set of its polygon field offset by the expansion distance,
// which makes a Field the authoritative clearance oracle for that
// method.
package kernel

import (
	"github.com/perimetric/clearbox/pkg/obstacle"
	"github.com/perimetric/clearbox/pkg/offset"
)

// Field is a signed distance field over the plane: negative inside the
// region, positive outside, zero on the boundary.
type Field interface {
	// Distance returns the signed distance from p to the boundary.
	Distance(p obstacle.Point) float64
	// BoundingBox returns the axis-aligned bounds of the region.
	BoundingBox() (min, max obstacle.Point)
}

// Kernel constructs distance fields.
type Kernel interface {
	// Polygon builds the field of a simple polygon. At least 3
	// vertices are required.
	Polygon(pts []obstacle.Point) (Field, error)
	// Offset grows the field's region outward by d.
	Offset(f Field, d float64) Field
	// Union combines two fields.
	Union(a, b Field) Field
}

// FieldFor builds the field of an obstacle's effective footprint: the
// raw shape offset by the expansion distance when one is set. A
// directional collision box is not a uniform offset, so it is
// approximated by the field of its mitered boundary polygon.
func FieldFor(k Kernel, o obstacle.Obstacle) (Field, error) {
	if o.Expansion.UseDirectional && o.Expansion.Directional.Any() {
		m := obstacle.Mitered
		b, err := offset.Expand(o, &offset.Override{Method: &m})
		if err != nil {
			return nil, err
		}
		return k.Polygon(b.Outline(0))
	}

	verts, err := obstacle.Vertices(o)
	if err != nil {
		return nil, err
	}
	f, err := k.Polygon(verts)
	if err != nil {
		return nil, err
	}
	if d := o.Expansion.Distance; d > 0 {
		f = k.Offset(f, d)
	}
	return f, nil
}
