// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/perimetric/clearbox/pkg/kernel"
	"github.com/perimetric/clearbox/pkg/obstacle"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// field wraps an sdf.SDF2 to implement kernel.Field.
type field struct {
	s sdf.SDF2
}

func (f *field) Distance(p obstacle.Point) float64 {
	return f.s.Evaluate(v2.Vec{X: p.X, Y: p.Y})
}

func (f *field) BoundingBox() (min, max obstacle.Point) {
	bb := f.s.BoundingBox()
	min = obstacle.Point{X: bb.Min.X, Y: bb.Min.Y}
	max = obstacle.Point{X: bb.Max.X, Y: bb.Max.Y}
	return
}

// Kernel implements kernel.Kernel using sdfx.
type Kernel struct{}

// New returns a new sdfx-backed kernel.
func New() *Kernel {
	return &Kernel{}
}

// unwrap extracts the underlying sdf.SDF2 from a kernel.Field.
func unwrap(f kernel.Field) sdf.SDF2 {
	return f.(*field).s
}

// wrap creates a kernel.Field from an sdf.SDF2.
func wrap(s sdf.SDF2) kernel.Field {
	return &field{s: s}
}

// Polygon builds the signed distance field of a simple polygon.
func (k *Kernel) Polygon(pts []obstacle.Point) (kernel.Field, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("sdfx: polygon needs at least 3 vertices, have %d", len(pts))
	}
	vs := make([]v2.Vec, len(pts))
	for i, p := range pts {
		vs[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	s, err := sdf.Polygon2D(vs)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return wrap(s), nil
}

// Offset grows the field's region outward by d.
func (k *Kernel) Offset(f kernel.Field, d float64) kernel.Field {
	return wrap(sdf.Offset2D(unwrap(f), d))
}

// Union combines two fields.
func (k *Kernel) Union(a, b kernel.Field) kernel.Field {
	return wrap(sdf.Union2D(unwrap(a), unwrap(b)))
}
