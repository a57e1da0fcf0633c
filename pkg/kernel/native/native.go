// Package native implements the kernel.Kernel interface with exact
// polygon signed-distance math and no external geometry library. It
// serves as the reference backend the sdfx kernel is checked against.
package native

import (
	"fmt"
	"math"

	"github.com/perimetric/clearbox/pkg/kernel"
	"github.com/perimetric/clearbox/pkg/obstacle"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// Kernel implements kernel.Kernel in pure Go.
type Kernel struct{}

// New returns a new native kernel.
func New() *Kernel {
	return &Kernel{}
}

// Polygon builds the signed distance field of a simple polygon.
func (k *Kernel) Polygon(pts []obstacle.Point) (kernel.Field, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("native: polygon needs at least 3 vertices, have %d", len(pts))
	}
	f := &polyField{pts: make([]obstacle.Point, len(pts))}
	copy(f.pts, pts)
	f.min, f.max = f.pts[0], f.pts[0]
	for _, p := range f.pts[1:] {
		f.min.X = math.Min(f.min.X, p.X)
		f.min.Y = math.Min(f.min.Y, p.Y)
		f.max.X = math.Max(f.max.X, p.X)
		f.max.Y = math.Max(f.max.Y, p.Y)
	}
	return f, nil
}

// Offset grows the field's region outward by d.
func (k *Kernel) Offset(f kernel.Field, d float64) kernel.Field {
	return &offsetField{base: f, d: d}
}

// Union combines two fields by pointwise minimum distance.
func (k *Kernel) Union(a, b kernel.Field) kernel.Field {
	return &unionField{a: a, b: b}
}

// polyField is the exact signed distance field of a polygon: the
// minimum distance to any edge, negated inside (even-odd rule).
type polyField struct {
	pts      []obstacle.Point
	min, max obstacle.Point
}

func (f *polyField) Distance(p obstacle.Point) float64 {
	n := len(f.pts)
	d := math.Inf(1)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := f.pts[j], f.pts[i]
		d = math.Min(d, segmentDistance(p, a, b))
		if (b.Y > p.Y) != (a.Y > p.Y) &&
			p.X < (a.X-b.X)*(p.Y-b.Y)/(a.Y-b.Y)+b.X {
			inside = !inside
		}
	}
	if inside {
		return -d
	}
	return d
}

func (f *polyField) BoundingBox() (min, max obstacle.Point) {
	return f.min, f.max
}

// segmentDistance returns the distance from p to segment (a, b).
func segmentDistance(p, a, b obstacle.Point) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return ap.Norm()
	}
	t := math.Max(0, math.Min(1, ap.Dot(ab)/l2))
	closest := a.Add(ab.Scale(t))
	return p.Sub(closest).Norm()
}

type offsetField struct {
	base kernel.Field
	d    float64
}

func (f *offsetField) Distance(p obstacle.Point) float64 {
	return f.base.Distance(p) - f.d
}

func (f *offsetField) BoundingBox() (min, max obstacle.Point) {
	min, max = f.base.BoundingBox()
	min.X -= f.d
	min.Y -= f.d
	max.X += f.d
	max.Y += f.d
	return
}

type unionField struct {
	a, b kernel.Field
}

func (f *unionField) Distance(p obstacle.Point) float64 {
	return math.Min(f.a.Distance(p), f.b.Distance(p))
}

func (f *unionField) BoundingBox() (min, max obstacle.Point) {
	amin, amax := f.a.BoundingBox()
	bmin, bmax := f.b.BoundingBox()
	min = obstacle.Point{X: math.Min(amin.X, bmin.X), Y: math.Min(amin.Y, bmin.Y)}
	max = obstacle.Point{X: math.Max(amax.X, bmax.X), Y: math.Max(amax.Y, bmax.Y)}
	return
}
