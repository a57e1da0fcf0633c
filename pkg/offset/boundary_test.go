package offset

import (
	"math"
	"testing"

	"github.com/perimetric/clearbox/pkg/obstacle"
)

func arcSquareBoundary(t *testing.T, d float64) *Boundary {
	t.Helper()
	o := obstacle.Obstacle{
		Kind: obstacle.Rectangle, Width: 100, Height: 100,
		Expansion: obstacle.Expansion{Distance: d, Method: obstacle.ArcGeneralized},
	}
	b, err := Expand(o, nil)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	return b
}

func TestOutlinePolygonFormIsClone(t *testing.T) {
	b := &Boundary{Method: obstacle.Mitered, Polygon: []obstacle.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}}
	out := b.Outline(0)
	pointsClose(t, out, b.Polygon)
	out[0].X = 999
	if b.Polygon[0].X != 0 {
		t.Error("Outline returned the backing slice, not a clone")
	}
}

func TestOutlineNilBoundary(t *testing.T) {
	var b *Boundary
	if got := b.Outline(5); got != nil {
		t.Errorf("nil boundary outline = %v, want nil", got)
	}
}

func TestOutlineArcSampling(t *testing.T) {
	b := arcSquareBoundary(t, 10)
	out := b.Outline(5)

	// 4 edge starts plus 5 arc samples per corner.
	if len(out) != 24 {
		t.Fatalf("got %d outline points, want 24", len(out))
	}
	if math.Abs(out[0].X-0) > tol || math.Abs(out[0].Y+10) > tol {
		t.Errorf("outline starts at (%v, %v), want (0, -10)", out[0].X, out[0].Y)
	}

	// Arc samples for the corner at (100,0) sit between edge 0 and
	// edge 1, all at radius 10 from the original vertex.
	center := obstacle.Point{X: 100, Y: 0}
	for i := 1; i <= 5; i++ {
		p := out[i]
		if d := obstacle.Distance(p, center); math.Abs(d-10) > tol {
			t.Errorf("arc sample %d at distance %v from corner, want 10", i, d)
		}
		if p.X <= 100 || p.Y >= 0 {
			t.Errorf("arc sample %d at (%v, %v), want outside the corner quadrant", i, p.X, p.Y)
		}
	}
}

func TestOutlineArcSamplesDefault(t *testing.T) {
	b := arcSquareBoundary(t, 10)
	if got := len(b.Outline(0)); got != len(b.Outline(DefaultArcSamples)) {
		t.Errorf("Outline(0) yields %d points, want the default sampling", got)
	}
	if got := len(b.Outline(2)); got != 4*(1+2) {
		t.Errorf("Outline(2) yields %d points, want 12", got)
	}
}

func TestBoundingBoxArcForm(t *testing.T) {
	b := arcSquareBoundary(t, 10)
	min, max := b.BoundingBox()
	if min.X != -10 || min.Y != -10 || max.X != 110 || max.Y != 110 {
		t.Errorf("bbox (%v,%v)-(%v,%v), want (-10,-10)-(110,110)", min.X, min.Y, max.X, max.Y)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{math.Pi, math.Pi},
		{-math.Pi / 2, -math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{2 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); math.Abs(got-tt.want) > tol {
			t.Errorf("wrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
