package offset

import (
	"math"
	"testing"

	"github.com/perimetric/clearbox/pkg/obstacle"
)

const tol = 1e-9

func pointsClose(t *testing.T, got, want []obstacle.Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > tol || math.Abs(got[i].Y-want[i].Y) > tol {
			t.Errorf("point %d: got (%v, %v), want (%v, %v)", i, got[i].X, got[i].Y, want[i].X, want[i].Y)
		}
	}
}

var (
	ccwSquare = []obstacle.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	cwSquare  = []obstacle.Point{{X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0}, {X: 0, Y: 0}}
)

func TestIsCCW(t *testing.T) {
	if !IsCCW(ccwSquare) {
		t.Error("ccw square reported as not ccw")
	}
	if IsCCW(cwSquare) {
		t.Error("cw square reported as ccw")
	}
	if IsCCW([]obstacle.Point{{X: 0, Y: 0}, {X: 50, Y: 50}, {X: 100, Y: 100}}) {
		t.Error("degenerate outline reported as ccw")
	}
}

func TestNormalizeReversesClockwise(t *testing.T) {
	got := Normalize(cwSquare)
	if !IsCCW(got) {
		t.Fatal("Normalize did not produce ccw order")
	}
	pointsClose(t, got, []obstacle.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}})
}

func TestNormalizeKeepsCCW(t *testing.T) {
	pointsClose(t, Normalize(ccwSquare), ccwSquare)
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize(cwSquare)
	twice := Normalize(once)
	pointsClose(t, twice, once)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := []obstacle.Point{{X: 0, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 0}, {X: 0, Y: 0}}
	Normalize(in)
	pointsClose(t, in, cwSquare)
}

func TestNormalizeDegeneratePassThrough(t *testing.T) {
	line := []obstacle.Point{{X: 0, Y: 0}, {X: 50, Y: 50}, {X: 100, Y: 100}}
	pointsClose(t, Normalize(line), line)
}

func TestConvexHullDropsInteriorAndConcave(t *testing.T) {
	in := []obstacle.Point{
		{X: 0, Y: 0}, {X: 50, Y: 20}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 50, Y: 50}, {X: 0, Y: 100},
	}
	hull := ConvexHull(in)
	if len(hull) != 4 {
		t.Fatalf("hull has %d points, want 4: %v", len(hull), hull)
	}
	if !IsCCW(hull) {
		t.Error("hull is not ccw")
	}
	want := map[obstacle.Point]bool{
		{X: 0, Y: 0}: true, {X: 100, Y: 0}: true, {X: 100, Y: 100}: true, {X: 0, Y: 100}: true,
	}
	for _, p := range hull {
		if !want[p] {
			t.Errorf("unexpected hull point %v", p)
		}
	}
}

func TestConvexHullFallbacks(t *testing.T) {
	two := []obstacle.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}
	pointsClose(t, ConvexHull(two), two)

	line := []obstacle.Point{{X: 0, Y: 0}, {X: 50, Y: 50}, {X: 100, Y: 100}}
	pointsClose(t, ConvexHull(line), line)
}
