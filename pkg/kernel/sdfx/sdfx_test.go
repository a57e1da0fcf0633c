package sdfx

import (
	"math"
	"testing"

	"github.com/perimetric/clearbox/pkg/kernel/native"
	"github.com/perimetric/clearbox/pkg/obstacle"
)

var square = []obstacle.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}

func TestPolygonMatchesNative(t *testing.T) {
	sf, err := New().Polygon(square)
	if err != nil {
		t.Fatalf("sdfx Polygon: %v", err)
	}
	nf, err := native.New().Polygon(square)
	if err != nil {
		t.Fatalf("native Polygon: %v", err)
	}

	probes := []obstacle.Point{
		{X: 50, Y: 50},
		{X: 10, Y: 50},
		{X: 150, Y: 50},
		{X: -30, Y: -40},
		{X: 99, Y: 1},
	}
	for _, p := range probes {
		got := sf.Distance(p)
		want := nf.Distance(p)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("Distance(%v): sdfx %v, native %v", p, got, want)
		}
	}
}

func TestPolygonRejectsTooFewPoints(t *testing.T) {
	if _, err := New().Polygon(square[:2]); err == nil {
		t.Error("Polygon accepted 2 vertices")
	}
}

func TestOffsetGrowsRegion(t *testing.T) {
	k := New()
	f, err := k.Polygon(square)
	if err != nil {
		t.Fatalf("Polygon: %v", err)
	}
	off := k.Offset(f, 10)
	if got := off.Distance(obstacle.Point{X: 105, Y: 50}); got >= 0 {
		t.Errorf("distance inside the margin = %v, want negative", got)
	}
	min, max := off.BoundingBox()
	if min.X > -10+1e-6 || max.X < 110-1e-6 {
		t.Errorf("bbox (%v)-(%v) does not cover the offset region", min, max)
	}
}

func TestUnionCoversBoth(t *testing.T) {
	k := New()
	a, err := k.Polygon(square)
	if err != nil {
		t.Fatalf("Polygon: %v", err)
	}
	b, err := k.Polygon([]obstacle.Point{{X: 200, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 100}, {X: 200, Y: 100}})
	if err != nil {
		t.Fatalf("Polygon: %v", err)
	}
	u := k.Union(a, b)
	if got := u.Distance(obstacle.Point{X: 50, Y: 50}); got >= 0 {
		t.Errorf("union outside the left square at its center: %v", got)
	}
	if got := u.Distance(obstacle.Point{X: 250, Y: 50}); got >= 0 {
		t.Errorf("union outside the right square at its center: %v", got)
	}
}
