package collide

import (
	"testing"

	"github.com/perimetric/clearbox/pkg/obstacle"
)

func TestIndexInsertRemove(t *testing.T) {
	ix := NewIndex(nil)
	a := rectAt(0, 0, 50, 50)

	if err := ix.Insert(a); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if ix.Len() != 1 {
		t.Fatalf("Len = %d, want 1", ix.Len())
	}
	if !ix.Remove(a) {
		t.Error("Remove reported the obstacle as absent")
	}
	if ix.Len() != 0 {
		t.Errorf("Len = %d after removal, want 0", ix.Len())
	}
	if ix.Remove(a) {
		t.Error("second Remove reported success")
	}
}

func TestIndexInsertRejectsUnknownKind(t *testing.T) {
	ix := NewIndex(nil)
	if err := ix.Insert(&obstacle.Obstacle{Kind: obstacle.Kind(42)}); err == nil {
		t.Error("Insert accepted an unknown kind")
	}
}

func TestIndexCandidates(t *testing.T) {
	ix := NewIndex(nil)
	near := rectAt(60, 0, 50, 50)
	far := rectAt(1000, 1000, 50, 50)
	for _, o := range []*obstacle.Obstacle{near, far} {
		if err := ix.Insert(o); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	probe := rectAt(0, 0, 50, 50)
	cands, err := ix.Candidates(probe)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(cands) != 1 || cands[0] != near {
		t.Errorf("candidates = %v, want only the near obstacle", cands)
	}
}

func TestIndexCandidatesFiltersSelf(t *testing.T) {
	ix := NewIndex(nil)
	a := rectAt(0, 0, 50, 50)
	if err := ix.Insert(a); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	cands, err := ix.Candidates(a)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(cands) != 0 {
		t.Errorf("candidates include the probe itself: %v", cands)
	}
}

func TestIndexCheckOverlapMatchesDetector(t *testing.T) {
	det := NewDetector()
	ix := NewIndex(det)
	a := boxedRectAt(0, 0, 50, 50, 5)
	if err := ix.Insert(a); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	for _, tt := range []struct {
		name string
		o    *obstacle.Obstacle
	}{
		{"close boxed", boxedRectAt(70, 0, 50, 50, 5)},
		{"clear boxed", boxedRectAt(90, 0, 50, 50, 5)},
		{"raw near box", rectAt(58, 0, 50, 50)},
		{"far away", rectAt(2000, 0, 50, 50)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			want, err := det.CheckOverlap(tt.o, []*obstacle.Obstacle{a}, nil)
			if err != nil {
				t.Fatalf("detector CheckOverlap: %v", err)
			}
			got, err := ix.CheckOverlap(tt.o, nil)
			if err != nil {
				t.Fatalf("index CheckOverlap: %v", err)
			}
			if got != want {
				t.Errorf("index result %v, detector result %v", got, want)
			}
		})
	}
}

func TestIndexBoundsCoverCollisionBox(t *testing.T) {
	ix := NewIndex(nil)
	// An obstacle whose collision box extends well past its raw shape
	// must still be found from a probe near the box only.
	a := boxedRectAt(0, 0, 50, 50, 40)
	if err := ix.Insert(a); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	probe := rectAt(120, 0, 50, 50)
	cands, err := ix.Candidates(probe)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(cands) != 1 {
		t.Errorf("probe near the collision box found %d candidates, want 1", len(cands))
	}
}
