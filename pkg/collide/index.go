package collide

import (
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/perimetric/clearbox/pkg/obstacle"
	"github.com/perimetric/clearbox/pkg/offset"
)

// indexEntry wraps an obstacle with the bounds of its widest footprint
// (collision box when present, raw shape otherwise) inflated by the
// larger clearance buffer, so a search over-approximates and never
// misses a pair the exact detector would flag.
type indexEntry struct {
	rect rtreego.Rect
	obs  *obstacle.Obstacle
}

func (e *indexEntry) Bounds() rtreego.Rect {
	return e.rect
}

// Index is an R-tree broad phase over an obstacle set. It only prunes
// pairs whose inflated bounding boxes cannot interact; exact pair
// testing stays in the Detector.
type Index struct {
	det     *Detector
	tree    *rtreego.Rtree
	entries map[*obstacle.Obstacle]*indexEntry
}

// NewIndex returns an empty index using det for buffer sizes and the
// exact narrow phase. A nil det selects the default detector.
func NewIndex(det *Detector) *Index {
	if det == nil {
		det = NewDetector()
	}
	return &Index{
		det:     det,
		tree:    rtreego.NewTree(2, 4, 8),
		entries: make(map[*obstacle.Obstacle]*indexEntry),
	}
}

// Len returns the number of indexed obstacles.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Insert adds an obstacle to the index. The caller must Remove and
// re-Insert after mutating an obstacle's placement or expansion.
func (ix *Index) Insert(o *obstacle.Obstacle) error {
	r, err := ix.bounds(o)
	if err != nil {
		return err
	}
	e := &indexEntry{rect: r, obs: o}
	ix.tree.Insert(e)
	ix.entries[o] = e
	return nil
}

// Remove drops an obstacle from the index. It reports whether the
// obstacle was present.
func (ix *Index) Remove(o *obstacle.Obstacle) bool {
	e, ok := ix.entries[o]
	if !ok {
		return false
	}
	delete(ix.entries, o)
	return ix.tree.Delete(e)
}

// Candidates returns the indexed obstacles whose inflated bounds
// intersect o's inflated bounds. o itself is filtered out when it is
// indexed.
func (ix *Index) Candidates(o *obstacle.Obstacle) ([]*obstacle.Obstacle, error) {
	r, err := ix.bounds(o)
	if err != nil {
		return nil, err
	}
	hits := ix.tree.SearchIntersect(r)
	out := make([]*obstacle.Obstacle, 0, len(hits))
	for _, h := range hits {
		e := h.(*indexEntry)
		if e.obs == o {
			continue
		}
		out = append(out, e.obs)
	}
	return out, nil
}

// CheckOverlap runs the tiered clearance check against the broad-phase
// candidates only.
func (ix *Index) CheckOverlap(o *obstacle.Obstacle, exclude *obstacle.Obstacle) (bool, error) {
	cands, err := ix.Candidates(o)
	if err != nil {
		return false, err
	}
	return ix.det.CheckOverlap(o, cands, exclude)
}

// bounds computes the inflated axis-aligned footprint of o.
func (ix *Index) bounds(o *obstacle.Obstacle) (rtreego.Rect, error) {
	verts, err := obstacle.Vertices(*o)
	if err != nil {
		return rtreego.Rect{}, fmt.Errorf("collide: index: %w", err)
	}
	min, max := bbox(verts)

	b, err := offset.Expand(*o, nil)
	if err != nil {
		return rtreego.Rect{}, fmt.Errorf("collide: index: %w", err)
	}
	if b != nil {
		bmin, bmax := b.BoundingBox()
		min.X = math.Min(min.X, bmin.X)
		min.Y = math.Min(min.Y, bmin.Y)
		max.X = math.Max(max.X, bmax.X)
		max.Y = math.Max(max.Y, bmax.Y)
	}

	pad := math.Max(ix.det.MinSpacing, ix.det.BoxGap)
	r, err := rtreego.NewRect(
		rtreego.Point{min.X - pad, min.Y - pad},
		[]float64{max.X - min.X + 2*pad, max.Y - min.Y + 2*pad},
	)
	if err != nil {
		return rtreego.Rect{}, fmt.Errorf("collide: index: %w", err)
	}
	return r, nil
}
