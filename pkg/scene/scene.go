package scene

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/perimetric/clearbox/pkg/collide"
	"github.com/perimetric/clearbox/pkg/obstacle"
)

var (
	// ErrClearance reports that a placement or mutation would violate
	// the minimum clearance against another obstacle.
	ErrClearance = errors.New("scene: clearance violation")
	// ErrNotFound reports a lookup of an unknown obstacle.
	ErrNotFound = errors.New("scene: no such obstacle")
	// ErrDuplicateName reports a name already in use.
	ErrDuplicateName = errors.New("scene: duplicate obstacle name")
	// ErrInvalid wraps validation failures of a snapshot.
	ErrInvalid = errors.New("scene: invalid obstacle")
)

// Placed is one obstacle in a scene: a stable identity, an optional
// user-assigned name, and the current snapshot. The Snapshot field is
// replaced wholesale on mutation; the engine packages only ever see
// copies of it.
type Placed struct {
	ID       uuid.UUID
	Name     string
	Snapshot obstacle.Obstacle
}

// Scene is the caller-owned mutable obstacle store. It is not safe
// for concurrent mutation; the engine packages it calls are.
// Clearance checks go through a broad-phase index kept in sync with
// the stored snapshots, so they only narrow-test nearby obstacles.
type Scene struct {
	det      *collide.Detector
	index    *collide.Index
	ordered  []*Placed
	byName   map[string]*Placed
	GridSize float64
}

// New returns an empty scene using det for clearance checks. A nil
// det selects the default detector.
func New(det *collide.Detector) *Scene {
	if det == nil {
		det = collide.NewDetector()
	}
	return &Scene{
		det:    det,
		index:  collide.NewIndex(det),
		byName: make(map[string]*Placed),
	}
}

// Detector exposes the scene's clearance detector.
func (s *Scene) Detector() *collide.Detector {
	return s.det
}

// Len returns the number of placed obstacles.
func (s *Scene) Len() int {
	return len(s.ordered)
}

// Obstacles returns the placed obstacles in insertion order.
func (s *Scene) Obstacles() []*Placed {
	out := make([]*Placed, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// Lookup returns the obstacle with the given name, or nil.
func (s *Scene) Lookup(name string) *Placed {
	return s.byName[name]
}

// Add validates the snapshot, checks clearance against the existing
// obstacles, and appends it to the scene under a fresh identity. The
// name may be empty; non-empty names must be unique.
func (s *Scene) Add(name string, o obstacle.Obstacle) (*Placed, error) {
	if name != "" && s.byName[name] != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if res := obstacle.Validate(o); !res.OK() {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, res.Errors[0].Error())
	}

	hit, err := s.index.CheckOverlap(&o, nil)
	if err != nil {
		return nil, err
	}
	if hit {
		return nil, fmt.Errorf("%w: %q", ErrClearance, name)
	}

	p := &Placed{ID: uuid.New(), Name: name, Snapshot: o}
	if err := s.index.Insert(&p.Snapshot); err != nil {
		return nil, err
	}
	s.ordered = append(s.ordered, p)
	if name != "" {
		s.byName[name] = p
	}
	return p, nil
}

// Remove deletes an obstacle by identity and reports whether it was
// present.
func (s *Scene) Remove(id uuid.UUID) bool {
	for i, p := range s.ordered {
		if p.ID == id {
			s.ordered = append(s.ordered[:i], s.ordered[i+1:]...)
			if p.Name != "" {
				delete(s.byName, p.Name)
			}
			s.index.Remove(&p.Snapshot)
			return true
		}
	}
	return false
}

// Update replaces the named obstacle's snapshot after validating it
// and re-checking clearance with the obstacle itself excluded. On
// violation the old snapshot stays in place.
func (s *Scene) Update(name string, o obstacle.Obstacle) error {
	p := s.byName[name]
	if p == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if res := obstacle.Validate(o); !res.OK() {
		return fmt.Errorf("%w: %s", ErrInvalid, res.Errors[0].Error())
	}

	hit, err := s.index.CheckOverlap(&o, &p.Snapshot)
	if err != nil {
		return err
	}
	if hit {
		return fmt.Errorf("%w: %q", ErrClearance, name)
	}
	s.index.Remove(&p.Snapshot)
	p.Snapshot = o
	return s.index.Insert(&p.Snapshot)
}

// MoveTo relocates the named obstacle's placement origin, snapping to
// the scene grid when one is configured.
func (s *Scene) MoveTo(name string, x, y float64) error {
	p := s.byName[name]
	if p == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	o := p.Snapshot
	o.X = SnapToGrid(x, s.GridSize)
	o.Y = SnapToGrid(y, s.GridSize)
	return s.Update(name, o)
}

// Rotate sets the named obstacle's rotation, normalized into [0, 360).
// Custom polygons never rotate. Rotation-only changes skip the
// clearance re-check, matching the editor's behavior.
func (s *Scene) Rotate(name string, deg float64) error {
	p := s.byName[name]
	if p == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if !p.Snapshot.CanRotate {
		return fmt.Errorf("%w: %q does not rotate", ErrInvalid, name)
	}
	// Rotation changes the footprint, so the index entry goes stale.
	s.index.Remove(&p.Snapshot)
	p.Snapshot.Rotation = obstacle.NormalizeRotation(deg)
	return s.index.Insert(&p.Snapshot)
}

// TopmostAt returns the topmost obstacle containing p, or nil.
func (s *Scene) TopmostAt(pt obstacle.Point) (*Placed, error) {
	snaps := s.snapshots()
	hit, err := s.det.TopmostAt(pt, snaps)
	if err != nil {
		return nil, err
	}
	if hit == nil {
		return nil, nil
	}
	for i := range snaps {
		if snaps[i] == hit {
			return s.ordered[i], nil
		}
	}
	return nil, nil
}

// snapshots exposes the stored snapshots by pointer, preserving
// insertion order, for identity-based exclusion in the detector.
func (s *Scene) snapshots() []*obstacle.Obstacle {
	out := make([]*obstacle.Obstacle, len(s.ordered))
	for i, p := range s.ordered {
		out[i] = &p.Snapshot
	}
	return out
}
