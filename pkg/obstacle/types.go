package obstacle

import (
	"errors"
	"fmt"
	"math"
)

// Errors of the InvalidArgument class. These always surface to the
// caller; they are never substituted with a default.
var (
	ErrUnknownKind              = errors.New("obstacle: unknown shape kind")
	ErrUnknownMethod            = errors.New("obstacle: unknown expansion method")
	ErrDirectionalCustomPolygon = errors.New("obstacle: directional expansion is not defined for custom polygons")
)

// MinDimension is the smallest allowed width or height of a regular
// shape, in world units.
const MinDimension = 10

// Kind enumerates the closed set of obstacle shapes.
type Kind int

const (
	Rectangle Kind = iota
	Triangle
	Pentagon
	Hexagon
	CustomPolygon
)

func (k Kind) String() string {
	switch k {
	case Rectangle:
		return "rectangle"
	case Triangle:
		return "triangle"
	case Pentagon:
		return "pentagon"
	case Hexagon:
		return "hexagon"
	case CustomPolygon:
		return "custom_polygon"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind symbol to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "rectangle":
		return Rectangle, nil
	case "triangle":
		return Triangle, nil
	case "pentagon":
		return Pentagon, nil
	case "hexagon":
		return Hexagon, nil
	case "custom_polygon", "polygon":
		return CustomPolygon, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Method enumerates the three polygon offsetting algorithms. The order
// matches the selection order presented to users: the arc-generalized
// method first, since it is the only exact Minkowski-sum
// representation and the authoritative shape for collision purposes.
type Method int

const (
	// ArcGeneralized offsets every edge outward and closes the
	// boundary with circular arcs centered on the original vertices.
	ArcGeneralized Method = iota
	// Mitered offsets every edge outward and intersects adjacent
	// offset edges, preserving the vertex count and overall shape.
	Mitered
	// Beveled emits two offset points per original vertex without
	// intersecting the adjacent edges. Fast, but it can under-expand
	// sharp concave corners; that approximation is documented behavior.
	Beveled
)

func (m Method) String() string {
	switch m {
	case ArcGeneralized:
		return "generalized"
	case Mitered:
		return "preserve_shape"
	case Beveled:
		return "convex"
	default:
		return "unknown"
	}
}

// Label returns the human-readable method name for UI consumption.
func (m Method) Label() string {
	switch m {
	case ArcGeneralized:
		return "Generalized (Arcs)"
	case Mitered:
		return "Maintain Shape"
	case Beveled:
		return "Convex Hull"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is one of the three defined methods.
func (m Method) Valid() bool {
	return m == ArcGeneralized || m == Mitered || m == Beveled
}

// AllMethods lists the available methods in presentation order.
func AllMethods() []Method {
	return []Method{ArcGeneralized, Mitered, Beveled}
}

// ParseMethod converts a method symbol to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "generalized":
		return ArcGeneralized, nil
	case "preserve_shape", "preserve-shape":
		return Mitered, nil
	case "convex":
		return Beveled, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Directional holds independent expansion distances per compass
// direction. North is toward decreasing Y, south toward increasing Y,
// west toward decreasing X, east toward increasing X.
type Directional struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Any reports whether at least one direction is positive.
func (d Directional) Any() bool {
	return d.North > 0 || d.South > 0 || d.East > 0 || d.West > 0
}

// Max returns the largest of the four distances.
func (d Directional) Max() float64 {
	return math.Max(math.Max(d.North, d.South), math.Max(d.East, d.West))
}

// Expansion describes how an obstacle's collision box is derived.
// A zero Distance (with directional mode off) means no collision box.
type Expansion struct {
	Distance        float64     `json:"distance"`
	Method          Method      `json:"method"`
	UseDirectional  bool        `json:"use_directional"`
	Directional     Directional `json:"directional"`
	ForceConvexHull bool        `json:"force_convex_hull"`
}

// Obstacle is a snapshot of one polygonal region to avoid. The engine
// treats it as read-only input per call and never retains it.
type Obstacle struct {
	Kind     Kind    `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"` // degrees, normalized into [0,360)
	// CanRotate is false for custom polygons, always.
	CanRotate bool `json:"can_rotate"`
	// Points holds the authored shape-local vertices of a custom
	// polygon, relative to its bounding-box origin. Nil for regular
	// kinds.
	Points    []Point   `json:"points,omitempty"`
	Expansion Expansion `json:"expansion"`
}

// NormalizeRotation maps an angle in degrees into [0, 360).
func NormalizeRotation(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}
