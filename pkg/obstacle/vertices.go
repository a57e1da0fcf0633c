package obstacle

import "math"

// LocalVertices returns the shape-local vertex sequence of o, before
// rotation and placement. Regular shapes generate canonical vertices;
// custom polygons return a copy of their authored points.
func LocalVertices(o Obstacle) ([]Point, error) {
	switch o.Kind {
	case Rectangle:
		return []Point{
			{0, 0},
			{o.Width, 0},
			{o.Width, o.Height},
			{0, o.Height},
		}, nil
	case Triangle:
		return []Point{
			{o.Width / 2, 0},    // top center
			{o.Width, o.Height}, // bottom right
			{0, o.Height},       // bottom left
		}, nil
	case Pentagon:
		return regularVertices(o.Width, o.Height, 5), nil
	case Hexagon:
		return regularVertices(o.Width, o.Height, 6), nil
	case CustomPolygon:
		pts := make([]Point, len(o.Points))
		copy(pts, o.Points)
		return pts, nil
	default:
		return nil, ErrUnknownKind
	}
}

// Vertices returns the world-space vertex sequence of o: local
// vertices rotated about the shape's pivot and translated to the
// placement origin. The pivot is the bounding-box center for regular
// shapes and the vertex centroid for custom polygons, whose bounding
// box need not be symmetric about their visual center.
func Vertices(o Obstacle) ([]Point, error) {
	local, err := LocalVertices(o)
	if err != nil {
		return nil, err
	}

	if o.Rotation != 0 && o.CanRotate {
		var pivot Point
		if o.Kind == CustomPolygon {
			pivot = Centroid(local)
		} else {
			pivot = Point{X: o.Width / 2, Y: o.Height / 2}
		}
		local = RotateAbout(local, pivot, o.Rotation)
	}

	origin := Point{X: o.X, Y: o.Y}
	world := make([]Point, len(local))
	for i, p := range local {
		world[i] = p.Add(origin)
	}
	return world, nil
}

// RotateAbout rotates pts by deg degrees about pivot and returns the
// rotated copy.
func RotateAbout(pts []Point, pivot Point, deg float64) []Point {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	out := make([]Point, len(pts))
	for i, p := range pts {
		dx := p.X - pivot.X
		dy := p.Y - pivot.Y
		out[i] = Point{
			X: pivot.X + dx*cos - dy*sin,
			Y: pivot.Y + dx*sin + dy*cos,
		}
	}
	return out
}

// regularVertices generates an n-gon inscribed in a circle of radius
// min(width, height)/2, centered on the bounding box, with the first
// vertex pointing up (angle -90 degrees) and the rest evenly spaced.
func regularVertices(width, height float64, n int) []Point {
	cx, cy := width/2, height/2
	radius := math.Min(width, height) / 2
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		pts[i] = Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	return pts
}
