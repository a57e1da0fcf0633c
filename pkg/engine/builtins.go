package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/perimetric/clearbox/pkg/obstacle"
	"github.com/perimetric/clearbox/pkg/scene"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene-script source code before passing
// it to zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals,
//     which would conflict with user-defined variables of the same
//     name.
//
//  2. Comment conversion: ; line comments become // comments, since
//     zygomys uses // rather than the traditional Lisp ;.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps an obstacle.Point so it can be returned from `pt`
// and consumed by `polygon`.
type sexpPoint struct {
	pt obstacle.Point
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pt %.1f %.1f)", p.pt.X, p.pt.Y)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpDirectional wraps an obstacle.Directional.
type sexpDirectional struct {
	dir obstacle.Directional
}

func (d *sexpDirectional) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(directional :north %.1f :south %.1f :east %.1f :west %.1f)",
		d.dir.North, d.dir.South, d.dir.East, d.dir.West)
}
func (d *sexpDirectional) Type() *zygo.RegisteredType { return nil }

// sexpExpansion wraps an obstacle.Expansion so it can be returned from
// `expand` and attached to a shape form.
type sexpExpansion struct {
	exp obstacle.Expansion
}

func (e *sexpExpansion) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(expand :distance %.1f :method %s)", e.exp.Distance, e.exp.Method)
}
func (e *sexpExpansion) Type() *zygo.RegisteredType { return nil }

// sexpObstacleRef wraps a placed obstacle's name so later forms can
// refer back to it.
type sexpObstacleRef struct {
	name string
}

func (r *sexpObstacleRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(obstacle %q)", r.name)
}
func (r *sexpObstacleRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during
// preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toMethod converts a keyword or string to an obstacle.Method.
// Handles both preprocessed keywords (__kw_convex) and plain strings
// ("convex").
func toMethod(s zygo.Sexp) (obstacle.Method, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return 0, fmt.Errorf("expected method keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	name := strings.TrimPrefix(str.S, kwPrefix)
	return obstacle.ParseMethod(name)
}

// toPoint extracts a Point from a sexpPoint.
func toPoint(s zygo.Sexp) (obstacle.Point, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.pt, nil
	}
	return obstacle.Point{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

// toExpansion extracts an Expansion from a sexpExpansion.
func toExpansion(s zygo.Sexp) (obstacle.Expansion, error) {
	if e, ok := s.(*sexpExpansion); ok {
		return e.exp, nil
	}
	return obstacle.Expansion{}, fmt.Errorf("expected expand form, got %T (%s)", s, s.SexpString(nil))
}

// finishTolerance collapses authored polygon points closer than this.
const finishTolerance = 1.0

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins populate the provided scene during
// evaluation, enforcing validation and clearance on every placement.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene, defaultMethod obstacle.Method) {

	// -----------------------------------------------------------------------
	// (directional :north 5 :south 0 :east 10 :west 0)
	// -----------------------------------------------------------------------
	env.AddFunction("directional", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d obstacle.Directional
		for kw, dst := range map[string]*float64{
			"north": &d.North, "south": &d.South, "east": &d.East, "west": &d.West,
		} {
			if v, ok := pa.kw[kw]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("directional: %s: %w", kw, err)
				}
				if f < 0 {
					return zygo.SexpNull, fmt.Errorf("directional: %s: distance %.2f is negative", kw, f)
				}
				*dst = f
			}
		}
		return &sexpDirectional{dir: d}, nil
	})

	// -----------------------------------------------------------------------
	// (expand :distance 10 :method :preserve_shape :hull true
	//         :directional (directional :north 5))
	// -----------------------------------------------------------------------
	env.AddFunction("expand", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		exp := obstacle.Expansion{Method: defaultMethod}

		if v, ok := pa.kw["distance"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("expand: distance: %w", err)
			}
			exp.Distance = f
		}
		if v, ok := pa.kw["method"]; ok {
			m, err := toMethod(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("expand: method: %w", err)
			}
			exp.Method = m
		}
		if v, ok := pa.kw["hull"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("expand: hull: %w", err)
			}
			exp.ForceConvexHull = b
		}
		if v, ok := pa.kw["directional"]; ok {
			d, ok := v.(*sexpDirectional)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("expand: directional: expected directional form, got %T", v)
			}
			exp.Directional = d.dir
			exp.UseDirectional = true
		}

		return &sexpExpansion{exp: exp}, nil
	})

	// -----------------------------------------------------------------------
	// (rect "wall" :x 100 :y 50 :width 80 :height 40 :rotation 15
	//       :fixed true :expand (expand ...))
	//
	// triangle, pentagon and hexagon take the same arguments.
	// -----------------------------------------------------------------------
	shapes := map[string]obstacle.Kind{
		"rect":     obstacle.Rectangle,
		"triangle": obstacle.Triangle,
		"pentagon": obstacle.Pentagon,
		"hexagon":  obstacle.Hexagon,
	}
	for fn, kind := range shapes {
		kind := kind
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) < 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a name argument", name)
			}
			obsName, err := toString(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: name: %w", name, err)
			}

			o := obstacle.Obstacle{
				Kind:      kind,
				Width:     obstacle.MinDimension,
				Height:    obstacle.MinDimension,
				CanRotate: true,
			}
			for kw, dst := range map[string]*float64{
				"x": &o.X, "y": &o.Y, "width": &o.Width, "height": &o.Height,
			} {
				if v, ok := pa.kw[kw]; ok {
					f, err := toFloat64(v)
					if err != nil {
						return zygo.SexpNull, fmt.Errorf("%s: %s: %w", name, kw, err)
					}
					*dst = f
				}
			}
			if v, ok := pa.kw["rotation"]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: rotation: %w", name, err)
				}
				o.Rotation = obstacle.NormalizeRotation(f)
			}
			if v, ok := pa.kw["fixed"]; ok {
				b, err := toBool(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: fixed: %w", name, err)
				}
				o.CanRotate = !b
			}
			if v, ok := pa.kw["expand"]; ok {
				exp, err := toExpansion(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: expand: %w", name, err)
				}
				o.Expansion = exp
			}
			o.X = scene.SnapToGrid(o.X, sc.GridSize)
			o.Y = scene.SnapToGrid(o.Y, sc.GridSize)

			if _, err := sc.Add(obsName, o); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s %q: %w", name, obsName, err)
			}
			return &sexpObstacleRef{name: obsName}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (polygon "blob" (pt 100 200) (pt 180 200) (pt 140 260)
	//          :expand (expand ...))
	//
	// Points are world coordinates; the finished polygon is anchored at
	// its bounding-box origin and never rotates.
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("polygon requires a name argument")
		}
		obsName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: name: %w", err)
		}

		var pts []obstacle.Point
		for i, arg := range pa.positional[1:] {
			p, err := toPoint(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon %q: point %d: %w", obsName, i+1, err)
			}
			pts = append(pts, p)
		}

		o, err := scene.FinishPolygon(pts, finishTolerance)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon %q: %w", obsName, err)
		}
		if v, ok := pa.kw["expand"]; ok {
			exp, err := toExpansion(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon %q: expand: %w", obsName, err)
			}
			o.Expansion = exp
		}

		if _, err := sc.Add(obsName, o); err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon %q: %w", obsName, err)
		}
		return &sexpObstacleRef{name: obsName}, nil
	})

	// -----------------------------------------------------------------------
	// (pt 100 200)
	// -----------------------------------------------------------------------
	env.AddFunction("pt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("pt requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: y: %w", err)
		}
		return &sexpPoint{pt: obstacle.Point{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// (move "wall" 40 60)
	// -----------------------------------------------------------------------
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("move requires a name and two coordinates")
		}
		obsName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: name: %w", err)
		}
		x, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: x: %w", err)
		}
		y, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: y: %w", err)
		}
		if err := sc.MoveTo(obsName, x, y); err != nil {
			return zygo.SexpNull, fmt.Errorf("move %q: %w", obsName, err)
		}
		return &sexpObstacleRef{name: obsName}, nil
	})

	// -----------------------------------------------------------------------
	// (rotate "wall" 45)
	// -----------------------------------------------------------------------
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a name and an angle")
		}
		obsName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: name: %w", err)
		}
		deg, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: angle: %w", err)
		}
		if err := sc.Rotate(obsName, deg); err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate %q: %w", obsName, err)
		}
		return &sexpObstacleRef{name: obsName}, nil
	})

	// -----------------------------------------------------------------------
	// (discard "wall")
	// -----------------------------------------------------------------------
	env.AddFunction("discard", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("discard requires a name argument")
		}
		obsName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("discard: name: %w", err)
		}
		p := sc.Lookup(obsName)
		if p == nil {
			return zygo.SexpNull, fmt.Errorf("discard: no obstacle named %q", obsName)
		}
		sc.Remove(p.ID)
		return zygo.SexpNull, nil
	})
}
