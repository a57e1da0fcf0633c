package obstacle

import (
	"fmt"
	"math"
)

// Severity distinguishes blocking errors from advisory warnings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// ValidationError is a blocking problem with an obstacle snapshot.
type ValidationError struct {
	Field    string
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationWarning is an advisory finding. Warnings never block a
// snapshot from being used.
type ValidationWarning struct {
	Field   string
	Message string
}

// ValidationResult bundles the findings of a validation pass.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether no blocking errors were found.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs all checks on an obstacle snapshot.
//
// Tier 1 covers structural contract violations (unknown kind or
// method, too few custom points, directional mode on a custom
// polygon). Tier 2 covers geometric constraints (minimum dimensions,
// rotation range, negative distances). Tier 3 produces advisory
// warnings for degenerate but accepted geometry.
func Validate(o Obstacle) ValidationResult {
	var r ValidationResult

	r.Errors = append(r.Errors, validateStructure(o)...)
	r.Errors = append(r.Errors, validateGeometry(o)...)
	r.Warnings = append(r.Warnings, validateDegeneracy(o)...)

	return r
}

func validateStructure(o Obstacle) []ValidationError {
	var errs []ValidationError

	switch o.Kind {
	case Rectangle, Triangle, Pentagon, Hexagon:
	case CustomPolygon:
		if len(o.Points) < 3 {
			errs = append(errs, ValidationError{
				Field:   "points",
				Message: fmt.Sprintf("custom polygon has %d points, need at least 3", len(o.Points)),
			})
		}
		if o.CanRotate {
			errs = append(errs, ValidationError{
				Field:   "can_rotate",
				Message: "custom polygons never rotate",
			})
		}
		if o.Expansion.UseDirectional {
			errs = append(errs, ValidationError{
				Field:   "expansion.use_directional",
				Message: ErrDirectionalCustomPolygon.Error(),
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown shape kind %d", int(o.Kind)),
		})
	}

	if !o.Expansion.Method.Valid() {
		errs = append(errs, ValidationError{
			Field:   "expansion.method",
			Message: fmt.Sprintf("unknown expansion method %d", int(o.Expansion.Method)),
		})
	}

	return errs
}

func validateGeometry(o Obstacle) []ValidationError {
	var errs []ValidationError

	if o.Kind != CustomPolygon {
		if o.Width < MinDimension {
			errs = append(errs, ValidationError{
				Field:   "width",
				Message: fmt.Sprintf("width is %.2f, must be at least %d", o.Width, MinDimension),
			})
		}
		if o.Height < MinDimension {
			errs = append(errs, ValidationError{
				Field:   "height",
				Message: fmt.Sprintf("height is %.2f, must be at least %d", o.Height, MinDimension),
			})
		}
	}

	if o.Rotation < 0 || o.Rotation >= 360 {
		errs = append(errs, ValidationError{
			Field:   "rotation",
			Message: fmt.Sprintf("rotation %.2f outside [0, 360)", o.Rotation),
		})
	}
	if o.Kind == CustomPolygon && o.Rotation != 0 {
		errs = append(errs, ValidationError{
			Field:   "rotation",
			Message: "custom polygons never rotate",
		})
	}

	if o.Expansion.Distance < 0 {
		errs = append(errs, ValidationError{
			Field:   "expansion.distance",
			Message: fmt.Sprintf("expansion distance %.2f is negative", o.Expansion.Distance),
		})
	}
	d := o.Expansion.Directional
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"north", d.North}, {"south", d.South}, {"east", d.East}, {"west", d.West},
	} {
		if c.v < 0 {
			errs = append(errs, ValidationError{
				Field:   "expansion.directional." + c.name,
				Message: fmt.Sprintf("directional distance %.2f is negative", c.v),
			})
		}
	}

	return errs
}

// validateDegeneracy flags geometry that the engine accepts but that
// will produce degenerate offsets (collinear outlines enclose no
// area; the normalizer passes them through unchanged).
func validateDegeneracy(o Obstacle) []ValidationWarning {
	var warnings []ValidationWarning

	if o.Kind == CustomPolygon && len(o.Points) >= 3 {
		if math.Abs(SignedArea(o.Points)) < 1e-9 {
			warnings = append(warnings, ValidationWarning{
				Field:   "points",
				Message: "polygon outline is collinear and encloses no area",
			})
		}
	}

	return warnings
}
