package main

import (
	"log"
	"time"

	"github.com/perimetric/clearbox/pkg/config"
	"github.com/perimetric/clearbox/pkg/engine"
	"github.com/perimetric/clearbox/pkg/kernel"
	"github.com/perimetric/clearbox/pkg/kernel/native"
	"github.com/perimetric/clearbox/pkg/obstacle"
	"github.com/perimetric/clearbox/pkg/offset"
)

// App wires the script engine to the collision-box pipeline. It
// exposes Evaluate, which turns scene-script source into a
// JSON-serializable report for consumers such as a planner frontend.
type App struct {
	engine *engine.Engine
	kern   kernel.Kernel
	cfg    config.Config
}

// ObstacleData is the JSON-serializable form of one placed obstacle
// and its flattened collision boundary.
type ObstacleData struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Kind     string           `json:"kind"`
	Vertices []obstacle.Point `json:"vertices"`
	// Boundary is the flattened collision-box outline, or nil when the
	// obstacle carries no expansion.
	Boundary []obstacle.Point `json:"boundary,omitempty"`
	Method   string           `json:"method,omitempty"`
	// Clearance is the signed distance from the probe point to the
	// obstacle's effective footprint, set only when a probe is given.
	Clearance *float64 `json:"clearance,omitempty"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating a scene script.
type EvalResult struct {
	Obstacles []ObstacleData  `json:"obstacles"`
	Errors    []EvalErrorData `json:"errors"`
}

// NewApp creates an App from the given configuration.
func NewApp(cfg config.Config) *App {
	eng := engine.NewEngine()
	eng.Detector = cfg.Detector()
	eng.DefaultMethod = cfg.Method()
	eng.GridSize = cfg.GridSize
	eng.Timeout = time.Duration(cfg.EvalTimeout)
	return &App{engine: eng, kern: native.New(), cfg: cfg}
}

// Evaluate runs a scene script and reports the placed obstacles with
// their collision boundaries.
func (a *App) Evaluate(source string) EvalResult {
	return a.EvaluateAt(source, nil)
}

// EvaluateAt is Evaluate with an optional probe point: when probe is
// non-nil, each obstacle additionally reports the signed distance from
// the probe to its effective footprint (negative inside), answered by
// the distance-field kernel.
func (a *App) EvaluateAt(source string, probe *obstacle.Point) EvalResult {
	result := EvalResult{
		Obstacles: []ObstacleData{},
		Errors:    []EvalErrorData{},
	}

	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	for _, p := range sc.Obstacles() {
		o := p.Snapshot
		verts, err := obstacle.Vertices(o)
		if err != nil {
			result.Errors = append(result.Errors, EvalErrorData{
				Message: p.Name + ": " + err.Error(),
			})
			continue
		}
		data := ObstacleData{
			ID:       p.ID.String(),
			Name:     p.Name,
			Kind:     o.Kind.String(),
			Vertices: verts,
		}

		b, err := offset.Expand(o, nil)
		if err != nil {
			result.Errors = append(result.Errors, EvalErrorData{
				Message: p.Name + ": " + err.Error(),
			})
		} else if b != nil {
			data.Boundary = b.Outline(a.cfg.ArcSamples)
			data.Method = b.Method.String()
		}

		if probe != nil {
			f, err := kernel.FieldFor(a.kern, o)
			if err != nil {
				result.Errors = append(result.Errors, EvalErrorData{
					Message: p.Name + ": " + err.Error(),
				})
			} else {
				d := f.Distance(*probe)
				data.Clearance = &d
			}
		}
		result.Obstacles = append(result.Obstacles, data)
	}

	return result
}
