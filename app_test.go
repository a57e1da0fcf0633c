package main

import (
	"math"
	"os"
	"testing"

	"github.com/perimetric/clearbox/pkg/config"
	"github.com/perimetric/clearbox/pkg/obstacle"
)

// TestE2EWarehouseExample exercises the full pipeline: script source →
// engine → scene → boundary expansion. This is the same path the CLI
// takes, but without flag handling.
func TestE2EWarehouseExample(t *testing.T) {
	app := NewApp(config.Default())

	source, err := os.ReadFile("examples/warehouse.lisp")
	if err != nil {
		t.Fatalf("failed to read warehouse.lisp: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	expected := map[string]bool{
		"wall":    false,
		"shelf-a": false,
		"shelf-b": false,
		"column":  false,
		"spill":   false,
	}
	if len(result.Obstacles) != len(expected) {
		t.Fatalf("expected %d obstacles, got %d", len(expected), len(result.Obstacles))
	}

	for _, o := range result.Obstacles {
		if _, ok := expected[o.Name]; !ok {
			t.Errorf("unexpected obstacle name: %q", o.Name)
			continue
		}
		expected[o.Name] = true

		if o.ID == "" {
			t.Errorf("obstacle %q: no identity", o.Name)
		}
		if len(o.Vertices) < 3 {
			t.Errorf("obstacle %q: %d vertices", o.Name, len(o.Vertices))
		}
		// Every obstacle in this scene carries an expansion.
		if len(o.Boundary) < 3 {
			t.Errorf("obstacle %q: no collision boundary", o.Name)
		}
		if o.Method == "" {
			t.Errorf("obstacle %q: no method reported", o.Name)
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("missing obstacle %q", name)
		}
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp(config.Default())
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Obstacles) != 0 {
		t.Errorf("expected 0 obstacles for empty source, got %d", len(result.Obstacles))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp(config.Default())
	result := app.Evaluate(`(rect "test"`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Obstacles) != 0 {
		t.Errorf("expected 0 obstacles on error, got %d", len(result.Obstacles))
	}
}

// TestEvaluateAtReportsClearance verifies the probe path: each
// obstacle reports its signed distance from the probe point to its
// expanded footprint.
func TestEvaluateAtReportsClearance(t *testing.T) {
	app := NewApp(config.Default())
	source := `(rect "dock" :x 0 :y 0 :width 100 :height 100 :expand (expand :distance 10))`

	probe := obstacle.Point{X: 50, Y: 50}
	result := app.EvaluateAt(source, &probe)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(result.Obstacles))
	}
	o := result.Obstacles[0]
	if o.Clearance == nil {
		t.Fatal("probe evaluation reported no clearance")
	}
	// Center of the square: 50 inside the raw shape, 60 inside the
	// expanded footprint.
	if got := *o.Clearance; math.Abs(got-(-60)) > 1e-9 {
		t.Errorf("clearance at center = %v, want -60", got)
	}

	// Outside the raw shape but 5 units short of the expanded boundary.
	probe = obstacle.Point{X: 115, Y: 50}
	result = app.EvaluateAt(source, &probe)
	if got := *result.Obstacles[0].Clearance; math.Abs(got-5) > 1e-9 {
		t.Errorf("clearance outside = %v, want 5", got)
	}

	// Without a probe, no clearance is reported.
	result = app.Evaluate(source)
	if result.Obstacles[0].Clearance != nil {
		t.Error("clearance reported without a probe")
	}
}

// TestE2ESingleObstacle ensures a minimal one-shape source reports one
// obstacle with its boundary.
func TestE2ESingleObstacle(t *testing.T) {
	app := NewApp(config.Default())
	source := `(rect "dock" :x 10 :y 20 :width 100 :height 50 :expand (expand :distance 10))`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(result.Obstacles))
	}
	o := result.Obstacles[0]
	if o.Name != "dock" {
		t.Errorf("expected obstacle name 'dock', got %q", o.Name)
	}
	if o.Kind != "rectangle" {
		t.Errorf("expected kind rectangle, got %q", o.Kind)
	}
	if o.Method != "generalized" {
		t.Errorf("expected the default generalized method, got %q", o.Method)
	}
}
