// Package engine provides the Lisp evaluation engine for scene
// scripts. It wraps zygomys in a sandboxed environment and produces a
// populated Scene from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/perimetric/clearbox/pkg/collide"
	"github.com/perimetric/clearbox/pkg/obstacle"
	"github.com/perimetric/clearbox/pkg/scene"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter for scene-script evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	// Detector checks clearance while the script places obstacles.
	// Nil selects the default detector.
	Detector *collide.Detector
	// DefaultMethod applies when an expand form names no method.
	DefaultMethod obstacle.Method
	// GridSize snaps scripted placements when positive.
	GridSize float64
	// Timeout bounds one evaluation. Zero selects DefaultTimeout.
	Timeout time.Duration
}

// NewEngine creates a new Engine instance with default settings.
func NewEngine() *Engine {
	return &Engine{DefaultMethod: obstacle.ArcGeneralized}
}

// Evaluate takes scene-script source code and produces a new Scene.
// Each call creates a fresh zygomys sandbox for deterministic
// evaluation.
//
// Return semantics:
//   - On success: returns scene + nil errors + nil error
//   - On parse/eval failure: returns nil scene + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*scene.Scene, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		sc, evalErrs, err := e.evaluate(source)
		ch <- evalResult{scene: sc, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout())
}

func (e *Engine) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultTimeout
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*scene.Scene, []EvalError, error) {
	sc := scene.New(e.Detector)
	sc.GridSize = e.GridSize

	// Empty source is a valid program that produces an empty scene.
	if strings.TrimSpace(source) == "" {
		return sc, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem
	// or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, sc, e.DefaultMethod)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return sc, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values. It attempts to extract line number information from the
// error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{
			Line:    line,
			Message: strings.TrimSpace(m[2]),
		}}
	}

	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{
			Line:    line,
			Message: strings.TrimSpace(m[2]),
		}}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
